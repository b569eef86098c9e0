package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"motodealer/internal/domain"
	"motodealer/internal/repos"

	"github.com/gofiber/fiber/v2"
)

// adminTenant returns the logged-in admin and their dealership. RequireUser
// has already put the user into Locals; the dealership lookup gives handlers
// the slug they need for cache invalidation and redirects.
func adminTenant(c *fiber.Ctx, dealers *repos.DealershipRepo) (*domain.User, domain.Dealership, error) {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return nil, domain.Dealership{}, errors.New("no user in context")
	}
	d, err := dealers.ByID(u.DealershipID)
	if err != nil {
		return nil, domain.Dealership{}, err
	}
	return u, d, nil
}

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// saveUpload writes one uploaded image under mediaDir/<subdir>/ and returns
// its public /media URL. The stored name is caller-chosen; the extension
// comes from the upload and must be an image type.
func saveUpload(fh *multipart.FileHeader, mediaDir, subdir, name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return "", errors.New("unsupported image type")
	}

	dir := filepath.Join(mediaDir, filepath.FromSlash(subdir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name+ext))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/media/" + subdir + "/" + name + ext, nil
}
