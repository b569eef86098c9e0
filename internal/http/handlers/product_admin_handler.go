package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"motodealer/internal/domain"
	applog "motodealer/internal/log"
	"motodealer/internal/repos"
	"motodealer/internal/services"
	"motodealer/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductAdminHandler struct {
	Prods      *repos.ProductRepo
	Cats       *repos.CategoryRepo
	Dealers    *repos.DealershipRepo
	Storefront *services.StorefrontService
	MediaDir   string
}

func (h *ProductAdminHandler) List(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	prods, err := h.Prods.List(u.DealershipID)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar los productos"})
	}
	cats, err := h.Cats.List(u.DealershipID)
	if err != nil {
		applog.Error(c, "admin.products.categories.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar los productos"})
	}
	return render(c, "admin_products", fiber.Map{
		"Dealership":   d,
		"Products":     prods,
		"Categories":   cats,
		"SpecSections": domain.SpecSections,
		"SpecFields":   domain.SpecFields,
	})
}

// productForm parses the shared create/update form fields. The optional
// fields stay nil when blank so "price on request" and "no year" survive as
// genuine absences.
func (h *ProductAdminHandler) productForm(c *fiber.Ctx, dealershipID string) (domain.Product, error) {
	var p domain.Product

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return p, fmt.Errorf("invalid name")
	}
	status, ok := validate.Status(c.FormValue("status"))
	if !ok {
		return p, fmt.Errorf("invalid status")
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return p, fmt.Errorf("invalid price")
	}
	year, ok := validate.Year(c.FormValue("year"))
	if !ok {
		return p, fmt.Errorf("invalid year")
	}

	p.DealershipID = dealershipID
	p.Name = name
	p.Slug = validate.Slugify(name)
	p.Status = status
	p.Price = price
	p.Year = year

	if v := strings.TrimSpace(c.FormValue("brand")); v != "" {
		p.Brand = &v
	}
	if v := strings.TrimSpace(c.FormValue("model")); v != "" {
		p.Model = &v
	}
	if v := strings.TrimSpace(c.FormValue("description")); v != "" {
		p.Description = &v
	}

	if catID, ok := validate.ID(c.FormValue("categoryId")); ok {
		if _, err := h.Cats.Get(dealershipID, catID); err != nil {
			return p, fmt.Errorf("unknown category")
		}
		p.CategoryID = &catID
		// A subcategory is only accepted together with its parent category,
		// and must actually hang off it within this tenant.
		if subID, ok := validate.ID(c.FormValue("subcategoryId")); ok {
			sub, err := h.Cats.GetSubcategory(dealershipID, subID)
			if err != nil || sub.CategoryID != catID {
				return p, fmt.Errorf("subcategory does not belong to the category")
			}
			p.SubcategoryID = &subID
		}
	}

	// Technical sheet arrives as spec.<section>.<field> form values.
	specs := domain.MotorcycleSpecs{}
	for _, section := range domain.SpecSections {
		for _, field := range domain.SpecFields[section] {
			if v := strings.TrimSpace(c.FormValue("spec." + section + "." + field)); v != "" {
				if specs[section] == nil {
					specs[section] = map[string]string{}
				}
				specs[section][field] = v
			}
		}
	}
	if len(specs) > 0 {
		b, _ := json.Marshal(specs)
		s := string(b)
		p.SpecsJSON = &s
	}

	return p, nil
}

func (h *ProductAdminHandler) Create(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	p, err := h.productForm(c, u.DealershipID)
	if err != nil {
		return c.Status(400).SendString(err.Error())
	}
	p.ID = uuid.NewString()

	if err := h.Prods.Create(p); err != nil {
		applog.Error(c, "admin.products.create.fail", err, map[string]any{"name": p.Name})
		return c.Status(400).SendString("could not create product")
	}
	if err := h.uploadImages(c, u.DealershipID, p.ID); err != nil {
		applog.Error(c, "admin.products.images.fail", err, map[string]any{"product": p.ID})
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.products.create", map[string]any{"product": p.ID})
	return c.Redirect("/dashboard/products")
}

func (h *ProductAdminHandler) Update(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if _, err := h.Prods.Get(u.DealershipID, id); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Producto no encontrado"})
	}

	p, err := h.productForm(c, u.DealershipID)
	if err != nil {
		return c.Status(400).SendString(err.Error())
	}
	p.ID = id

	if err := h.Prods.Update(p); err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not update product")
	}
	if err := h.uploadImages(c, u.DealershipID, id); err != nil {
		applog.Error(c, "admin.products.images.fail", err, map[string]any{"product": id})
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.products.update", map[string]any{"product": id})
	return c.Redirect("/dashboard/products")
}

func (h *ProductAdminHandler) Delete(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Prods.Delete(u.DealershipID, id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not delete product")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/dashboard/products")
}

func (h *ProductAdminHandler) DeleteImage(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Prods.DeleteImage(u.DealershipID, id); err != nil {
		applog.Error(c, "admin.products.image.delete.fail", err, map[string]any{"image": id})
		return c.Status(400).SendString("could not delete image")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.products.image.delete", map[string]any{"image": id})
	return c.Redirect("/dashboard/products")
}

// uploadImages stores any multipart "images" files under the tenant's media
// folder and records them. The first image a product ever gets becomes its
// primary one.
func (h *ProductAdminHandler) uploadImages(c *fiber.Ctx, dealershipID, productID string) error {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil // plain form post, nothing to upload
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil
	}

	existing, err := h.Prods.CountImages(productID)
	if err != nil {
		return err
	}

	subdir := dealershipID + "/" + productID
	for i, fh := range files {
		name := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), i)
		url, err := saveUpload(fh, h.MediaDir, subdir, name)
		if err != nil {
			return err
		}
		img := domain.ProductImage{
			ID:           uuid.NewString(),
			ProductID:    productID,
			DealershipID: dealershipID,
			ImageURL:     url,
			IsPrimary:    existing == 0 && i == 0,
			DisplayOrder: existing + i,
		}
		if err := h.Prods.AddImage(img); err != nil {
			return err
		}
	}
	return nil
}
