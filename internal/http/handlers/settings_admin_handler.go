package handlers

import (
	"motodealer/internal/domain"
	applog "motodealer/internal/log"
	"motodealer/internal/repos"
	"motodealer/internal/services"
	"motodealer/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SettingsAdminHandler struct {
	Settings   *repos.SettingsRepo
	Dealers    *repos.DealershipRepo
	Storefront *services.StorefrontService
	MediaDir   string
}

func (h *SettingsAdminHandler) Form(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	s, err := h.Settings.Get(u.DealershipID)
	if err != nil {
		applog.Error(c, "admin.settings.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar la configuración"})
	}
	return render(c, "admin_settings", fiber.Map{"Dealership": d, "Settings": s})
}

// Save overwrites the whole settings record and handles optional logo/hero
// uploads.
func (h *SettingsAdminHandler) Save(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}

	whatsapp, okWA := validate.Phone(c.FormValue("mainWhatsapp"))
	footerPhone, okFP := validate.Phone(c.FormValue("footerPhone"))
	primary, okPC := validate.Color(c.FormValue("primaryColor"))
	secondary, okSC := validate.Color(c.FormValue("secondaryColor"))
	if !okWA || !okFP || !okPC || !okSC {
		return c.Status(400).SendString("invalid input")
	}
	if email := c.FormValue("footerEmail"); email != "" {
		if _, ok := validate.Email(email); !ok {
			return c.Status(400).SendString("invalid email")
		}
	}

	// Keep previously uploaded assets unless a new file replaces them.
	prev, err := h.Settings.Get(u.DealershipID)
	if err != nil {
		applog.Error(c, "admin.settings.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo guardar la configuración"})
	}

	s := domain.SiteSettings{
		DealershipID:   u.DealershipID,
		LogoURL:        prev.LogoURL,
		HeroImageURL:   prev.HeroImageURL,
		HeroTitle:      c.FormValue("heroTitle"),
		HeroSubtitle:   c.FormValue("heroSubtitle"),
		FooterText:     c.FormValue("footerText"),
		FooterAddress:  c.FormValue("footerAddress"),
		FooterPhone:    footerPhone,
		FooterEmail:    c.FormValue("footerEmail"),
		FacebookURL:    c.FormValue("facebookUrl"),
		InstagramURL:   c.FormValue("instagramUrl"),
		TwitterURL:     c.FormValue("twitterUrl"),
		TiktokURL:      c.FormValue("tiktokUrl"),
		YoutubeURL:     c.FormValue("youtubeUrl"),
		MainWhatsapp:   whatsapp,
		PrimaryColor:   primary,
		SecondaryColor: secondary,
	}

	if fh, err := c.FormFile("logo"); err == nil && fh != nil {
		if url, err := saveUpload(fh, h.MediaDir, u.DealershipID+"/branding", "logo"); err == nil {
			s.LogoURL = url
		} else {
			applog.Error(c, "admin.settings.logo.fail", err, nil)
		}
	}
	if fh, err := c.FormFile("hero"); err == nil && fh != nil {
		if url, err := saveUpload(fh, h.MediaDir, u.DealershipID+"/branding", "hero"); err == nil {
			s.HeroImageURL = url
		} else {
			applog.Error(c, "admin.settings.hero.fail", err, nil)
		}
	}

	if err := h.Settings.Upsert(s); err != nil {
		applog.Error(c, "admin.settings.save.fail", err, nil)
		return c.Status(400).SendString("could not save settings")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.settings.save", nil)
	return c.Redirect("/dashboard/settings")
}
