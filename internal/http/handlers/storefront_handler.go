package handlers

import (
	"strings"

	"motodealer/internal/catalog"
	"motodealer/internal/domain"
	applog "motodealer/internal/log"
	"motodealer/internal/services"
	"motodealer/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type StorefrontHandler struct {
	Storefront *services.StorefrontService
}

// criteriaFromQuery reads the filter form. A category switch clears any
// stale subcategory: the subcategory only applies when it belongs to the
// selected category.
func criteriaFromQuery(c *fiber.Ctx, v *services.StorefrontView) catalog.Criteria {
	crit := catalog.Criteria{}
	if rawQ := strings.TrimSpace(c.Query("q")); rawQ != "" {
		if q, ok := validate.Q(rawQ); ok {
			crit.Query = q
		}
	}
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		if _, ok := validate.ID(cat); ok {
			crit.CategoryID = cat
		}
	}
	if sub := strings.TrimSpace(c.Query("subcategory")); sub != "" && crit.CategoryID != "" {
		for _, s := range v.SubcategoriesOf(crit.CategoryID) {
			if s.ID == sub {
				crit.SubcategoryID = sub
				break
			}
		}
	}
	if min, ok := validate.Price(c.Query("min")); ok {
		crit.MinPrice = min
	}
	if max, ok := validate.Price(c.Query("max")); ok {
		crit.MaxPrice = max
	}
	return crit
}

// Catalog renders a tenant's public catalog page.
func (h *StorefrontHandler) Catalog(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Concesionario no encontrado"})
	}
	c.Locals("tenant", slug)

	v, err := h.Storefront.View(slug)
	if err != nil {
		applog.Info(c, "storefront.miss", map[string]any{"slug": slug})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "El concesionario que buscas no existe o está inactivo"})
	}

	crit := criteriaFromQuery(c, v)
	products := h.Storefront.Filter(v, crit)

	return render(c, "catalog", fiber.Map{
		"Dealership":    v.Dealership,
		"Settings":      v.Settings,
		"Categories":    v.Categories,
		"Employees":     v.Employees,
		"Products":      products,
		"Count":         len(products),
		"Q":             crit.Query,
		"CategoryID":    crit.CategoryID,
		"SubcategoryID": crit.SubcategoryID,
		"Subcategories": v.SubcategoriesOf(crit.CategoryID),
	})
}

// ProductDetail renders one product with its technical sheet when the
// category family calls for it.
func (h *StorefrontHandler) ProductDetail(c *fiber.Ctx) error {
	slug, okSlug := validate.Slug(c.Params("slug"))
	id, okID := validate.ID(c.Params("id"))
	if !okSlug || !okID {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}
	c.Locals("tenant", slug)

	v, err := h.Storefront.View(slug)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "El concesionario que buscas no existe o está inactivo"})
	}
	p, found := h.Storefront.Product(v, id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}

	return render(c, "product", fiber.Map{
		"Dealership":        v.Dealership,
		"Settings":          v.Settings,
		"P":                 p,
		"IsMotorcycle":      p.IsMotorcycle(),
		"Specs":             p.Specs(),
		"SpecSections":      domain.SpecSections,
		"SpecSectionTitles": domain.SpecSectionTitles,
		"SpecFields":        domain.SpecFields,
		"SpecFieldLabels":   domain.SpecFieldLabels,
	})
}
