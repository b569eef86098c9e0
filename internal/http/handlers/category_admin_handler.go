package handlers

import (
	"motodealer/internal/domain"
	applog "motodealer/internal/log"
	"motodealer/internal/repos"
	"motodealer/internal/services"
	"motodealer/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CategoryAdminHandler struct {
	Cats       *repos.CategoryRepo
	Dealers    *repos.DealershipRepo
	Storefront *services.StorefrontService
}

// List renders categories with nested subcategories for the dashboard.
func (h *CategoryAdminHandler) List(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	cats, err := h.Cats.List(u.DealershipID)
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar las categorías"})
	}
	return render(c, "admin_categories", fiber.Map{"Dealership": d, "Categories": cats})
}

func (h *CategoryAdminHandler) Create(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	name, okName := validate.Name(c.FormValue("name"))
	family, okFam := validate.Family(c.FormValue("family"))
	if !okName || !okFam {
		return c.Status(400).SendString("invalid input")
	}

	cat := domain.Category{
		ID:           uuid.NewString(),
		DealershipID: u.DealershipID,
		Name:         name,
		Slug:         validate.Slugify(name),
		Description:  c.FormValue("description"),
		Family:       family,
	}
	if err := h.Cats.Create(cat); err != nil {
		applog.Error(c, "admin.categories.create.fail", err, map[string]any{"name": name})
		return c.Status(400).SendString("could not create category")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.categories.create", map[string]any{"category": cat.ID})
	return c.Redirect("/dashboard/categories")
}

func (h *CategoryAdminHandler) Update(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	id, okID := validate.ID(c.Params("id"))
	name, okName := validate.Name(c.FormValue("name"))
	family, okFam := validate.Family(c.FormValue("family"))
	if !okID || !okName || !okFam {
		return c.Status(400).SendString("invalid input")
	}

	cat, err := h.Cats.Get(u.DealershipID, id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Categoría no encontrada"})
	}
	cat.Name = name
	cat.Slug = validate.Slugify(name)
	cat.Description = c.FormValue("description")
	cat.Family = family
	if err := h.Cats.Update(cat); err != nil {
		applog.Error(c, "admin.categories.update.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString("could not update category")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.categories.update", map[string]any{"category": id})
	return c.Redirect("/dashboard/categories")
}

func (h *CategoryAdminHandler) Delete(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Cats.Delete(u.DealershipID, id); err != nil {
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString("could not delete category")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.categories.delete", map[string]any{"category": id})
	return c.Redirect("/dashboard/categories")
}

func (h *CategoryAdminHandler) CreateSubcategory(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	catID, okCat := validate.ID(c.FormValue("categoryId"))
	name, okName := validate.Name(c.FormValue("name"))
	if !okCat || !okName {
		return c.Status(400).SendString("invalid input")
	}
	// Subcategories must hang off an existing category of this tenant.
	if _, err := h.Cats.Get(u.DealershipID, catID); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Categoría no encontrada"})
	}

	sub := domain.Subcategory{
		ID:           uuid.NewString(),
		DealershipID: u.DealershipID,
		CategoryID:   catID,
		Name:         name,
		Slug:         validate.Slugify(name),
	}
	if err := h.Cats.CreateSubcategory(sub); err != nil {
		applog.Error(c, "admin.subcategories.create.fail", err, map[string]any{"category": catID})
		return c.Status(400).SendString("could not create subcategory")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.subcategories.create", map[string]any{"subcategory": sub.ID})
	return c.Redirect("/dashboard/categories")
}

func (h *CategoryAdminHandler) DeleteSubcategory(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Cats.DeleteSubcategory(u.DealershipID, id); err != nil {
		applog.Error(c, "admin.subcategories.delete.fail", err, map[string]any{"subcategory": id})
		return c.Status(400).SendString("could not delete subcategory")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.subcategories.delete", map[string]any{"subcategory": id})
	return c.Redirect("/dashboard/categories")
}
