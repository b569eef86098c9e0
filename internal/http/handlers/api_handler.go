package handlers

import (
	applog "motodealer/internal/log"
	"motodealer/internal/services"
	"motodealer/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type APIHandler struct {
	Storefront *services.StorefrontService
}

// Products serves the filtered catalog as JSON for the storefront's live
// filter controls. Same criteria semantics as the HTML page.
func (h *APIHandler) Products(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown dealership"})
	}
	c.Locals("tenant", slug)

	v, err := h.Storefront.View(slug)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown dealership"})
	}

	crit := criteriaFromQuery(c, v)
	products := h.Storefront.Filter(v, crit)
	applog.Info(c, "api.products", map[string]any{"count": len(products), "q": crit.Query})

	return c.JSON(fiber.Map{"count": len(products), "products": products})
}
