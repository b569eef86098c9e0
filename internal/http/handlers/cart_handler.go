package handlers

import (
	"motodealer/internal/cart"
	"motodealer/internal/inquiry"
	applog "motodealer/internal/log"
	"motodealer/internal/services"
	"motodealer/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Storefront *services.StorefrontService
	Cart       *services.CartService
}

// tenantView resolves the slug and loads the storefront snapshot, or renders
// the tenant 404.
func (h *CartHandler) tenantView(c *fiber.Ctx) (*services.StorefrontView, error) {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return nil, c.Status(404).Render("notfound", fiber.Map{"Message": "Concesionario no encontrado"})
	}
	c.Locals("tenant", slug)
	v, err := h.Storefront.View(slug)
	if err != nil {
		return nil, c.Status(404).Render("notfound", fiber.Map{"Message": "El concesionario que buscas no existe o está inactivo"})
	}
	return v, nil
}

func contactOf(v *services.StorefrontView) inquiry.Contact {
	return inquiry.Contact{
		DealershipName: v.Dealership.Name,
		MainWhatsapp:   v.Settings.MainWhatsapp,
		Phone:          v.Dealership.Phone,
	}
}

// View renders the cart page. A missing contact number shows a degraded-state
// warning instead of a broken inquiry button.
func (h *CartHandler) View(c *fiber.Ctx) error {
	v, err := h.tenantView(c)
	if v == nil {
		return err
	}
	store := h.Cart.ForSession(ensureSID(c))
	contact := contactOf(v)

	return render(c, "cart", fiber.Map{
		"Dealership": v.Dealership,
		"Settings":   v.Settings,
		"Items":      store.Items(),
		"TotalItems": store.TotalItems(),
		"TotalPrice": store.TotalPrice(),
		"NoContact":  v.Settings.MainWhatsapp == "" && v.Dealership.Phone == "",
		"Notice":     c.Query("notice"),
		"Contact":    contact,
	})
}

// Add puts a product into the session cart (or bumps its quantity).
func (h *CartHandler) Add(c *fiber.Ctx) error {
	v, err := h.tenantView(c)
	if v == nil {
		return err
	}
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	p, found := h.Storefront.Product(v, pid)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}

	store := h.Cart.ForSession(ensureSID(c))
	store.SetDealershipInfo(cart.DealershipInfo{
		Name:         v.Dealership.Name,
		Phone:        v.Dealership.Phone,
		MainWhatsapp: v.Settings.MainWhatsapp,
	})
	store.AddItem(services.Snapshot(p))

	applog.Info(c, "cart.add", map[string]any{"product": pid})
	return c.Redirect("/c/" + v.Dealership.Slug + "/cart")
}

// Update sets a line's quantity; zero or below removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	v, err := h.tenantView(c)
	if v == nil {
		return err
	}
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	store := h.Cart.ForSession(ensureSID(c))
	store.UpdateQuantity(pid, qty)
	return c.Redirect("/c/" + v.Dealership.Slug + "/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	v, err := h.tenantView(c)
	if v == nil {
		return err
	}
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	store := h.Cart.ForSession(ensureSID(c))
	store.RemoveItem(pid)
	return c.Redirect("/c/" + v.Dealership.Slug + "/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	v, err := h.tenantView(c)
	if v == nil {
		return err
	}
	store := h.Cart.ForSession(ensureSID(c))
	store.Clear()
	return c.Redirect("/c/" + v.Dealership.Slug + "/cart")
}

// Inquiry redirects to the WhatsApp deep link for the whole cart. Empty
// carts bounce back to the cart page with a notice instead of producing an
// empty message.
func (h *CartHandler) Inquiry(c *fiber.Ctx) error {
	v, err := h.tenantView(c)
	if v == nil {
		return err
	}
	store := h.Cart.ForSession(ensureSID(c))
	if store.TotalItems() == 0 {
		return c.Redirect("/c/" + v.Dealership.Slug + "/cart?notice=empty")
	}

	link := inquiry.CartLink(contactOf(v), store.Items(), store.TotalPrice())
	applog.Audit(c, "inquiry.cart", map[string]any{"items": store.TotalItems()})
	return c.Redirect(link)
}

// ProductInquiry redirects to the deep link for a single product.
func (h *CartHandler) ProductInquiry(c *fiber.Ctx) error {
	v, err := h.tenantView(c)
	if v == nil {
		return err
	}
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}
	p, found := h.Storefront.Product(v, pid)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}

	link := inquiry.ProductLink(contactOf(v), p.Name, p.Price)
	applog.Audit(c, "inquiry.product", map[string]any{"product": pid})
	return c.Redirect(link)
}
