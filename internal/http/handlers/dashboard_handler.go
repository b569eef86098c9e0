package handlers

import (
	applog "motodealer/internal/log"
	"motodealer/internal/repos"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

type DashboardHandler struct {
	DB      *sqlx.DB
	Dealers *repos.DealershipRepo
}

// Overview renders the dashboard landing page with per-tenant counts.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}

	var counts struct {
		Products   int `db:"products"`
		Categories int `db:"categories"`
		Employees  int `db:"employees"`
		Available  int `db:"available"`
	}
	err = h.DB.Get(&counts, `
	  SELECT
	    (SELECT COUNT(*) FROM products   WHERE dealership_id=?) AS products,
	    (SELECT COUNT(*) FROM categories WHERE dealership_id=?) AS categories,
	    (SELECT COUNT(*) FROM employees  WHERE dealership_id=?) AS employees,
	    (SELECT COUNT(*) FROM products   WHERE dealership_id=? AND status='available') AS available
	`, u.DealershipID, u.DealershipID, u.DealershipID, u.DealershipID)
	if err != nil {
		applog.Error(c, "dashboard.counts.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar el panel"})
	}

	return render(c, "dashboard", fiber.Map{
		"Dealership": d,
		"Counts":     counts,
	})
}
