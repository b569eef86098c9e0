package handlers

import (
	"strconv"

	"motodealer/internal/domain"
	applog "motodealer/internal/log"
	"motodealer/internal/repos"
	"motodealer/internal/services"
	"motodealer/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EmployeeAdminHandler struct {
	Employees  *repos.EmployeeRepo
	Dealers    *repos.DealershipRepo
	Storefront *services.StorefrontService
}

func (h *EmployeeAdminHandler) List(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	emps, err := h.Employees.ListAll(u.DealershipID)
	if err != nil {
		applog.Error(c, "admin.employees.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar el equipo"})
	}
	return render(c, "admin_employees", fiber.Map{"Dealership": d, "Employees": emps})
}

func (h *EmployeeAdminHandler) employeeForm(c *fiber.Ctx, dealershipID string) (domain.Employee, error) {
	var e domain.Employee

	name, ok := validate.Name(c.FormValue("fullName"))
	if !ok {
		return e, fiber.NewError(fiber.StatusBadRequest, "invalid name")
	}
	phone, okPhone := validate.Phone(c.FormValue("phone"))
	whatsapp, okWA := validate.Phone(c.FormValue("whatsapp"))
	if !okPhone || !okWA {
		return e, fiber.NewError(fiber.StatusBadRequest, "invalid phone")
	}
	email := c.FormValue("email")
	if email != "" {
		if _, ok := validate.Email(email); !ok {
			return e, fiber.NewError(fiber.StatusBadRequest, "invalid email")
		}
	}
	order, _ := strconv.Atoi(c.FormValue("displayOrder"))

	e.DealershipID = dealershipID
	e.FullName = name
	e.Position = c.FormValue("position")
	e.Phone = phone
	e.Whatsapp = whatsapp
	e.Email = email
	e.IsActive = c.FormValue("isActive") == "1"
	e.DisplayOrder = order
	return e, nil
}

func (h *EmployeeAdminHandler) Create(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	e, err := h.employeeForm(c, u.DealershipID)
	if err != nil {
		return c.Status(400).SendString(err.Error())
	}
	e.ID = uuid.NewString()

	if err := h.Employees.Create(e); err != nil {
		applog.Error(c, "admin.employees.create.fail", err, map[string]any{"name": e.FullName})
		return c.Status(400).SendString("could not create employee")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.employees.create", map[string]any{"employee": e.ID})
	return c.Redirect("/dashboard/employees")
}

func (h *EmployeeAdminHandler) Update(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	e, err := h.employeeForm(c, u.DealershipID)
	if err != nil {
		return c.Status(400).SendString(err.Error())
	}
	e.ID = id

	if err := h.Employees.Update(e); err != nil {
		applog.Error(c, "admin.employees.update.fail", err, map[string]any{"employee": id})
		return c.Status(400).SendString("could not update employee")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.employees.update", map[string]any{"employee": id})
	return c.Redirect("/dashboard/employees")
}

func (h *EmployeeAdminHandler) Delete(c *fiber.Ctx) error {
	u, d, err := adminTenant(c, h.Dealers)
	if err != nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Employees.Delete(u.DealershipID, id); err != nil {
		applog.Error(c, "admin.employees.delete.fail", err, map[string]any{"employee": id})
		return c.Status(400).SendString("could not delete employee")
	}

	h.Storefront.Invalidate(d.Slug)
	applog.Audit(c, "admin.employees.delete", map[string]any{"employee": id})
	return c.Redirect("/dashboard/employees")
}
