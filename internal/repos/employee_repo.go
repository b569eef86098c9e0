package repos

import (
	"motodealer/internal/domain"

	"github.com/jmoiron/sqlx"
)

type EmployeeRepo struct{ db *sqlx.DB }

func NewEmployeeRepo(db *sqlx.DB) *EmployeeRepo { return &EmployeeRepo{db: db} }

// ListActive returns the employees shown on the storefront, in display order.
func (r *EmployeeRepo) ListActive(dealershipID string) ([]domain.Employee, error) {
	var out []domain.Employee
	err := r.db.Select(&out, `
	  SELECT id, dealership_id, full_name, position, phone, whatsapp, email, is_active, display_order
	  FROM employees
	  WHERE dealership_id = ? AND is_active = 1
	  ORDER BY display_order, full_name
	`, dealershipID)
	return out, err
}

// ListAll returns every employee for the dashboard.
func (r *EmployeeRepo) ListAll(dealershipID string) ([]domain.Employee, error) {
	var out []domain.Employee
	err := r.db.Select(&out, `
	  SELECT id, dealership_id, full_name, position, phone, whatsapp, email, is_active, display_order
	  FROM employees
	  WHERE dealership_id = ?
	  ORDER BY display_order, full_name
	`, dealershipID)
	return out, err
}

func (r *EmployeeRepo) Create(e domain.Employee) error {
	_, err := r.db.Exec(`
	  INSERT INTO employees(id, dealership_id, full_name, position, phone, whatsapp, email, is_active, display_order)
	  VALUES(?,?,?,?,?,?,?,?,?)
	`, e.ID, e.DealershipID, e.FullName, e.Position, e.Phone, e.Whatsapp, e.Email, e.IsActive, e.DisplayOrder)
	return err
}

func (r *EmployeeRepo) Update(e domain.Employee) error {
	_, err := r.db.Exec(`
	  UPDATE employees SET full_name=?, position=?, phone=?, whatsapp=?, email=?, is_active=?, display_order=?
	  WHERE dealership_id=? AND id=?
	`, e.FullName, e.Position, e.Phone, e.Whatsapp, e.Email, e.IsActive, e.DisplayOrder, e.DealershipID, e.ID)
	return err
}

func (r *EmployeeRepo) Delete(dealershipID, id string) error {
	_, err := r.db.Exec(`DELETE FROM employees WHERE dealership_id=? AND id=?`, dealershipID, id)
	return err
}
