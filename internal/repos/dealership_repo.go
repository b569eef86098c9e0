package repos

import (
	"motodealer/internal/domain"

	"github.com/jmoiron/sqlx"
)

type DealershipRepo struct{ db *sqlx.DB }

func NewDealershipRepo(db *sqlx.DB) *DealershipRepo { return &DealershipRepo{db: db} }

// BySlug resolves an active tenant; inactive tenants are invisible on the
// public storefront.
func (r *DealershipRepo) BySlug(slug string) (domain.Dealership, error) {
	var d domain.Dealership
	err := r.db.Get(&d, `
	  SELECT id, slug, name, email, phone, address, is_active
	  FROM dealerships
	  WHERE slug = ? AND is_active = 1
	`, slug)
	return d, err
}

func (r *DealershipRepo) ByID(id string) (domain.Dealership, error) {
	var d domain.Dealership
	err := r.db.Get(&d, `
	  SELECT id, slug, name, email, phone, address, is_active
	  FROM dealerships
	  WHERE id = ?
	`, id)
	return d, err
}
