package repos

import (
	"motodealer/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// List returns the tenant's categories with nested subcategories.
func (r *CategoryRepo) List(dealershipID string) ([]domain.Category, error) {
	var cats []domain.Category
	err := r.db.Select(&cats, `
	  SELECT id, dealership_id, name, slug, COALESCE(description,'') AS description, family
	  FROM categories
	  WHERE dealership_id = ?
	  ORDER BY name
	`, dealershipID)
	if err != nil {
		return nil, err
	}

	var subs []domain.Subcategory
	err = r.db.Select(&subs, `
	  SELECT id, dealership_id, category_id, name, slug
	  FROM subcategories
	  WHERE dealership_id = ?
	  ORDER BY name
	`, dealershipID)
	if err != nil {
		return nil, err
	}

	byCat := make(map[string][]domain.Subcategory, len(cats))
	for _, s := range subs {
		byCat[s.CategoryID] = append(byCat[s.CategoryID], s)
	}
	for i := range cats {
		cats[i].Subcategories = byCat[cats[i].ID]
	}
	return cats, nil
}

func (r *CategoryRepo) Get(dealershipID, id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, dealership_id, name, slug, COALESCE(description,'') AS description, family
	  FROM categories
	  WHERE dealership_id = ? AND id = ?
	`, dealershipID, id)
	return c, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, dealership_id, name, slug, description, family)
	  VALUES(?,?,?,?,?,?)
	`, c.ID, c.DealershipID, c.Name, c.Slug, c.Description, c.Family)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	_, err := r.db.Exec(`
	  UPDATE categories SET name=?, slug=?, description=?, family=?
	  WHERE dealership_id=? AND id=?
	`, c.Name, c.Slug, c.Description, c.Family, c.DealershipID, c.ID)
	return err
}

func (r *CategoryRepo) Delete(dealershipID, id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE dealership_id=? AND id=?`, dealershipID, id)
	return err
}

func (r *CategoryRepo) GetSubcategory(dealershipID, id string) (domain.Subcategory, error) {
	var s domain.Subcategory
	err := r.db.Get(&s, `
	  SELECT id, dealership_id, category_id, name, slug
	  FROM subcategories
	  WHERE dealership_id = ? AND id = ?
	`, dealershipID, id)
	return s, err
}

func (r *CategoryRepo) CreateSubcategory(s domain.Subcategory) error {
	_, err := r.db.Exec(`
	  INSERT INTO subcategories(id, dealership_id, category_id, name, slug)
	  VALUES(?,?,?,?,?)
	`, s.ID, s.DealershipID, s.CategoryID, s.Name, s.Slug)
	return err
}

func (r *CategoryRepo) DeleteSubcategory(dealershipID, id string) error {
	_, err := r.db.Exec(`DELETE FROM subcategories WHERE dealership_id=? AND id=?`, dealershipID, id)
	return err
}
