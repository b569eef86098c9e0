package repos

import (
	"motodealer/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = `
  p.id, p.dealership_id, p.category_id, p.subcategory_id, p.name, p.slug,
  p.brand, p.model, p.year, p.price, p.description, p.status, p.specs_json,
  p.created_at,
  c.name   AS category_name,
  c.family AS category_family,
  s.name   AS subcategory_name
`

const productJoins = `
  FROM products p
  LEFT JOIN categories    c ON c.id = p.category_id
  LEFT JOIN subcategories s ON s.id = p.subcategory_id
`

// List returns the tenant's products, most recent first, with images attached.
func (r *ProductRepo) List(dealershipID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productColumns+productJoins+`
	  WHERE p.dealership_id = ?
	  ORDER BY p.created_at DESC, p.id
	`, dealershipID)
	if err != nil {
		return nil, err
	}
	return r.attachImages(dealershipID, out)
}

func (r *ProductRepo) Get(dealershipID, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productColumns+productJoins+`
	  WHERE p.dealership_id = ? AND p.id = ?
	`, dealershipID, id)
	if err != nil {
		return p, err
	}
	var imgs []domain.ProductImage
	if err := r.db.Select(&imgs, `
	  SELECT id, product_id, dealership_id, image_url, is_primary, display_order
	  FROM product_images
	  WHERE product_id = ?
	  ORDER BY display_order, id
	`, id); err != nil {
		return p, err
	}
	p.Images = imgs
	return p, nil
}

func (r *ProductRepo) attachImages(dealershipID string, products []domain.Product) ([]domain.Product, error) {
	if len(products) == 0 {
		return products, nil
	}
	var imgs []domain.ProductImage
	err := r.db.Select(&imgs, `
	  SELECT id, product_id, dealership_id, image_url, is_primary, display_order
	  FROM product_images
	  WHERE dealership_id = ?
	  ORDER BY display_order, id
	`, dealershipID)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string][]domain.ProductImage)
	for _, img := range imgs {
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
	}
	for i := range products {
		products[i].Images = byProduct[products[i].ID]
	}
	return products, nil
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, dealership_id, category_id, subcategory_id, name, slug,
	    brand, model, year, price, description, status, specs_json, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.DealershipID, p.CategoryID, p.SubcategoryID, p.Name, p.Slug,
		p.Brand, p.Model, p.Year, p.Price, p.Description, p.Status, p.SpecsJSON)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products SET category_id=?, subcategory_id=?, name=?, slug=?,
	    brand=?, model=?, year=?, price=?, description=?, status=?, specs_json=?
	  WHERE dealership_id=? AND id=?
	`, p.CategoryID, p.SubcategoryID, p.Name, p.Slug,
		p.Brand, p.Model, p.Year, p.Price, p.Description, p.Status, p.SpecsJSON,
		p.DealershipID, p.ID)
	return err
}

func (r *ProductRepo) Delete(dealershipID, id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE dealership_id=? AND id=?`, dealershipID, id)
	return err
}

func (r *ProductRepo) AddImage(img domain.ProductImage) error {
	_, err := r.db.Exec(`
	  INSERT INTO product_images(id, product_id, dealership_id, image_url, is_primary, display_order)
	  VALUES(?,?,?,?,?,?)
	`, img.ID, img.ProductID, img.DealershipID, img.ImageURL, img.IsPrimary, img.DisplayOrder)
	return err
}

func (r *ProductRepo) DeleteImage(dealershipID, imageID string) error {
	_, err := r.db.Exec(`DELETE FROM product_images WHERE dealership_id=? AND id=?`, dealershipID, imageID)
	return err
}

// CountImages backs the "first uploaded image becomes primary" rule.
func (r *ProductRepo) CountImages(productID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM product_images WHERE product_id=?`, productID)
	return n, err
}
