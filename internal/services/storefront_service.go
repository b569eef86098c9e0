package services

import (
	"time"

	"motodealer/internal/cache"
	"motodealer/internal/catalog"
	"motodealer/internal/domain"
	"motodealer/internal/repos"
)

// StorefrontView is the full read snapshot one public page view needs. It is
// loaded in one shot per request (or taken from the TTL cache) and treated as
// immutable for the duration of the view.
type StorefrontView struct {
	Dealership domain.Dealership
	Settings   domain.SiteSettings
	Categories []domain.Category
	Products   []domain.Product
	Employees  []domain.Employee
}

type StorefrontService struct {
	Dealers   *repos.DealershipRepo
	Cats      *repos.CategoryRepo
	Prods     *repos.ProductRepo
	Employees *repos.EmployeeRepo
	Settings  *repos.SettingsRepo
	Cache     *cache.Cache
}

func NewStorefrontService(db *repos.DealershipRepo, cats *repos.CategoryRepo, prods *repos.ProductRepo,
	emps *repos.EmployeeRepo, settings *repos.SettingsRepo, c *cache.Cache) *StorefrontService {
	return &StorefrontService{Dealers: db, Cats: cats, Prods: prods, Employees: emps, Settings: settings, Cache: c}
}

func cacheKey(slug string) string { return "storefront:" + slug }

// View loads the tenant snapshot by slug. Snapshots are memoized briefly;
// admin writes call Invalidate so dashboard edits show up immediately.
func (s *StorefrontService) View(slug string) (*StorefrontView, error) {
	if s.Cache != nil {
		if v, ok := s.Cache.Get(cacheKey(slug)); ok {
			return v.(*StorefrontView), nil
		}
	}

	d, err := s.Dealers.BySlug(slug)
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings.Get(d.ID)
	if err != nil {
		return nil, err
	}
	cats, err := s.Cats.List(d.ID)
	if err != nil {
		return nil, err
	}
	prods, err := s.Prods.List(d.ID)
	if err != nil {
		return nil, err
	}
	emps, err := s.Employees.ListActive(d.ID)
	if err != nil {
		return nil, err
	}

	v := &StorefrontView{Dealership: d, Settings: settings, Categories: cats, Products: prods, Employees: emps}
	if s.Cache != nil {
		s.Cache.Set(cacheKey(slug), v, 30*time.Second)
	}
	return v, nil
}

// Invalidate drops the cached snapshot for a tenant after any admin write.
func (s *StorefrontService) Invalidate(slug string) {
	if s.Cache != nil {
		s.Cache.Delete(cacheKey(slug))
	}
}

// Filter applies the catalog filter to a snapshot's products.
func (s *StorefrontService) Filter(v *StorefrontView, c catalog.Criteria) []domain.Product {
	return catalog.Apply(v.Products, c)
}

// Product finds one product inside a snapshot.
func (s *StorefrontService) Product(v *StorefrontView, id string) (domain.Product, bool) {
	for _, p := range v.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Subcategories returns the subcategories of the selected category, used to
// populate the dependent filter dropdown.
func (v *StorefrontView) SubcategoriesOf(categoryID string) []domain.Subcategory {
	for _, c := range v.Categories {
		if c.ID == categoryID {
			return c.Subcategories
		}
	}
	return nil
}
