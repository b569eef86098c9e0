package handlers

import (
	"time"

	"motodealer/internal/cache"
	"motodealer/internal/config"
	"motodealer/internal/repos"
	"motodealer/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Cache             *cache.Cache
	StorefrontHandler *StorefrontHandler
	CartHandler       *CartHandler
	APIHandler        *APIHandler
	CategoryAdmin     *CategoryAdminHandler
	ProductAdmin      *ProductAdminHandler
	EmployeeAdmin     *EmployeeAdminHandler
	SettingsAdmin     *SettingsAdminHandler
	DashboardHandler  *DashboardHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	dealerRepo := repos.NewDealershipRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	empRepo := repos.NewEmployeeRepo(db)
	setRepo := repos.NewSettingsRepo(db)
	cartRepo := repos.NewCartRepo(db)

	snapCache := cache.New(30 * time.Second)
	storefrontSvc := services.NewStorefrontService(dealerRepo, catRepo, prodRepo, empRepo, setRepo, snapCache)
	cartSvc := services.NewCartService(cartRepo)

	return &Deps{
		Cache:             snapCache,
		StorefrontHandler: &StorefrontHandler{Storefront: storefrontSvc},
		CartHandler:       &CartHandler{Storefront: storefrontSvc, Cart: cartSvc},
		APIHandler:        &APIHandler{Storefront: storefrontSvc},
		CategoryAdmin:     &CategoryAdminHandler{Cats: catRepo, Dealers: dealerRepo, Storefront: storefrontSvc},
		ProductAdmin:      &ProductAdminHandler{Prods: prodRepo, Cats: catRepo, Dealers: dealerRepo, Storefront: storefrontSvc, MediaDir: cfg.MediaDir},
		EmployeeAdmin:     &EmployeeAdminHandler{Employees: empRepo, Dealers: dealerRepo, Storefront: storefrontSvc},
		SettingsAdmin:     &SettingsAdminHandler{Settings: setRepo, Dealers: dealerRepo, Storefront: storefrontSvc, MediaDir: cfg.MediaDir},
		DashboardHandler:  &DashboardHandler{DB: db, Dealers: dealerRepo},
	}
}
