package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"motodealer/internal/config"
	"motodealer/internal/http/handlers"
	"motodealer/internal/repos"
	"motodealer/internal/services"
)

// newTestApp wires the public storefront routes against a seeded in-memory
// database, the same way main does.
func newTestApp(t *testing.T) (*fiber.App, *handlers.Deps) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db), Dealers: repos.NewDealershipRepo(db)}

	engine := html.New("../../web/templates", ".html")
	engine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})
	app := fiber.New(fiber.Config{Views: engine})

	deps := handlers.NewDeps(db, config.Config{MediaDir: t.TempDir()}, authSvc)
	t.Cleanup(deps.Cache.Stop)

	app.Get("/c/:slug", deps.StorefrontHandler.Catalog)
	app.Get("/c/:slug/producto/:id", deps.StorefrontHandler.ProductDetail)
	app.Get("/c/:slug/producto/:id/inquiry", deps.CartHandler.ProductInquiry)
	app.Get("/api/v1/c/:slug/products", deps.APIHandler.Products)
	return app, deps
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestCatalogRendersSeededTenant(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/c/motostachira", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	page := body(t, resp)
	for _, want := range []string{"Motos Táchira", "Honda CBR 500", "Yamaha DT 175", "Casco LS2 Rapid"} {
		if !strings.Contains(page, want) {
			t.Fatalf("catalog missing %q", want)
		}
	}
	// The unpriced product renders the price-on-request label.
	if !strings.Contains(page, "Precio a consultar") {
		t.Fatal("price-on-request label missing")
	}
}

func TestCatalogUnknownSlugIs404(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/c/no-such-dealer", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}

func TestCatalogFilterNarrowsResults(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/c/motostachira?q=honda", nil))
	if err != nil {
		t.Fatal(err)
	}
	page := body(t, resp)
	if !strings.Contains(page, "Honda CBR 500") {
		t.Fatal("query should keep the Honda")
	}
	if strings.Contains(page, "Casco LS2 Rapid") {
		t.Fatal("query should drop unrelated products")
	}
}

func TestProductDetailShowsSpecSheet(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/c/motostachira/producto/p-cbr500", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	page := body(t, resp)
	if !strings.Contains(page, "Ficha técnica") {
		t.Fatal("motorcycle product should render its technical sheet")
	}
	if !strings.Contains(page, "Bicilíndrico en línea, 4 tiempos") {
		t.Fatal("seeded spec value missing")
	}

	// Non-motorcycle product: no sheet.
	resp, err = app.Test(httptest.NewRequest("GET", "/c/motostachira/producto/p-casco-ls2", nil))
	if err != nil {
		t.Fatal(err)
	}
	if page := body(t, resp); strings.Contains(page, "Ficha técnica") {
		t.Fatal("general product must not render a technical sheet")
	}
}

func TestProductInquiryRedirectsToWhatsApp(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/c/motostachira/producto/p-cbr500/inquiry", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want 302, got %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "https://wa.me/584141234567?text=") {
		t.Fatalf("bad deep link: %s", loc)
	}
	if !strings.Contains(loc, "Honda%20CBR%20500") {
		t.Fatalf("message missing product name: %s", loc)
	}
}

func TestProductsAPIFilters(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/c/motostachira/products?category=cat-motos", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	payload := body(t, resp)
	if !strings.Contains(payload, "p-cbr500") || !strings.Contains(payload, "p-dt175") {
		t.Fatalf("motorcycle products missing: %s", payload)
	}
	if strings.Contains(payload, "p-casco-ls2") {
		t.Fatalf("category filter leaked: %s", payload)
	}
}
