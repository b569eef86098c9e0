package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"

	"motodealer/internal/config"
	"motodealer/internal/http/handlers"
	"motodealer/internal/repos"
	"motodealer/internal/services"
)

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func newCartApp(t *testing.T) *fiber.App {
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
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	deps := handlers.NewDeps(db, config.Config{MediaDir: t.TempDir()}, authSvc)
	t.Cleanup(deps.Cache.Stop)
	app.Get("/c/:slug/cart", deps.CartHandler.View)
	app.Post("/c/:slug/cart", deps.CartHandler.Add)
	app.Post("/c/:slug/cart/update", deps.CartHandler.Update)
	app.Post("/c/:slug/cart/remove", deps.CartHandler.Remove)
	app.Get("/c/:slug/inquiry", deps.CartHandler.Inquiry)
	return app
}

func postForm(app *fiber.App, t *testing.T, path, form string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestCartAddViewAndInquiry(t *testing.T) {
	app := newCartApp(t)

	// First visit issues the csrf cookie.
	respFirst, err := app.Test(httptest.NewRequest("GET", "/c/motostachira/cart", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := cookieValue(respFirst, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}
	csrfCookie := &http.Cookie{Name: "csrf_", Value: csrfTok}

	// Add a product; the handler mints the session cookie.
	respAdd := postForm(app, t, "/c/motostachira/cart",
		"csrf="+csrfTok+"&productId=p-cbr500", csrfCookie)
	if respAdd.StatusCode != http.StatusFound {
		t.Fatalf("want redirect after add, got %d", respAdd.StatusCode)
	}
	sid := cookieValue(respAdd, "sid")
	if sid == "" {
		t.Fatal("sid cookie missing")
	}
	sidCookie := &http.Cookie{Name: "sid", Value: sid}

	// Cart page shows the line.
	reqView := httptest.NewRequest("GET", "/c/motostachira/cart", nil)
	reqView.AddCookie(sidCookie)
	respView, err := app.Test(reqView)
	if err != nil {
		t.Fatal(err)
	}
	page := body(t, respView)
	if !strings.Contains(page, "Honda CBR 500") {
		t.Fatal("cart page missing added product")
	}
	if !strings.Contains(page, "(1)") {
		t.Fatalf("cart count wrong:\n%s", page)
	}

	// Full-cart inquiry deep link.
	reqInq := httptest.NewRequest("GET", "/c/motostachira/inquiry", nil)
	reqInq.AddCookie(sidCookie)
	respInq, err := app.Test(reqInq)
	if err != nil {
		t.Fatal(err)
	}
	if respInq.StatusCode != http.StatusFound {
		t.Fatalf("want 302, got %d", respInq.StatusCode)
	}
	loc := respInq.Header.Get("Location")
	if !strings.HasPrefix(loc, "https://wa.me/584141234567?text=") {
		t.Fatalf("bad deep link: %s", loc)
	}
	if !strings.Contains(loc, "Honda%20CBR%20500") || !strings.Contains(loc, "6500") {
		t.Fatalf("message incomplete: %s", loc)
	}
}

func TestEmptyCartInquiryBouncesBack(t *testing.T) {
	app := newCartApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/c/motostachira/inquiry", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); !strings.HasSuffix(loc, "/cart?notice=empty") {
		t.Fatalf("empty cart should bounce to the cart page, got %s", loc)
	}
}

func TestCartUpdateToZeroRemovesLine(t *testing.T) {
	app := newCartApp(t)

	respFirst, err := app.Test(httptest.NewRequest("GET", "/c/motostachira/cart", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := cookieValue(respFirst, "csrf_")
	csrfCookie := &http.Cookie{Name: "csrf_", Value: csrfTok}

	respAdd := postForm(app, t, "/c/motostachira/cart",
		"csrf="+csrfTok+"&productId=p-casco-ls2", csrfCookie)
	sidCookie := &http.Cookie{Name: "sid", Value: cookieValue(respAdd, "sid")}

	postForm(app, t, "/c/motostachira/cart/update",
		"csrf="+csrfTok+"&productId=p-casco-ls2&qty=0", csrfCookie, sidCookie)

	reqView := httptest.NewRequest("GET", "/c/motostachira/cart", nil)
	reqView.AddCookie(sidCookie)
	respView, err := app.Test(reqView)
	if err != nil {
		t.Fatal(err)
	}
	if page := body(t, respView); strings.Contains(page, "Casco LS2 Rapid") {
		t.Fatal("qty=0 should remove the line")
	}
}

func TestCartAddUnknownProductIs404(t *testing.T) {
	app := newCartApp(t)

	respFirst, err := app.Test(httptest.NewRequest("GET", "/c/motostachira/cart", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := cookieValue(respFirst, "csrf_")
	csrfCookie := &http.Cookie{Name: "csrf_", Value: csrfTok}

	resp := postForm(app, t, "/c/motostachira/cart",
		"csrf="+csrfTok+"&productId=ghost", csrfCookie)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 for unknown product, got %d", resp.StatusCode)
	}
}
