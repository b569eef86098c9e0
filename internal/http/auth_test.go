package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"motodealer/internal/config"
	"motodealer/internal/http/handlers"
	"motodealer/internal/repos"
	"motodealer/internal/services"
)

func TestPasswordsSeededAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatalf("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestLoginSuccessFailAndThrottle(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db), Dealers: repos.NewDealershipRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}
	engine := html.New("../../web/templates", ".html")
	engine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 2, Expiration: time.Minute}), authH.Login)

	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := cookieValue(respLogin, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}
	csrfCookie := &http.Cookie{Name: "csrf_", Value: csrfTok}

	// bad password -> 401
	respBad := postForm(app, t, "/login",
		"csrf="+csrfTok+"&email=admin@motostachira.test&password=Wrongpass1", csrfCookie)
	if respBad.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", respBad.StatusCode)
	}

	// good password -> redirect to dashboard
	respGood := postForm(app, t, "/login",
		"csrf="+csrfTok+"&email=admin@motostachira.test&password=Passw0rd!", csrfCookie)
	if respGood.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on success, got %d", respGood.StatusCode)
	}

	// third attempt trips the throttle
	respThird := postForm(app, t, "/login",
		"csrf="+csrfTok+"&email=admin@motostachira.test&password=Wrongpass1", csrfCookie)
	if respThird.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", respThird.StatusCode)
	}
}

// Dashboard routes without a session must bounce to the login page, and an
// admin write must show up on the public storefront right away.
func TestDashboardAuthAndCacheInvalidation(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db), Dealers: repos.NewDealershipRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}
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
	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Get("/c/:slug", deps.StorefrontHandler.Catalog)
	dash := app.Group("/dashboard", handlers.RequireUser(authSvc))
	dash.Get("/categories", deps.CategoryAdmin.List)
	dash.Post("/categories", deps.CategoryAdmin.Create)

	// no session -> redirect to /login
	respAnon, err := app.Test(httptest.NewRequest("GET", "/dashboard/categories", nil))
	if err != nil {
		t.Fatal(err)
	}
	if respAnon.StatusCode != http.StatusFound || respAnon.Header.Get("Location") != "/login" {
		t.Fatalf("anonymous dashboard access should bounce to login, got %d -> %s",
			respAnon.StatusCode, respAnon.Header.Get("Location"))
	}

	// log in
	respForm, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := cookieValue(respForm, "csrf_")
	csrfCookie := &http.Cookie{Name: "csrf_", Value: csrfTok}
	respLogin := postForm(app, t, "/login",
		"csrf="+csrfTok+"&email=admin@motostachira.test&password=Passw0rd!", csrfCookie)
	sid := cookieValue(respLogin, "sid")
	if sid == "" {
		t.Fatal("sid cookie missing after login")
	}
	sidCookie := &http.Cookie{Name: "sid", Value: sid}

	// warm the storefront cache
	if _, err := app.Test(httptest.NewRequest("GET", "/c/motostachira", nil)); err != nil {
		t.Fatal(err)
	}

	// create a category through the dashboard
	respCreate := postForm(app, t, "/dashboard/categories",
		"csrf="+csrfTok+"&name=Aceites&family=general", csrfCookie, sidCookie)
	if respCreate.StatusCode != http.StatusFound {
		t.Fatalf("category create failed: %d", respCreate.StatusCode)
	}

	// the public page reflects the write immediately
	respStore, err := app.Test(httptest.NewRequest("GET", "/c/motostachira", nil))
	if err != nil {
		t.Fatal(err)
	}
	if page := body(t, respStore); !strings.Contains(page, "Aceites") {
		t.Fatal("admin write not visible on the storefront")
	}
}
