package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"motodealer/internal/config"
	"motodealer/internal/http/handlers"
	applog "motodealer/internal/log"
	"motodealer/internal/repos"
	"motodealer/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo, Dealers: repos.NewDealershipRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Algo salió mal. Inténtalo de nuevo.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Algo salió mal. Inténtalo de nuevo.")
			}
			return nil
		},
	})
	// Global body size guard (multipart image uploads included)
	app.Server().MaxRequestBodySize = 10 << 20 // 10 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "La verificación de seguridad falló. Refresca e inténtalo de nuevo."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /static -> ./web/static")
	log.Printf("[static] /media  -> %s", mediaDir)

	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(mediaDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	// Landing page
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("home", fiber.Map{})
	})

	// Public storefront, tenant by slug
	app.Get("/c/:slug", deps.StorefrontHandler.Catalog)
	app.Get("/c/:slug/producto/:id", deps.StorefrontHandler.ProductDetail)
	app.Get("/c/:slug/producto/:id/inquiry", deps.CartHandler.ProductInquiry)

	// Inquiry cart
	app.Get("/c/:slug/cart", deps.CartHandler.View)
	app.Post("/c/:slug/cart", deps.CartHandler.Add)
	app.Post("/c/:slug/cart/update", deps.CartHandler.Update)
	app.Post("/c/:slug/cart/remove", deps.CartHandler.Remove)
	app.Post("/c/:slug/cart/clear", deps.CartHandler.Clear)
	app.Get("/c/:slug/inquiry", deps.CartHandler.Inquiry)

	// API
	api := app.Group("/api/v1")
	api.Get("/c/:slug/products", limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|products"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.products.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), deps.APIHandler.Products)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Demasiados intentos. Inténtalo más tarde."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Dashboard (scoped to the logged-in admin's dealership)
	dash := app.Group("/dashboard", handlers.RequireUser(authSvc))
	dash.Get("/", deps.DashboardHandler.Overview)

	dash.Get("/categories", deps.CategoryAdmin.List)
	dash.Post("/categories", deps.CategoryAdmin.Create)
	dash.Post("/categories/:id/update", deps.CategoryAdmin.Update)
	dash.Post("/categories/:id/delete", deps.CategoryAdmin.Delete)
	dash.Post("/subcategories", deps.CategoryAdmin.CreateSubcategory)
	dash.Post("/subcategories/:id/delete", deps.CategoryAdmin.DeleteSubcategory)

	dash.Get("/products", deps.ProductAdmin.List)
	dash.Post("/products", deps.ProductAdmin.Create)
	dash.Post("/products/:id/update", deps.ProductAdmin.Update)
	dash.Post("/products/:id/delete", deps.ProductAdmin.Delete)
	dash.Post("/products/images/:id/delete", deps.ProductAdmin.DeleteImage)

	dash.Get("/employees", deps.EmployeeAdmin.List)
	dash.Post("/employees", deps.EmployeeAdmin.Create)
	dash.Post("/employees/:id/update", deps.EmployeeAdmin.Update)
	dash.Post("/employees/:id/delete", deps.EmployeeAdmin.Delete)

	dash.Get("/settings", deps.SettingsAdmin.Form)
	dash.Post("/settings", deps.SettingsAdmin.Save)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Página no encontrada"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
