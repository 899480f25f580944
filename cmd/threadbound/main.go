package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"threadbound/internal/config"
	"threadbound/internal/http/handlers"
	applog "threadbound/internal/log"
	"threadbound/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.SeedIfEmpty(db); err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})
	app.Server().MaxRequestBodySize = 12 << 20 // image uploads top out at 10MB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	// CSRF protects the admin login form only; the JSON API is token-free.
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}))

	deps := handlers.NewDeps(db, cfg)

	// ---------- Public API ----------
	api := app.Group("/api")
	api.Get("/categories", deps.Catalog.Categories)
	api.Get("/products", deps.Catalog.Products)
	api.Get("/product/:slug", deps.Catalog.Product)
	api.Get("/product/:slug/sizes", deps.Catalog.ProductSizes)

	api.Get("/stripe-checkout", deps.Checkout.StripeCheckout)
	api.Post("/btcpay-checkout", deps.Checkout.BitcoinCheckout)
	api.Post("/webhooks/btcpay", deps.Webhook.BTCPay)
	api.Post("/bunny-upload", deps.Upload.Image)

	// ---------- Admin ----------
	app.Get("/admin/login", deps.Admin.LoginForm)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.admin_login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many attempts. Please try again later.")
		},
	}), deps.Admin.Login)

	admin := app.Group("/admin", handlers.RequireAdmin(deps.Auth))
	admin.Get("/", deps.Admin.Dashboard)

	adminAPI := app.Group("/api/admin", handlers.RequireAdmin(deps.Auth))
	adminAPI.Patch("/product/:id", deps.Admin.PatchProduct)
	adminAPI.Get("/product/:id/sizes", deps.Admin.ProductSizes)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
