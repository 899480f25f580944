package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"threadbound/internal/config"
	"threadbound/internal/http/handlers"
	"threadbound/internal/repos"
)

// newTestApp wires the same routes as cmd/threadbound against a seeded
// in-memory database. Middlewares that only add noise under test (logger,
// helmet, rate limiting, csrf) are left off.
func newTestApp(t *testing.T, cfg config.Config) (*fiber.App, *sqlx.DB) {
	t.Helper()
	if cfg.DBDSN == "" {
		cfg.DBDSN = ":memory:"
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:8080"
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = cfg.AdminPassword
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repos.SeedIfEmpty(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg)

	api := app.Group("/api")
	api.Get("/categories", deps.Catalog.Categories)
	api.Get("/products", deps.Catalog.Products)
	api.Get("/product/:slug", deps.Catalog.Product)
	api.Get("/product/:slug/sizes", deps.Catalog.ProductSizes)
	api.Get("/stripe-checkout", deps.Checkout.StripeCheckout)
	api.Post("/btcpay-checkout", deps.Checkout.BitcoinCheckout)
	api.Post("/webhooks/btcpay", deps.Webhook.BTCPay)
	api.Post("/bunny-upload", deps.Upload.Image)

	app.Get("/admin/login", deps.Admin.LoginForm)
	app.Post("/admin/login", deps.Admin.Login)

	admin := app.Group("/admin", handlers.RequireAdmin(deps.Auth))
	admin.Get("/", deps.Admin.Dashboard)

	adminAPI := app.Group("/api/admin", handlers.RequireAdmin(deps.Auth))
	adminAPI.Patch("/product/:id", deps.Admin.PatchProduct)
	adminAPI.Get("/product/:id/sizes", deps.Admin.ProductSizes)

	return app, db
}

func decodeJSON(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func jsonReq(method, target, body string) *http.Request {
	req := newRequest(method, target, body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func newRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return httptest.NewRequest(method, target, r)
}
