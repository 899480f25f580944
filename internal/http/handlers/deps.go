package handlers

import (
	"time"

	"github.com/jmoiron/sqlx"

	"threadbound/internal/btcpay"
	"threadbound/internal/bunny"
	"threadbound/internal/cache"
	"threadbound/internal/config"
	"threadbound/internal/repos"
	"threadbound/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	Catalog  *CatalogHandler
	Checkout *CheckoutHandler
	Webhook  *WebhookHandler
	Admin    *AdminHandler
	Upload   *UploadHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)

	var gateway *btcpay.Client
	if cfg.BTCPayConfigured() {
		gateway = btcpay.New(cfg.BTCPayURL, cfg.BTCPayAPIKey, cfg.BTCPayStoreID)
	}
	checkoutSvc := &services.CheckoutService{
		Prods:         prodRepo,
		Orders:        orderRepo,
		Gateway:       gateway,
		Currency:      cfg.Currency,
		PublicBaseURL: cfg.PublicBaseURL,
	}

	var cdn *bunny.Client
	if cfg.BunnyConfigured() {
		cdn = bunny.New(cfg.BunnyStorageZone, cfg.BunnyAccessKey, cfg.BunnyPullZone, cfg.BunnyStorageHost)
	}

	auth := &services.AuthService{Password: cfg.AdminPassword, Secret: cfg.SessionSecret}
	sizesCache := cache.New(60 * time.Second)

	return &Deps{
		Auth:     auth,
		Catalog:  &CatalogHandler{Catalog: catalogSvc, Prods: prodRepo, Sizes: sizesCache},
		Checkout: &CheckoutHandler{Checkout: checkoutSvc},
		Webhook:  &WebhookHandler{Orders: orderRepo, Secret: cfg.BTCPayWebhookSecret},
		Admin:    &AdminHandler{Prods: prodRepo, Inv: invRepo, Orders: orderRepo, Auth: auth, Sizes: sizesCache},
		Upload:   &UploadHandler{CDN: cdn},
	}
}
