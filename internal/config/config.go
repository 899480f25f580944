package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries every deployment setting the service needs. It is built once
// at process start and passed by reference; optional integrations are left
// empty rather than failing.
type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	// Public base URL of the storefront, used for post-payment redirects.
	PublicBaseURL string
	Currency      string

	// Bitcoin payment gateway (BTCPay Greenfield). All three are required
	// for the bitcoin checkout path; the webhook secret alone gates the
	// webhook receiver.
	BTCPayURL           string
	BTCPayAPIKey        string
	BTCPayStoreID       string
	BTCPayWebhookSecret string

	// Bunny storage (product image CDN).
	BunnyStorageZone string
	BunnyAccessKey   string
	BunnyPullZone    string
	BunnyStorageHost string

	// Admin surface. Empty AdminPassword disables auth entirely (explicit
	// escape hatch for local development). SessionSecret signs the admin
	// session cookie and falls back to the password when unset.
	AdminPassword string
	SessionSecret string
}

func Load() Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("[config] could not load .env: %v", err)
		}
	}

	cfg := Config{
		Port:    getEnv("PORT", "8080"),
		DBDSN:   getEnv("DB_DSN", "threadbound.db"),
		LogFile: getEnv("LOG_FILE", ""),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		Currency:      getEnv("CURRENCY", "USD"),

		BTCPayURL:           getEnv("BTCPAY_URL", ""),
		BTCPayAPIKey:        getEnv("BTCPAY_API_KEY", ""),
		BTCPayStoreID:       getEnv("BTCPAY_STORE_ID", ""),
		BTCPayWebhookSecret: getEnv("BTCPAY_WEBHOOK_SECRET", ""),

		BunnyStorageZone: getEnv("BUNNY_STORAGE_ZONE", ""),
		BunnyAccessKey:   getEnv("BUNNY_ACCESS_KEY", ""),
		BunnyPullZone:    getEnv("BUNNY_PULL_ZONE", ""),
		BunnyStorageHost: getEnv("BUNNY_STORAGE_HOST", "storage.bunnycdn.com"),

		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = cfg.AdminPassword
	}

	log.Printf("[config] PORT=%s DB_DSN=%s btcpay=%v bunny=%v admin_auth=%v",
		cfg.Port, cfg.DBDSN, cfg.BTCPayConfigured(), cfg.BunnyConfigured(), cfg.AdminPassword != "")
	return cfg
}

// BTCPayConfigured reports whether the bitcoin checkout path is usable.
func (c Config) BTCPayConfigured() bool {
	return c.BTCPayURL != "" && c.BTCPayAPIKey != "" && c.BTCPayStoreID != ""
}

// BunnyConfigured reports whether image uploads are usable.
func (c Config) BunnyConfigured() bool {
	return c.BunnyStorageZone != "" && c.BunnyAccessKey != "" && c.BunnyPullZone != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
