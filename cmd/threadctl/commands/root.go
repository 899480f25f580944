// Package commands holds the one-shot catalog maintenance jobs. Each was a
// throwaway script at some point; threadctl keeps them runnable and reviewed.
package commands

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"threadbound/internal/config"
	"threadbound/internal/repos"
)

var dbDSN string

var rootCmd = &cobra.Command{
	Use:   "threadctl",
	Short: "Catalog maintenance and asset pipeline tool",
	Long: `threadctl bundles the offline jobs that run against the storefront
database: seeding, image uploads, and one-shot data repairs.`,
	SilenceUsage: true,
}

func init() {
	def := os.Getenv("DB_DSN")
	if def == "" {
		def = "threadbound.db"
	}
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", def, "Database DSN")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func openDB() (*sqlx.DB, error) {
	return repos.OpenDB(dbDSN)
}

// loadConfig pulls deployment settings (CDN credentials) for commands that
// talk to external services.
func loadConfig() config.Config {
	return config.Load()
}
