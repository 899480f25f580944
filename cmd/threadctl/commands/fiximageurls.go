package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"threadbound/internal/repos"
)

// An early upload script percent-encoded filenames that were already encoded,
// leaving "%2520" where "%20" belonged. This repairs the stored URLs.
var fixImageURLsCmd = &cobra.Command{
	Use:   "fix-image-urls",
	Short: "Repair double-percent-encoded CDN image URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		n, err := repos.NewMaintenanceRepo(db).FixEncodedImageURLs()
		if err != nil {
			return err
		}
		fmt.Printf("repaired %d image url(s)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fixImageURLsCmd)
}
