package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"threadbound/internal/repos"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load the demo catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := repos.SeedIfEmpty(db); err != nil {
			return err
		}
		fmt.Println("seeded", dbDSN)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
