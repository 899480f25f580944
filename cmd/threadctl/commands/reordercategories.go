package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"threadbound/internal/repos"
)

var reorderCategoriesCmd = &cobra.Command{
	Use:   "reorder-categories",
	Short: "Normalize category sort_order to 10, 20, 30...",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := repos.NewMaintenanceRepo(db).ReorderCategories(); err != nil {
			return err
		}
		fmt.Println("categories reordered")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reorderCategoriesCmd)
}
