package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"threadbound/internal/repos"
)

var (
	mergeKeepSlug string
	mergeDropSlug string
)

var mergeVariantsCmd = &cobra.Command{
	Use:   "merge-variants",
	Short: "Fold a duplicate color-variant product into the one to keep",
	Long: `Re-points images, attributes, category links and size inventory from
the duplicate onto the kept product, then deletes the duplicate row.

Example:
  threadctl merge-variants --keep reversible-jacket-black-white --drop reversible-jacket-white-black`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := repos.NewMaintenanceRepo(db).MergeVariants(mergeKeepSlug, mergeDropSlug); err != nil {
			return err
		}
		fmt.Printf("merged %s into %s\n", mergeDropSlug, mergeKeepSlug)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeVariantsCmd)
	mergeVariantsCmd.Flags().StringVar(&mergeKeepSlug, "keep", "", "Slug of the product to keep (required)")
	mergeVariantsCmd.Flags().StringVar(&mergeDropSlug, "drop", "", "Slug of the duplicate to remove (required)")
	_ = mergeVariantsCmd.MarkFlagRequired("keep")
	_ = mergeVariantsCmd.MarkFlagRequired("drop")
}
