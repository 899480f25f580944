package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"threadbound/internal/repos"
)

var (
	setFieldSlug  string
	setFieldName  string
	setFieldValue string
)

var setFieldCmd = &cobra.Command{
	Use:   "set-field",
	Short: "Rewrite one free-form text field on a product",
	Long: `Rewrites description, short_description, measurements, materials,
features or details for a product addressed by slug.

Example:
  threadctl set-field --slug heavyweight-hoodie --field materials --value "100% cotton fleece, 450gsm"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := repos.NewMaintenanceRepo(db).SetTextField(setFieldSlug, setFieldName, setFieldValue); err != nil {
			return err
		}
		fmt.Printf("updated %s.%s\n", setFieldSlug, setFieldName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setFieldCmd)
	setFieldCmd.Flags().StringVar(&setFieldSlug, "slug", "", "Product slug (required)")
	setFieldCmd.Flags().StringVar(&setFieldName, "field", "", "Column to rewrite (required)")
	setFieldCmd.Flags().StringVar(&setFieldValue, "value", "", "New value (required)")
	_ = setFieldCmd.MarkFlagRequired("slug")
	_ = setFieldCmd.MarkFlagRequired("field")
	_ = setFieldCmd.MarkFlagRequired("value")
}
