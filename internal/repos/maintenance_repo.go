package repos

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// MaintenanceRepo backs the one-shot repair jobs in the threadctl CLI. These
// mutate the catalog directly and are not reachable from the HTTP surface.
type MaintenanceRepo struct{ db *sqlx.DB }

func NewMaintenanceRepo(db *sqlx.DB) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

// FixEncodedImageURLs repairs double-percent-encoded CDN URLs ("%2520" for a
// space) left behind by an earlier upload script. Returns the number of rows
// touched.
func (r *MaintenanceRepo) FixEncodedImageURLs() (int, error) {
	type row struct {
		ID  string `db:"id"`
		URL string `db:"url"`
	}
	var rows []row
	if err := r.db.Select(&rows, `SELECT id, url FROM product_images WHERE url LIKE '%\%25%' ESCAPE '\'`); err != nil {
		return 0, err
	}
	fixed := 0
	for _, img := range rows {
		repaired := strings.ReplaceAll(img.URL, "%25", "%")
		if repaired == img.URL {
			continue
		}
		if _, err := r.db.Exec(`UPDATE product_images SET url = ? WHERE id = ?`, repaired, img.ID); err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, nil
}

// MergeVariants folds a duplicate color-variant product row into the one to
// keep: images, attributes, category links and size rows are re-pointed, then
// the duplicate is deleted. Size rows already present on the kept product win.
func (r *MaintenanceRepo) MergeVariants(keepSlug, dropSlug string) error {
	var keepID, dropID string
	if err := r.db.Get(&keepID, `SELECT id FROM products WHERE slug = ?`, keepSlug); err != nil {
		return fmt.Errorf("keep product %q: %w", keepSlug, err)
	}
	if err := r.db.Get(&dropID, `SELECT id FROM products WHERE slug = ?`, dropSlug); err != nil {
		return fmt.Errorf("drop product %q: %w", dropSlug, err)
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE product_images SET product_id = ?, is_primary = 0 WHERE product_id = ?`, keepID, dropID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  UPDATE product_attributes SET product_id = ?
	  WHERE product_id = ? AND name NOT IN (SELECT name FROM product_attributes WHERE product_id = ?)
	`, keepID, dropID, keepID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  INSERT OR IGNORE INTO product_categories(product_id, category_id)
	  SELECT ?, category_id FROM product_categories WHERE product_id = ?
	`, keepID, dropID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  INSERT INTO product_size_inventory(product_id, size, quantity)
	  SELECT ?, size, quantity FROM product_size_inventory WHERE product_id = ?
	  ON CONFLICT(product_id, size) DO NOTHING
	`, keepID, dropID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM products WHERE id = ?`, dropID); err != nil {
		return err
	}
	return tx.Commit()
}

// ReorderCategories rewrites sort_order as 10, 20, 30... following the
// current display order, leaving room for manual inserts.
func (r *MaintenanceRepo) ReorderCategories() error {
	var ids []string
	if err := r.db.Select(&ids, `SELECT id FROM categories ORDER BY sort_order, name`); err != nil {
		return err
	}
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for i, id := range ids {
		if _, err := tx.Exec(`UPDATE categories SET sort_order = ? WHERE id = ?`, (i+1)*10, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// textColumns lists the free-form fields set-field may rewrite.
var textColumns = map[string]bool{
	"description":       true,
	"short_description": true,
	"measurements":      true,
	"materials":         true,
	"features":          true,
	"details":           true,
}

// SetTextField rewrites one free-form text field on a product addressed by
// slug. Unknown fields are rejected rather than interpolated.
func (r *MaintenanceRepo) SetTextField(slug, field, value string) error {
	if !textColumns[field] {
		return fmt.Errorf("field %q is not editable", field)
	}
	res, err := r.db.Exec(`UPDATE products SET `+field+` = ?, updated_at = CURRENT_TIMESTAMP WHERE slug = ?`, value, slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no product with slug %q", slug)
	}
	return nil
}
