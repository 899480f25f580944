package repos

import (
	"github.com/jmoiron/sqlx"

	"threadbound/internal/domain"
)

// InventoryRepo manages the per-product per-size stock counts. These are the
// live-editable numbers, distinct from the coarser product-level stock status.
type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

func (r *InventoryRepo) ListForProduct(productID string) ([]domain.SizeEntry, error) {
	var out []domain.SizeEntry
	err := r.db.Select(&out, `
	  SELECT size, quantity
	  FROM product_size_inventory
	  WHERE product_id = ?
	`, productID)
	return out, err
}

// Upsert sets the quantity for (productID, size); an existing row is
// overwritten, never duplicated.
func (r *InventoryRepo) Upsert(productID, size string, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}
	_, err := r.db.Exec(`
	  INSERT INTO product_size_inventory(product_id, size, quantity)
	  VALUES (?, ?, ?)
	  ON CONFLICT(product_id, size) DO UPDATE SET quantity = excluded.quantity
	`, productID, size, quantity)
	return err
}
