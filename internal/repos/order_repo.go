package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"threadbound/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts a new pending order keyed by the gateway invoice id. Called
// only after the invoice API call has succeeded, so a failed upstream call
// leaves no orphan row.
func (r *OrderRepo) Create(o domain.Order) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders(id, invoice_id, product_id, product_name, quantity, size, amount, currency, status, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, o.ID, o.InvoiceID, o.ProductID, o.ProductName, o.Quantity, o.Size, o.Amount, o.Currency, o.Status)
	return err
}

// ByInvoiceID returns nil when no order matches.
func (r *OrderRepo) ByInvoiceID(invoiceID string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, invoice_id, product_id, product_name, quantity, size, amount, currency, status, created_at
	  FROM orders
	  WHERE invoice_id = ?
	`, invoiceID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatusByInvoiceID overwrites the status unconditionally; webhook
// delivery order is not enforced.
func (r *OrderRepo) UpdateStatusByInvoiceID(invoiceID, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE invoice_id = ?`, status, invoiceID)
	return err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, invoice_id, product_id, product_name, quantity, size, amount, currency, status, created_at
	  FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}
