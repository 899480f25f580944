package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"threadbound/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, slug, description, image, sort_order
	  FROM categories
	  ORDER BY sort_order, name
	`)
	return out, err
}

// BySlug returns nil when no category matches.
func (r *CategoryRepo) BySlug(slug string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, slug, description, image, sort_order
	  FROM categories
	  WHERE slug = ?
	`, slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
