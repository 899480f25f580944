package repos

import (
	"database/sql"
	"encoding/json"
	"sort"

	"github.com/jmoiron/sqlx"

	"threadbound/internal/domain"
	"threadbound/internal/sizes"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// wideRow is one row of the joined product query. The joins fan out (one row
// per image x category x attribute x size combination), so related columns are
// nullable and grouping de-duplicates by each collection's own id.
type wideRow struct {
	ID               string         `db:"id"`
	Name             string         `db:"name"`
	Slug             string         `db:"slug"`
	Description      string         `db:"description"`
	ShortDescription string         `db:"short_description"`
	Price            sql.NullString `db:"price"`
	RegularPrice     sql.NullString `db:"regular_price"`
	SalePrice        sql.NullString `db:"sale_price"`
	OnSale           bool           `db:"on_sale"`
	StockStatus      string         `db:"stock_status"`
	StockQuantity    sql.NullInt64  `db:"stock_quantity"`
	Measurements     string         `db:"measurements"`
	Materials        string         `db:"materials"`
	Features         string         `db:"features"`
	Details          string         `db:"details"`
	CheckoutURL      sql.NullString `db:"checkout_url"`
	CreatedAt        sql.NullString `db:"created_at"`
	UpdatedAt        sql.NullString `db:"updated_at"`

	ImgID      sql.NullString `db:"img_id"`
	ImgURL     sql.NullString `db:"img_url"`
	ImgAlt     sql.NullString `db:"img_alt"`
	ImgPrimary sql.NullInt64  `db:"img_primary"`
	ImgSort    sql.NullInt64  `db:"img_sort"`

	CatID   sql.NullString `db:"cat_id"`
	CatName sql.NullString `db:"cat_name"`
	CatSlug sql.NullString `db:"cat_slug"`
	CatDesc sql.NullString `db:"cat_description"`
	CatImg  sql.NullString `db:"cat_image"`
	CatSort sql.NullInt64  `db:"cat_sort"`

	AttrID   sql.NullString `db:"attr_id"`
	AttrName sql.NullString `db:"attr_name"`
	AttrOpts sql.NullString `db:"attr_options"`

	SizeLabel sql.NullString `db:"size_label"`
	SizeQty   sql.NullInt64  `db:"size_qty"`
}

const wideSelect = `
SELECT
  p.id, p.name, p.slug, p.description, p.short_description,
  p.price, p.regular_price, p.sale_price, p.on_sale,
  p.stock_status, p.stock_quantity,
  p.measurements, p.materials, p.features, p.details,
  p.checkout_url, p.created_at, p.updated_at,
  i.id AS img_id, i.url AS img_url, i.alt AS img_alt,
  i.is_primary AS img_primary, i.sort_order AS img_sort,
  c.id AS cat_id, c.name AS cat_name, c.slug AS cat_slug,
  c.description AS cat_description, c.image AS cat_image, c.sort_order AS cat_sort,
  a.id AS attr_id, a.name AS attr_name, a.options AS attr_options,
  s.size AS size_label, s.quantity AS size_qty
FROM products p
LEFT JOIN product_images i ON i.product_id = p.id
LEFT JOIN product_categories pc ON pc.product_id = p.id
LEFT JOIN categories c ON c.id = pc.category_id
LEFT JOIN product_attributes a ON a.product_id = p.id
LEFT JOIN product_size_inventory s ON s.product_id = p.id
`

// accum groups fan-out rows for one product, keeping each sub-collection
// unique by its own key.
type accum struct {
	prod      *domain.Product
	seenImage map[string]bool
	seenCat   map[string]bool
	seenAttr  map[string]bool
	seenSize  map[string]bool
}

func group(rows []wideRow) []domain.Product {
	byID := make(map[string]*accum)
	order := make([]string, 0)

	for _, r := range rows {
		acc, ok := byID[r.ID]
		if !ok {
			p := domain.Product{
				ID:               r.ID,
				Name:             r.Name,
				Slug:             r.Slug,
				Description:      r.Description,
				ShortDescription: r.ShortDescription,
				OnSale:           r.OnSale,
				StockStatus:      r.StockStatus,
				Measurements:     r.Measurements,
				Materials:        r.Materials,
				Features:         r.Features,
				Details:          r.Details,
				CreatedAt:        r.CreatedAt.String,
				UpdatedAt:        r.UpdatedAt.String,
			}
			if r.Price.Valid {
				v := r.Price.String
				p.Price = &v
			}
			if r.RegularPrice.Valid {
				v := r.RegularPrice.String
				p.RegularPrice = &v
			}
			if r.SalePrice.Valid {
				v := r.SalePrice.String
				p.SalePrice = &v
			}
			if r.StockQuantity.Valid {
				v := int(r.StockQuantity.Int64)
				p.StockQuantity = &v
			}
			if r.CheckoutURL.Valid {
				v := r.CheckoutURL.String
				p.CheckoutURL = &v
			}
			acc = &accum{
				prod:      &p,
				seenImage: map[string]bool{},
				seenCat:   map[string]bool{},
				seenAttr:  map[string]bool{},
				seenSize:  map[string]bool{},
			}
			byID[r.ID] = acc
			order = append(order, r.ID)
		}

		if r.ImgID.Valid && !acc.seenImage[r.ImgID.String] {
			acc.seenImage[r.ImgID.String] = true
			acc.prod.Images = append(acc.prod.Images, domain.ProductImage{
				ID:        r.ImgID.String,
				ProductID: r.ID,
				URL:       r.ImgURL.String,
				Alt:       r.ImgAlt.String,
				IsPrimary: r.ImgPrimary.Int64 != 0,
				SortOrder: int(r.ImgSort.Int64),
			})
		}
		if r.CatID.Valid && !acc.seenCat[r.CatID.String] {
			acc.seenCat[r.CatID.String] = true
			acc.prod.Categories = append(acc.prod.Categories, domain.Category{
				ID:          r.CatID.String,
				Name:        r.CatName.String,
				Slug:        r.CatSlug.String,
				Description: r.CatDesc.String,
				Image:       r.CatImg.String,
				SortOrder:   int(r.CatSort.Int64),
			})
		}
		if r.AttrID.Valid && !acc.seenAttr[r.AttrID.String] {
			acc.seenAttr[r.AttrID.String] = true
			attr := domain.ProductAttribute{
				ID:        r.AttrID.String,
				ProductID: r.ID,
				Name:      r.AttrName.String,
				RawOpts:   r.AttrOpts.String,
			}
			_ = json.Unmarshal([]byte(attr.RawOpts), &attr.Options)
			acc.prod.Attributes = append(acc.prod.Attributes, attr)
		}
		if r.SizeLabel.Valid && !acc.seenSize[r.SizeLabel.String] {
			acc.seenSize[r.SizeLabel.String] = true
			acc.prod.Sizes = append(acc.prod.Sizes, domain.SizeEntry{
				Size:     r.SizeLabel.String,
				Quantity: int(r.SizeQty.Int64),
			})
		}
	}

	out := make([]domain.Product, 0, len(order))
	for _, id := range order {
		p := byID[id].prod
		sort.SliceStable(p.Images, func(i, j int) bool {
			return p.Images[i].SortOrder < p.Images[j].SortOrder
		})
		sort.SliceStable(p.Sizes, func(i, j int) bool {
			return sizes.Less(p.Sizes[i].Size, p.Sizes[j].Size)
		})
		out = append(out, *p)
	}
	return out
}

func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var rows []wideRow
	if err := r.db.Select(&rows, wideSelect); err != nil {
		return nil, err
	}
	return group(rows), nil
}

// ListByCategorySlug resolves the category, collects its product ids and
// fetches those products. An unknown slug yields an empty list, not an error.
func (r *ProductRepo) ListByCategorySlug(slug string) ([]domain.Product, error) {
	var catID string
	err := r.db.Get(&catID, `SELECT id FROM categories WHERE slug = ?`, slug)
	if err == sql.ErrNoRows {
		return []domain.Product{}, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := r.db.Select(&ids, `SELECT product_id FROM product_categories WHERE category_id = ?`, catID); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	query, args, err := sqlx.In(wideSelect+` WHERE p.id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var rows []wideRow
	if err := r.db.Select(&rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return group(rows), nil
}

// GetBySlug returns nil when the product does not exist.
func (r *ProductRepo) GetBySlug(slug string) (*domain.Product, error) {
	var rows []wideRow
	if err := r.db.Select(&rows, wideSelect+` WHERE p.slug = ?`, slug); err != nil {
		return nil, err
	}
	prods := group(rows)
	if len(prods) == 0 {
		return nil, nil
	}
	return &prods[0], nil
}

// Get returns nil when the product does not exist.
func (r *ProductRepo) Get(id string) (*domain.Product, error) {
	var rows []wideRow
	if err := r.db.Select(&rows, wideSelect+` WHERE p.id = ?`, id); err != nil {
		return nil, err
	}
	prods := group(rows)
	if len(prods) == 0 {
		return nil, nil
	}
	return &prods[0], nil
}

// patchColumns whitelists the product fields the admin PATCH may touch.
var patchColumns = map[string]string{
	"name":             "name",
	"description":      "description",
	"shortDescription": "short_description",
	"price":            "price",
	"regularPrice":     "regular_price",
	"salePrice":        "sale_price",
	"onSale":           "on_sale",
	"stockStatus":      "stock_status",
	"stockQuantity":    "stock_quantity",
	"measurements":     "measurements",
	"materials":        "materials",
	"features":         "features",
	"details":          "details",
	"checkoutUrl":      "checkout_url",
}

// UpdateFields applies a partial update; unrecognized keys are skipped.
// Returns false when the product does not exist.
func (r *ProductRepo) UpdateFields(id string, fields map[string]any) (bool, error) {
	set := ""
	args := []any{}
	for key, val := range fields {
		col, ok := patchColumns[key]
		if !ok {
			continue
		}
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, val)
	}
	if set == "" {
		// Nothing recognized; still report whether the row exists.
		var n int
		err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE id = ?`, id)
		return n > 0, err
	}
	set += ", updated_at = CURRENT_TIMESTAMP"
	args = append(args, id)
	res, err := r.db.Exec(`UPDATE products SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
