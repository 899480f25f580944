package domain

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description,omitempty"`
	Image       string `db:"image" json:"image,omitempty"`
	SortOrder   int    `db:"sort_order" json:"sortOrder"`
}

type Product struct {
	ID               string  `db:"id" json:"id"`
	Name             string  `db:"name" json:"name"`
	Slug             string  `db:"slug" json:"slug"`
	Description      string  `db:"description" json:"description,omitempty"`
	ShortDescription string  `db:"short_description" json:"shortDescription,omitempty"`
	Price            *string `db:"price" json:"price,omitempty"`
	RegularPrice     *string `db:"regular_price" json:"regularPrice,omitempty"`
	SalePrice        *string `db:"sale_price" json:"salePrice,omitempty"`
	OnSale           bool    `db:"on_sale" json:"onSale"`
	StockStatus      string  `db:"stock_status" json:"stockStatus"` // IN_STOCK | OUT_OF_STOCK | ON_BACKORDER
	StockQuantity    *int    `db:"stock_quantity" json:"stockQuantity,omitempty"`
	Measurements     string  `db:"measurements" json:"measurements,omitempty"`
	Materials        string  `db:"materials" json:"materials,omitempty"`
	Features         string  `db:"features" json:"features,omitempty"`
	Details          string  `db:"details" json:"details,omitempty"`
	CheckoutURL      *string `db:"checkout_url" json:"checkoutUrl,omitempty"`
	CreatedAt        string  `db:"created_at" json:"-"`
	UpdatedAt        string  `db:"updated_at" json:"-"`

	Images     []ProductImage     `json:"images,omitempty"`
	Categories []Category         `json:"categories,omitempty"`
	Attributes []ProductAttribute `json:"attributes,omitempty"`
	Sizes      []SizeEntry        `json:"sizes,omitempty"`
}

// PrimaryImage picks the hero image: the one flagged primary, else the first
// by sort order, else nil.
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

type ProductImage struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"-"`
	URL       string `db:"url" json:"url"`
	Alt       string `db:"alt" json:"alt,omitempty"`
	IsPrimary bool   `db:"is_primary" json:"isPrimary"`
	SortOrder int    `db:"sort_order" json:"sortOrder"`
}

// ProductAttribute holds a display facet ("Color", "Size") with its options
// stored as a JSON-encoded string array.
type ProductAttribute struct {
	ID        string   `db:"id" json:"id"`
	ProductID string   `db:"product_id" json:"-"`
	Name      string   `db:"name" json:"name"`
	RawOpts   string   `db:"options" json:"-"`
	Options   []string `db:"-" json:"options"`
}

// SizeEntry is the authoritative live stock count for one size label.
type SizeEntry struct {
	Size     string `db:"size" json:"size"`
	Quantity int    `db:"quantity" json:"quantity"`
}

// Order statuses, driven by payment-gateway webhook events.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderSettled    = "settled"
	OrderExpired    = "expired"
	OrderInvalid    = "invalid"
)

type Order struct {
	ID          string `db:"id" json:"id"`
	InvoiceID   string `db:"invoice_id" json:"invoiceId"`
	ProductID   string `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`
	Quantity    int    `db:"quantity" json:"quantity"`
	Size        string `db:"size" json:"size,omitempty"`
	Amount      string `db:"amount" json:"amount"`
	Currency    string `db:"currency" json:"currency"`
	Status      string `db:"status" json:"status"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}
