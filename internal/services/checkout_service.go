package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"threadbound/internal/btcpay"
	"threadbound/internal/domain"
	"threadbound/internal/repos"
	"threadbound/internal/validate"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrNoCheckoutURL      = errors.New("no checkout url for product")
	ErrInvalidPrice       = errors.New("product has no valid price")
	ErrGatewayUnavailable = errors.New("payment gateway not configured")
)

// CheckoutService handles both payment paths: stored hosted-checkout links
// (card) and gateway invoice creation (bitcoin).
type CheckoutService struct {
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo

	// Gateway is nil when BTCPay credentials are absent; the bitcoin path
	// then reports unavailable instead of failing at startup.
	Gateway       *btcpay.Client
	Currency      string
	PublicBaseURL string
}

// CardCheckoutURL looks up the product's precomputed hosted-checkout link.
func (s *CheckoutService) CardCheckoutURL(productID string) (string, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", ErrProductNotFound
	}
	if p.CheckoutURL == nil || *p.CheckoutURL == "" {
		return "", ErrNoCheckoutURL
	}
	return *p.CheckoutURL, nil
}

// BitcoinCheckout creates a gateway invoice for price*quantity and persists a
// pending order keyed by the invoice id. The order row is only written after
// the invoice call succeeds.
func (s *CheckoutService) BitcoinCheckout(ctx context.Context, productID string, quantity int, size string) (checkoutURL, orderID string, err error) {
	if s.Gateway == nil {
		return "", "", ErrGatewayUnavailable
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return "", "", err
	}
	if p == nil {
		return "", "", ErrProductNotFound
	}
	if p.Price == nil {
		return "", "", ErrInvalidPrice
	}
	price, err := decimal.NewFromString(*p.Price)
	if err != nil || !price.IsPositive() {
		return "", "", ErrInvalidPrice
	}

	qty := validate.Quantity(quantity)
	amount := price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
	orderID = uuid.NewString()

	inv, err := s.Gateway.CreateInvoice(ctx, btcpay.InvoiceRequest{
		Amount:   amount.StringFixed(2),
		Currency: s.Currency,
		Metadata: map[string]any{
			"orderId":     orderID,
			"productId":   p.ID,
			"productName": p.Name,
			"quantity":    qty,
			"size":        size,
		},
		Checkout: &btcpay.CheckoutOptions{
			RedirectURL: s.PublicBaseURL + "/thank-you?order=" + orderID,
		},
	})
	if err != nil {
		return "", "", err
	}

	if err := s.Orders.Create(domain.Order{
		ID:          orderID,
		InvoiceID:   inv.ID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    qty,
		Size:        size,
		Amount:      amount.StringFixed(2),
		Currency:    s.Currency,
		Status:      domain.OrderPending,
	}); err != nil {
		return "", "", err
	}
	return inv.CheckoutLink, orderID, nil
}
