package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "threadbound/internal/log"
	"threadbound/internal/services"
	"threadbound/internal/validate"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// GET /api/stripe-checkout?productId=<id>
// The card path never talks to the processor; it returns the hosted checkout
// link stored on the product.
func (h *CheckoutHandler) StripeCheckout(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	url, err := h.Checkout.CardCheckoutURL(productID)
	switch {
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrNoCheckoutURL):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no checkout link for this product"})
	case err != nil:
		applog.Error(c, "checkout.card.fail", err, map[string]any{"product": productID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "checkout unavailable"})
	}
	return c.JSON(fiber.Map{"checkoutUrl": url})
}

// bitcoinCheckoutBody tolerates loose client payloads: quantity may be
// missing or non-numeric and then defaults to 1; the service clamps it to
// [1, 99].
type bitcoinCheckoutBody struct {
	ProductID string `json:"productId"`
	Quantity  any    `json:"quantity"`
	Size      string `json:"size"`
}

func (b bitcoinCheckoutBody) quantity() int {
	if f, ok := b.Quantity.(float64); ok {
		return int(f)
	}
	return 1
}

// POST /api/btcpay-checkout
func (h *CheckoutHandler) BitcoinCheckout(c *fiber.Ctx) error {
	var body bitcoinCheckoutBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	productID, ok := validate.ID(body.ProductID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}

	url, orderID, err := h.Checkout.BitcoinCheckout(c.Context(), productID, body.quantity(), body.Size)
	switch {
	case errors.Is(err, services.ErrGatewayUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "bitcoin payments are not available"})
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	case errors.Is(err, services.ErrInvalidPrice):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "product has no valid price"})
	case err != nil:
		applog.Error(c, "checkout.bitcoin.fail", err, map[string]any{"product": productID})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "payment gateway error"})
	}

	applog.Audit(c, "checkout.bitcoin.created", map[string]any{"order_id": orderID, "product": productID})
	return c.JSON(fiber.Map{"checkoutUrl": url, "orderId": orderID})
}
