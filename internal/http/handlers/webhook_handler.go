package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"threadbound/internal/btcpay"
	applog "threadbound/internal/log"
	"threadbound/internal/repos"
)

type WebhookHandler struct {
	Orders *repos.OrderRepo
	Secret string
}

// POST /api/webhooks/btcpay
// Signature verification happens before any parsing or database access.
func (h *WebhookHandler) BTCPay(c *fiber.Ctx) error {
	if h.Secret == "" {
		applog.Error(c, "webhook.btcpay.unconfigured", nil, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("webhook secret not configured")
	}

	body := c.Body()
	if !btcpay.VerifySignature(body, c.Get(btcpay.SigHeader), h.Secret) {
		applog.Security(c, "webhook.btcpay.bad_signature", nil)
		return c.Status(fiber.StatusUnauthorized).SendString("invalid signature")
	}

	var ev btcpay.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid payload")
	}

	status, mapped := btcpay.StatusForEvent(ev.Type)
	if !mapped {
		// Lifecycle events we don't track (e.g. InvoiceCreated) are
		// acknowledged without a state change.
		return c.SendString("ignored")
	}

	order, err := h.Orders.ByInvoiceID(ev.InvoiceID)
	if err != nil {
		applog.Error(c, "webhook.btcpay.lookup.fail", err, map[string]any{"invoice": ev.InvoiceID})
		return c.Status(fiber.StatusInternalServerError).SendString("lookup failed")
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).SendString("unknown invoice")
	}

	if err := h.Orders.UpdateStatusByInvoiceID(ev.InvoiceID, status); err != nil {
		applog.Error(c, "webhook.btcpay.update.fail", err, map[string]any{"invoice": ev.InvoiceID})
		return c.Status(fiber.StatusInternalServerError).SendString("update failed")
	}

	applog.Audit(c, "webhook.btcpay.status", map[string]any{
		"invoice": ev.InvoiceID, "order_id": order.ID, "event": ev.Type, "status": status,
	})
	return c.SendString("ok")
}
