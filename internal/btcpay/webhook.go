package btcpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"threadbound/internal/domain"
)

// SigHeader is the header BTCPay signs webhook deliveries with.
const SigHeader = "BTCPAY-SIG"

// WebhookEvent is the subset of the delivery payload the receiver needs.
type WebhookEvent struct {
	Type      string `json:"type"`
	InvoiceID string `json:"invoiceId"`
}

// VerifySignature recomputes HMAC-SHA256 over the raw body and compares it
// against the "sha256=<hex>" header value in constant time.
func VerifySignature(body []byte, header, secret string) bool {
	digest, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(strings.ToLower(digest)))
}

// statusForEvent maps gateway event types onto the order status enum. Events
// outside the table (e.g. InvoiceCreated) carry no state change.
var statusForEvent = map[string]string{
	"InvoiceProcessing": domain.OrderProcessing,
	"InvoiceSettled":    domain.OrderSettled,
	"InvoiceExpired":    domain.OrderExpired,
	"InvoiceInvalid":    domain.OrderInvalid,
}

func StatusForEvent(eventType string) (string, bool) {
	s, ok := statusForEvent[eventType]
	return s, ok
}
