package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"threadbound/internal/btcpay"
	"threadbound/internal/config"
)

type checkoutResp struct {
	CheckoutURL string `json:"checkoutUrl"`
	OrderID     string `json:"orderId"`
}

// fakeBTCPay answers the Greenfield invoice endpoint and records each
// request's amount.
func fakeBTCPay(t *testing.T) (*httptest.Server, *[]btcpay.InvoiceRequest) {
	t.Helper()
	var seen []btcpay.InvoiceRequest
	n := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req btcpay.InvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		seen = append(seen, req)
		n++
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":           fmt.Sprintf("inv-%d", n),
			"checkoutLink": fmt.Sprintf("https://pay.example/i/inv-%d", n),
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestStripeCheckoutEndpoint(t *testing.T) {
	app, db := newTestApp(t, config.Config{})

	// Missing productId
	resp, err := app.Test(newRequest("GET", "/api/stripe-checkout", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing productId: expected 400, got %d", resp.StatusCode)
	}

	// Product without a stored link
	resp, err = app.Test(newRequest("GET", "/api/stripe-checkout?productId=prod-hoodie", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("no link: expected 404, got %d", resp.StatusCode)
	}

	db.MustExec(`UPDATE products SET checkout_url = 'https://buy.stripe.com/abc123' WHERE id = 'prod-hoodie'`)
	resp, err = app.Test(newRequest("GET", "/api/stripe-checkout?productId=prod-hoodie", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var cr checkoutResp
	decodeJSON(t, resp, &cr)
	if cr.CheckoutURL != "https://buy.stripe.com/abc123" {
		t.Fatalf("unexpected checkoutUrl %q", cr.CheckoutURL)
	}
}

func TestBitcoinCheckoutEndpoint(t *testing.T) {
	srv, seen := fakeBTCPay(t)
	app, db := newTestApp(t, config.Config{
		BTCPayURL:     srv.URL,
		BTCPayAPIKey:  "test-key",
		BTCPayStoreID: "store-1",
	})

	resp, err := app.Test(jsonReq("POST", "/api/btcpay-checkout",
		`{"productId":"prod-hoodie","quantity":2,"size":"M"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var cr checkoutResp
	decodeJSON(t, resp, &cr)
	if cr.CheckoutURL == "" || cr.OrderID == "" {
		t.Fatalf("expected checkoutUrl and orderId, got %+v", cr)
	}
	if (*seen)[0].Amount != "238.00" {
		t.Fatalf("expected amount 238.00, got %q", (*seen)[0].Amount)
	}

	var status string
	if err := db.Get(&status, `SELECT status FROM orders WHERE id = ?`, cr.OrderID); err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if status != "pending" {
		t.Fatalf("expected pending order, got %q", status)
	}
}

func TestBitcoinCheckoutLooseQuantity(t *testing.T) {
	srv, seen := fakeBTCPay(t)
	app, _ := newTestApp(t, config.Config{
		BTCPayURL:     srv.URL,
		BTCPayAPIKey:  "test-key",
		BTCPayStoreID: "store-1",
	})

	// Non-numeric and missing quantities default to 1.
	for _, body := range []string{
		`{"productId":"prod-hoodie","quantity":"lots"}`,
		`{"productId":"prod-hoodie"}`,
	} {
		resp, err := app.Test(jsonReq("POST", "/api/btcpay-checkout", body))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", body, resp.StatusCode)
		}
	}
	for i, req := range *seen {
		if req.Amount != "119.00" {
			t.Fatalf("request %d: expected single-unit amount 119.00, got %q", i, req.Amount)
		}
	}
}

func TestBitcoinCheckoutErrors(t *testing.T) {
	srv, _ := fakeBTCPay(t)
	app, _ := newTestApp(t, config.Config{
		BTCPayURL:     srv.URL,
		BTCPayAPIKey:  "test-key",
		BTCPayStoreID: "store-1",
	})

	// Malformed body
	resp, err := app.Test(jsonReq("POST", "/api/btcpay-checkout", `{not json`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad JSON: expected 400, got %d", resp.StatusCode)
	}

	// Unknown product
	resp, err = app.Test(jsonReq("POST", "/api/btcpay-checkout", `{"productId":"prod-nope"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product: expected 404, got %d", resp.StatusCode)
	}
}

func TestBitcoinCheckoutUnconfigured(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	resp, err := app.Test(jsonReq("POST", "/api/btcpay-checkout", `{"productId":"prod-hoodie"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}
