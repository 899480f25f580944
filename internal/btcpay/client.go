// Package btcpay is a minimal client for the BTCPay Server Greenfield API:
// invoice creation for checkout plus webhook signature verification.
package btcpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	storeID string
	httpc   *http.Client
}

func New(baseURL, apiKey, storeID string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		storeID: storeID,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

type CheckoutOptions struct {
	RedirectURL string `json:"redirectURL,omitempty"`
}

type InvoiceRequest struct {
	Amount   string           `json:"amount"`
	Currency string           `json:"currency"`
	Metadata map[string]any   `json:"metadata,omitempty"`
	Checkout *CheckoutOptions `json:"checkout,omitempty"`
}

type Invoice struct {
	ID           string `json:"id"`
	CheckoutLink string `json:"checkoutLink"`
	Status       string `json:"status"`
}

// CreateInvoice asks the gateway for a new hosted-checkout invoice.
func (c *Client) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/v1/stores/%s/invoices", c.baseURL, c.storeID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "token "+c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("btcpay: invoice create returned %d: %s", resp.StatusCode, snippet)
	}
	var inv Invoice
	if err := json.NewDecoder(resp.Body).Decode(&inv); err != nil {
		return nil, err
	}
	return &inv, nil
}
