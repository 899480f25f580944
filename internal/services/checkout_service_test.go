package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadbound/internal/btcpay"
	"threadbound/internal/domain"
	"threadbound/internal/repos"
	"threadbound/internal/services"
)

// fakeGateway records invoice requests and answers like BTCPay Greenfield.
type fakeGateway struct {
	mux      *http.ServeMux
	requests []btcpay.InvoiceRequest
	fail     bool
	count    int
}

func newFakeGateway(t *testing.T) (*fakeGateway, *httptest.Server) {
	t.Helper()
	g := &fakeGateway{mux: http.NewServeMux()}
	g.mux.HandleFunc("/api/v1/stores/store-1/invoices", func(w http.ResponseWriter, r *http.Request) {
		if g.fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var req btcpay.InvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		g.requests = append(g.requests, req)
		g.count++
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":           fmt.Sprintf("inv-%d", g.count),
			"checkoutLink": fmt.Sprintf("https://pay.example/i/inv-%d", g.count),
		})
	})
	srv := httptest.NewServer(g.mux)
	t.Cleanup(srv.Close)
	return g, srv
}

func newCheckout(t *testing.T) (*services.CheckoutService, *fakeGateway, *repos.OrderRepo) {
	t.Helper()
	db := memdb(t)
	db.MustExec(`INSERT INTO products(id,name,slug,price) VALUES ('prod-cap','Snapback Cap','snapback-cap','19.99')`)
	db.MustExec(`INSERT INTO products(id,name,slug) VALUES ('prod-free','Sticker Pack','sticker-pack')`)

	gw, srv := newFakeGateway(t)
	orders := repos.NewOrderRepo(db)
	svc := &services.CheckoutService{
		Prods:         repos.NewProductRepo(db),
		Orders:        orders,
		Gateway:       btcpay.New(srv.URL, "test-key", "store-1"),
		Currency:      "USD",
		PublicBaseURL: "https://shop.example",
	}
	return svc, gw, orders
}

func TestBitcoinCheckoutAmount(t *testing.T) {
	svc, gw, orders := newCheckout(t)

	url, orderID, err := svc.BitcoinCheckout(context.Background(), "prod-cap", 3, "M")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/i/inv-1", url)
	require.NotEmpty(t, orderID)

	require.Len(t, gw.requests, 1)
	assert.Equal(t, "59.97", gw.requests[0].Amount)
	assert.Equal(t, "USD", gw.requests[0].Currency)

	o, err := orders.ByInvoiceID("inv-1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, orderID, o.ID)
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.Equal(t, 3, o.Quantity)
	assert.Equal(t, "M", o.Size)
}

func TestBitcoinCheckoutQuantityClamped(t *testing.T) {
	svc, gw, _ := newCheckout(t)

	for _, tc := range []struct {
		qty  int
		want string
	}{
		{0, "19.99"},
		{-1, "19.99"},
		{150, "1979.01"}, // 19.99 * 99
	} {
		_, _, err := svc.BitcoinCheckout(context.Background(), "prod-cap", tc.qty, "")
		require.NoError(t, err)
		assert.Equal(t, tc.want, gw.requests[len(gw.requests)-1].Amount, "qty=%d", tc.qty)
	}
}

func TestBitcoinCheckoutMissingPrice(t *testing.T) {
	svc, _, _ := newCheckout(t)
	_, _, err := svc.BitcoinCheckout(context.Background(), "prod-free", 1, "")
	assert.ErrorIs(t, err, services.ErrInvalidPrice)
}

func TestBitcoinCheckoutUnknownProduct(t *testing.T) {
	svc, _, _ := newCheckout(t)
	_, _, err := svc.BitcoinCheckout(context.Background(), "prod-nope", 1, "")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestBitcoinCheckoutGatewayUnconfigured(t *testing.T) {
	svc, _, _ := newCheckout(t)
	svc.Gateway = nil
	_, _, err := svc.BitcoinCheckout(context.Background(), "prod-cap", 1, "")
	assert.ErrorIs(t, err, services.ErrGatewayUnavailable)
}

func TestBitcoinCheckoutGatewayFailureLeavesNoOrder(t *testing.T) {
	svc, gw, orders := newCheckout(t)
	gw.fail = true

	_, _, err := svc.BitcoinCheckout(context.Background(), "prod-cap", 2, "")
	require.Error(t, err)

	latest, err := orders.ListLatest(10)
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestCardCheckoutURL(t *testing.T) {
	svc, _, _ := newCheckout(t)

	_, err := svc.CardCheckoutURL("prod-cap")
	assert.ErrorIs(t, err, services.ErrNoCheckoutURL)

	ok, err := svc.Prods.UpdateFields("prod-cap", map[string]any{"checkoutUrl": "https://buy.stripe.com/abc123"})
	require.NoError(t, err)
	require.True(t, ok)

	url, err := svc.CardCheckoutURL("prod-cap")
	require.NoError(t, err)
	assert.Equal(t, "https://buy.stripe.com/abc123", url)

	_, err = svc.CardCheckoutURL("prod-nope")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}
