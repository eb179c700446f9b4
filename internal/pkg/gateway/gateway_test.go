package gateway_test

import (
	"context"
	"hotel-booking-service/config"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/gateway"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(baseURL string, timeout time.Duration) gateway.Gateway {
	cfg := &config.GatewayConfig{
		BaseURL:   baseURL,
		KeyID:     "rzp_test_key",
		KeySecret: "key_secret",
		Timeout:   timeout,
		Currency:  "INR",
	}
	httpClient := circuit.NewHTTPClient(timeout, 10, &http.Client{})
	return gateway.New(cfg, httpClient)
}

func TestCreateOrder(t *testing.T) {
	t.Run("success embeds booking id as receipt", func(t *testing.T) {
		var got map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/orders", r.URL.Path)
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "rzp_test_key", user)
			assert.Equal(t, "key_secret", pass)

			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &got)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"order_123","amount":200000,"currency":"INR","receipt":"booking-1","status":"created"}`))
		}))
		defer server.Close()

		g := newGateway(server.URL, 2*time.Second)
		order, err := g.CreateOrder(context.Background(), "booking-1", 200000, "inr")

		require.NoError(t, err)
		assert.Equal(t, "order_123", order.ID)
		assert.Equal(t, "booking-1", order.Receipt)
		assert.Equal(t, "booking-1", got["receipt"])
		assert.Equal(t, "INR", got["currency"])
		assert.Equal(t, float64(200000), got["amount"])
	})

	t.Run("invalid amount", func(t *testing.T) {
		g := newGateway("http://127.0.0.1:1", time.Second)
		_, err := g.CreateOrder(context.Background(), "booking-1", 0, "INR")
		assert.True(t, errors.IsKind(err, errors.KindInvalidAmount))
	})

	t.Run("gateway 5xx is unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		g := newGateway(server.URL, 2*time.Second)
		_, err := g.CreateOrder(context.Background(), "booking-1", 1000, "INR")
		assert.True(t, errors.IsKind(err, errors.KindGatewayUnavailable))
	})

	t.Run("slow gateway times out as unavailable", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		g := newGateway(server.URL, 100*time.Millisecond)
		_, err := g.CreateOrder(context.Background(), "booking-1", 1000, "INR")
		assert.True(t, errors.IsKind(err, errors.KindGatewayUnavailable))
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := &config.GatewayConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}
		g := gateway.New(cfg, circuit.NewHTTPClient(time.Second, 10, &http.Client{}))
		_, err := g.CreateOrder(context.Background(), "booking-1", 1000, "INR")
		assert.True(t, errors.IsKind(err, errors.KindGatewayUnavailable))
	})
}

func TestVerifySignature(t *testing.T) {
	payload := gateway.CheckoutPayload("order_123", "pay_456")
	signature := gateway.ComputeSignature(payload, "key_secret")

	testCases := []struct {
		name      string
		payload   []byte
		signature string
		secret    string
		expected  bool
	}{
		{name: "valid", payload: payload, signature: signature, secret: "key_secret", expected: true},
		{name: "tampered payload", payload: gateway.CheckoutPayload("order_123", "pay_999"), signature: signature, secret: "key_secret", expected: false},
		{name: "tampered signature", payload: payload, signature: flipLast(signature), secret: "key_secret", expected: false},
		{name: "wrong secret", payload: payload, signature: signature, secret: "webhook_secret", expected: false},
		{name: "not hex", payload: payload, signature: "zz", secret: "key_secret", expected: false},
		{name: "empty signature", payload: payload, signature: "", secret: "key_secret", expected: false},
		{name: "empty secret", payload: payload, signature: signature, secret: "", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, gateway.VerifySignature(tc.payload, tc.signature, tc.secret))
		})
	}
}

func flipLast(s string) string {
	last := byte('0')
	if s[len(s)-1] == '0' {
		last = '1'
	}
	return s[:len(s)-1] + string(last)
}

func TestParseWebhookEvent(t *testing.T) {
	t.Run("payment captured", func(t *testing.T) {
		body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","amount":200000,"currency":"INR","status":"captured","notes":{"booking_id":"b-1"}}}}}`)
		evt, err := gateway.ParseWebhookEvent(body)
		require.NoError(t, err)
		assert.True(t, evt.Confirms())
		assert.Equal(t, "pay_1", evt.PaymentID)
		assert.Equal(t, "order_1", evt.OrderID)
		assert.Equal(t, "b-1", evt.BookingID)
		assert.Equal(t, int64(200000), evt.Amount)
	})

	t.Run("order paid uses receipt", func(t *testing.T) {
		body := []byte(`{"event":"order.paid","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}},"order":{"entity":{"id":"order_1","receipt":"b-2"}}}}`)
		evt, err := gateway.ParseWebhookEvent(body)
		require.NoError(t, err)
		assert.True(t, evt.Confirms())
		assert.Equal(t, "b-2", evt.BookingID)
	})

	t.Run("failed payment does not confirm", func(t *testing.T) {
		evt, err := gateway.ParseWebhookEvent([]byte(`{"event":"payment.failed","payload":{}}`))
		require.NoError(t, err)
		assert.False(t, evt.Confirms())
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := gateway.ParseWebhookEvent([]byte(`{"event":`))
		assert.True(t, errors.IsKind(err, errors.KindValidation))
	})
}
