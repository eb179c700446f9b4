package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hotel-booking-service/config"
	"hotel-booking-service/internal/pkg/errors"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	circuit "github.com/rubyist/circuitbreaker"
)

const ProviderRazorpay = "razorpay"

type Order struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Gateway interface {
	// CreateOrder registers amount (minor units) with the gateway. The order receipt is the
	// booking ID so webhooks can be correlated without a lookup table.
	CreateOrder(ctx context.Context, bookingID string, amount int64, currency string) (Order, error)
	VerifySignature(payload []byte, signature string, secret string) bool
	KeyID() string
}

type razorpay struct {
	cfg        *config.GatewayConfig
	httpClient *circuit.HTTPClient
}

func New(cfg *config.GatewayConfig, httpClient *circuit.HTTPClient) Gateway {
	return &razorpay{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

func (r *razorpay) KeyID() string {
	return r.cfg.KeyID
}

func (r *razorpay) CreateOrder(ctx context.Context, bookingID string, amount int64, currency string) (Order, error) {
	if amount <= 0 {
		return Order{}, errors.InvalidAmount("amount must be greater than zero")
	}
	if r.cfg.KeyID == "" || r.cfg.KeySecret == "" {
		return Order{}, errors.GatewayUnavailable("payment gateway is not configured")
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: strings.ToUpper(currency),
		Receipt:  bookingID,
		Notes:    map[string]string{"booking_id": bookingID},
	})
	if err != nil {
		return Order{}, errors.InternalServerError("error marshal order request")
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1/orders", strings.TrimRight(r.cfg.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Order{}, errors.InternalServerError("error build order request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(r.cfg.KeyID, r.cfg.KeySecret)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Order{}, errors.GatewayUnavailable(fmt.Sprintf("error create order: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Order{}, errors.GatewayUnavailable("error read order response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Order{}, errors.GatewayUnavailable(fmt.Sprintf("gateway responded %d", resp.StatusCode))
	}

	var order Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return Order{}, errors.GatewayUnavailable("error decode order response")
	}
	if order.ID == "" {
		return Order{}, errors.GatewayUnavailable("gateway returned an order without id")
	}

	return order, nil
}

// VerifySignature compares a hex HMAC-SHA256 of payload in constant time.
func (r *razorpay) VerifySignature(payload []byte, signature string, secret string) bool {
	return VerifySignature(payload, signature, secret)
}

func VerifySignature(payload []byte, signature string, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected, err := hex.DecodeString(ComputeSignature(payload, secret))
	if err != nil {
		return false
	}
	given, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	return hmac.Equal(expected, given)
}

func ComputeSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// CheckoutPayload is the message the gateway signs for the browser checkout callback.
func CheckoutPayload(orderID string, paymentID string) []byte {
	return []byte(orderID + "|" + paymentID)
}
