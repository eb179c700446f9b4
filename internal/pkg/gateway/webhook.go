package gateway

import (
	"hotel-booking-service/internal/pkg/errors"

	"github.com/tidwall/gjson"
)

const (
	EventPaymentCaptured = "payment.captured"
	EventOrderPaid       = "order.paid"
	EventPaymentFailed   = "payment.failed"

	HeaderSignature = "X-Razorpay-Signature"
	HeaderEventID   = "X-Razorpay-Event-Id"
)

type WebhookEvent struct {
	Event     string
	PaymentID string
	OrderID   string
	BookingID string
	Amount    int64
	Currency  string
	Status    string
}

// Confirms reports whether the event means the money was collected.
func (e WebhookEvent) Confirms() bool {
	return e.Event == EventPaymentCaptured || e.Event == EventOrderPaid
}

// ParseWebhookEvent reads the fields reconciliation needs straight from the raw body, which must
// stay untouched for signature verification. The booking is taken from the order receipt and
// falls back to the notes the order was created with.
func ParseWebhookEvent(body []byte) (WebhookEvent, error) {
	if !gjson.ValidBytes(body) {
		return WebhookEvent{}, errors.BadRequest("invalid webhook payload")
	}

	root := gjson.ParseBytes(body)
	payment := root.Get("payload.payment.entity")
	order := root.Get("payload.order.entity")

	evt := WebhookEvent{
		Event:     root.Get("event").String(),
		PaymentID: payment.Get("id").String(),
		OrderID:   payment.Get("order_id").String(),
		Amount:    payment.Get("amount").Int(),
		Currency:  payment.Get("currency").String(),
		Status:    payment.Get("status").String(),
		BookingID: order.Get("receipt").String(),
	}

	if evt.OrderID == "" {
		evt.OrderID = order.Get("id").String()
	}
	if evt.BookingID == "" {
		evt.BookingID = payment.Get("notes.booking_id").String()
	}
	if evt.BookingID == "" {
		evt.BookingID = order.Get("notes.booking_id").String()
	}

	if evt.Event == "" {
		return WebhookEvent{}, errors.BadRequest("webhook event name is missing")
	}

	return evt, nil
}
