package request

import "github.com/goccy/go-json"

type CheckAvailability struct {
	RoomID   int64  `json:"room_id" validate:"required,gt=0"`
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
}

type CreateBooking struct {
	RoomID       int64  `json:"room_id" validate:"required,gt=0"`
	CheckIn      string `json:"check_in" validate:"required"`
	CheckOut     string `json:"check_out" validate:"required"`
	BillingName  string `json:"billing_name" validate:"required"`
	BillingPhone string `json:"billing_phone" validate:"required"`
	// Customization is normalized by the usecase, any legacy shape is accepted here.
	Customization json.RawMessage `json:"customization,omitempty"`
}

type CreatePaymentOrder struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

// VerifyPayment is what the browser checkout hands back after a successful payment.
type VerifyPayment struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

type Webhook struct {
	Body      []byte
	Signature string
	EventID   string
}

type OverrideStatus struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
	Reason string `json:"reason"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}

type PaymentExpiration struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

type SendReceipt struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	// Force resends even when a receipt already went out.
	Force bool `json:"force"`
}

// PaymentAlert goes to the operational channel when money arrives for a booking that cannot
// take it.
type PaymentAlert struct {
	BookingID string `json:"booking_id"`
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Source    string `json:"source"`
	Reason    string `json:"reason"`
}
