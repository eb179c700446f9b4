package response

import "time"

type UserServiceValidate struct {
	IsValid   bool   `json:"is_valid"`
	UserID    int64  `json:"user_id"`
	EmailUser string `json:"email"`
	Role      string `json:"role"`
}

// Room is the hotel-service view of a room, read once when the booking is created.
type Room struct {
	ID           int64    `json:"id"`
	HotelID      int64    `json:"hotel_id"`
	HotelName    string   `json:"hotel_name"`
	HotelAddress string   `json:"hotel_address"`
	RoomType     string   `json:"room_type"`
	RoomNumber   string   `json:"room_number"`
	NightlyRate  float64  `json:"price_per_night"`
	Currency     string   `json:"currency"`
	IsAvailable  bool     `json:"is_available"`
	ImageURLs    []string `json:"image_urls"`
}

type Availability struct {
	RoomID      int64   `json:"room_id"`
	Available   bool    `json:"available"`
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"nightly_rate"`
	TotalPrice  float64 `json:"total_price"`
	Currency    string  `json:"currency"`
}

type Booking struct {
	ID             string      `json:"id"`
	RoomID         int64       `json:"room_id"`
	HotelID        int64       `json:"hotel_id"`
	HotelName      string      `json:"hotel_name"`
	RoomType       string      `json:"room_type"`
	CheckIn        string      `json:"check_in"`
	CheckOut       string      `json:"check_out"`
	Nights         int         `json:"nights"`
	NightlyRate    float64     `json:"nightly_rate"`
	TotalPrice     float64     `json:"total_price"`
	Currency       string      `json:"currency"`
	BillingName    string      `json:"billing_name"`
	BillingPhone   string      `json:"billing_phone"`
	Customization  interface{} `json:"customization,omitempty"`
	Status         string      `json:"status"`
	IsPaid         bool        `json:"is_paid"`
	PaymentOrderID string      `json:"payment_order_id,omitempty"`
	PaymentID      string      `json:"payment_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type PaymentOrder struct {
	BookingID string `json:"booking_id"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	KeyID     string `json:"key_id"`
}

// Reconciliation tells the client whether this call confirmed the booking or found it done.
type Reconciliation struct {
	BookingID         string `json:"booking_id"`
	Status            string `json:"status"`
	IsPaid            bool   `json:"is_paid"`
	AlreadyReconciled bool   `json:"already_reconciled"`
}
