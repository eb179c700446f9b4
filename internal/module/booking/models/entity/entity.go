package entity

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

const (
	PaymentSourceVerify  = "verify"
	PaymentSourceWebhook = "webhook"
	PaymentSourceManual  = "manual"
)

type Booking struct {
	ID             uuid.UUID      `db:"id"`
	UserID         int64          `db:"user_id"`
	RoomID         int64          `db:"room_id"`
	HotelID        int64          `db:"hotel_id"`
	CheckIn        time.Time      `db:"check_in"`
	CheckOut       time.Time      `db:"check_out"`
	NightlyRate    float64        `db:"nightly_rate"`
	Nights         int            `db:"nights"`
	TotalPrice     float64        `db:"total_price"`
	Currency       string         `db:"currency"`
	BillingName    string         `db:"billing_name"`
	BillingPhone   string         `db:"billing_phone"`
	GuestEmail     string         `db:"guest_email"`
	Customization  *Customization `db:"customization"`
	Room           RoomSnapshot   `db:"room"`
	Status         Status         `db:"status"`
	IsPaid         bool           `db:"is_paid"`
	PaymentInfo    *PaymentInfo   `db:"payment_info"`
	PaymentOrderID *string        `db:"payment_order_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// PaymentInfo is written once, by reconciliation or an admin override.
type PaymentInfo struct {
	Provider   string    `json:"provider"`
	OrderID    string    `json:"order_id"`
	PaymentID  string    `json:"payment_id"`
	Signature  string    `json:"signature,omitempty"`
	Source     string    `json:"source"`
	VerifiedAt time.Time `json:"verified_at"`
}

// RoomSnapshot freezes the descriptive room and hotel data at booking time.
type RoomSnapshot struct {
	HotelName    string   `json:"hotel_name"`
	HotelAddress string   `json:"hotel_address"`
	RoomType     string   `json:"room_type"`
	RoomNumber   string   `json:"room_number"`
	ImageURLs    []string `json:"image_urls,omitempty"`
}

type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Customization struct {
	Guests        *Range `json:"guests,omitempty"`
	Days          *Range `json:"days,omitempty"`
	IncludedItems string `json:"included_items,omitempty"`
}

func (c Customization) Empty() bool {
	return c.Guests == nil && c.Days == nil && c.IncludedItems == ""
}

type TransitionOutcome string

const (
	OutcomeTransitioned      TransitionOutcome = "transitioned"
	OutcomeAlreadyReconciled TransitionOutcome = "already_reconciled"
	OutcomeCancelled         TransitionOutcome = "cancelled"
	OutcomeAlreadyConfirmed  TransitionOutcome = "already_confirmed"
)

// Transition is the result of a conditional status change. Booking is the row as it is after the
// attempt, whichever branch was taken.
type Transition struct {
	Booking Booking
	Outcome TransitionOutcome
}

// Snapshot is everything the receipt and the confirmation mail need, resolved once.
type Snapshot struct {
	BookingID     string         `json:"booking_id"`
	GuestName     string         `json:"guest_name"`
	GuestPhone    string         `json:"guest_phone"`
	GuestEmail    string         `json:"guest_email"`
	HotelName     string         `json:"hotel_name"`
	HotelAddress  string         `json:"hotel_address"`
	RoomType      string         `json:"room_type"`
	RoomNumber    string         `json:"room_number"`
	CheckIn       string         `json:"check_in"`
	CheckOut      string         `json:"check_out"`
	Nights        int            `json:"nights"`
	NightlyRate   float64        `json:"nightly_rate"`
	TotalPrice    float64        `json:"total_price"`
	Currency      string         `json:"currency"`
	OrderID       string         `json:"order_id"`
	PaymentID     string         `json:"payment_id"`
	Customization *Customization `json:"customization,omitempty"`
	ConfirmedAt   time.Time      `json:"confirmed_at"`
}

const DateLayout = "2006-01-02"

func (b Booking) Snapshot() Snapshot {
	s := Snapshot{
		BookingID:     b.ID.String(),
		GuestName:     b.BillingName,
		GuestPhone:    b.BillingPhone,
		GuestEmail:    b.GuestEmail,
		HotelName:     b.Room.HotelName,
		HotelAddress:  b.Room.HotelAddress,
		RoomType:      b.Room.RoomType,
		RoomNumber:    b.Room.RoomNumber,
		CheckIn:       b.CheckIn.Format(DateLayout),
		CheckOut:      b.CheckOut.Format(DateLayout),
		Nights:        b.Nights,
		NightlyRate:   b.NightlyRate,
		TotalPrice:    b.TotalPrice,
		Currency:      b.Currency,
		Customization: b.Customization,
		ConfirmedAt:   b.UpdatedAt.UTC(),
	}
	if b.PaymentInfo != nil {
		s.OrderID = b.PaymentInfo.OrderID
		s.PaymentID = b.PaymentInfo.PaymentID
		s.ConfirmedAt = b.PaymentInfo.VerifiedAt.UTC()
	}
	return s
}

// Value and Scan store the JSONB columns.

func (p PaymentInfo) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PaymentInfo) Scan(src interface{}) error {
	return scanJSON(src, p)
}

func (r RoomSnapshot) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *RoomSnapshot) Scan(src interface{}) error {
	return scanJSON(src, r)
}

func (c Customization) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Customization) Scan(src interface{}) error {
	return scanJSON(src, c)
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}
}
