package usecases

import (
	"context"
	"fmt"
	"hotel-booking-service/config"
	"hotel-booking-service/internal/module/booking/models/entity"
	"hotel-booking-service/internal/module/booking/models/request"
	"hotel-booking-service/internal/module/booking/models/response"
	"hotel-booking-service/internal/module/booking/notification"
	"hotel-booking-service/internal/module/booking/pricing"
	"hotel-booking-service/internal/module/booking/receipt"
	"hotel-booking-service/internal/module/booking/repositories"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/gateway"
	"hotel-booking-service/internal/pkg/log"
	"hotel-booking-service/internal/pkg/scheduler"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type usecase struct {
	repo       repositories.Repositories
	log        log.Logger
	publisher  message.Publisher
	gateway    gateway.Gateway
	renderer   receipt.Renderer
	notifier   notification.Notifier
	cfgBooking *config.BookingConfig
	cfgGateway *config.GatewayConfig
	now        func() time.Time
}

type Usecase interface {
	// http
	CheckAvailability(ctx context.Context, payload *request.CheckAvailability) (response.Availability, error)
	CreateBooking(ctx context.Context, payload *request.CreateBooking, userID int64, emailUser string) (response.Booking, error)
	ShowBookings(ctx context.Context, userID int64) ([]response.Booking, error)
	GetBooking(ctx context.Context, bookingID string, userID int64) (response.Booking, error)
	DownloadReceipt(ctx context.Context, bookingID string, userID int64) ([]byte, string, error)
	CreatePaymentOrder(ctx context.Context, payload *request.CreatePaymentOrder, userID int64) (response.PaymentOrder, error)
	VerifyPayment(ctx context.Context, payload *request.VerifyPayment, userID int64) (response.Reconciliation, error)
	HandleWebhook(ctx context.Context, payload *request.Webhook) (response.Reconciliation, error)
	// admin
	CancelBooking(ctx context.Context, bookingID string) (response.Booking, error)
	OverrideStatus(ctx context.Context, bookingID string, payload *request.OverrideStatus) (response.Booking, error)
	ResendReceipt(ctx context.Context, bookingID string) error
	// queue & scheduler
	SendBookingReceipt(ctx context.Context, snapshot *entity.Snapshot) error
	DeliverReceipt(ctx context.Context, payload *request.SendReceipt) error
	ExpirePendingBooking(ctx context.Context, payload *request.PaymentExpiration) error
}

func New(repo repositories.Repositories, log log.Logger, publisher message.Publisher, gw gateway.Gateway, renderer receipt.Renderer, notifier notification.Notifier, cfgBooking *config.BookingConfig, cfgGateway *config.GatewayConfig) Usecase {
	return &usecase{
		repo:       repo,
		log:        log,
		publisher:  publisher,
		gateway:    gw,
		renderer:   renderer,
		notifier:   notifier,
		cfgBooking: cfgBooking,
		cfgGateway: cfgGateway,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func webhookKey(eventID string) string {
	return fmt.Sprintf("webhook:event:%s", eventID)
}

func receiptKey(bookingID string) string {
	return fmt.Sprintf("receipt:sent:%s", bookingID)
}

func receiptTaskID(bookingID string) string {
	return fmt.Sprintf("receipt:%s", bookingID)
}

func expiryTaskID(bookingID string) string {
	return fmt.Sprintf("expire:%s", bookingID)
}

func (u *usecase) CheckAvailability(ctx context.Context, payload *request.CheckAvailability) (response.Availability, error) {
	room, err := u.repo.FindRoom(ctx, payload.RoomID)
	if err != nil {
		return response.Availability{}, err
	}

	stay, err := pricing.ComputeStay(payload.CheckIn, payload.CheckOut, room.NightlyRate)
	if err != nil {
		return response.Availability{}, err
	}

	// availability is the room flag only, existing bookings on the same dates are not checked
	return response.Availability{
		RoomID:      room.ID,
		Available:   room.IsAvailable,
		Nights:      stay.Nights,
		NightlyRate: room.NightlyRate,
		TotalPrice:  stay.TotalPrice,
		Currency:    u.currency(room.Currency),
	}, nil
}

func (u *usecase) CreateBooking(ctx context.Context, payload *request.CreateBooking, userID int64, emailUser string) (response.Booking, error) {
	billingName := strings.TrimSpace(payload.BillingName)
	billingPhone := strings.TrimSpace(payload.BillingPhone)
	if billingName == "" || billingPhone == "" {
		return response.Booking{}, errors.ValidationError("billing name and phone are required")
	}

	customization, err := entity.NormalizeCustomization(payload.Customization)
	if err != nil {
		return response.Booking{}, err
	}

	room, err := u.repo.FindRoom(ctx, payload.RoomID)
	if err != nil {
		return response.Booking{}, err
	}

	stay, err := pricing.ComputeStay(payload.CheckIn, payload.CheckOut, room.NightlyRate)
	if err != nil {
		return response.Booking{}, err
	}

	now := u.now()
	booking := entity.Booking{
		ID:            uuid.New(),
		UserID:        userID,
		RoomID:        payload.RoomID,
		HotelID:       room.HotelID,
		CheckIn:       stay.CheckIn,
		CheckOut:      stay.CheckOut,
		NightlyRate:   room.NightlyRate,
		Nights:        stay.Nights,
		TotalPrice:    stay.TotalPrice,
		Currency:      u.currency(room.Currency),
		BillingName:   billingName,
		BillingPhone:  billingPhone,
		GuestEmail:    emailUser,
		Customization: customization,
		Room: entity.RoomSnapshot{
			HotelName:    room.HotelName,
			HotelAddress: room.HotelAddress,
			RoomType:     room.RoomType,
			RoomNumber:   room.RoomNumber,
			ImageURLs:    room.ImageURLs,
		},
		Status:    entity.StatusPending,
		IsPaid:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.repo.CreateBooking(ctx, &booking); err != nil {
		return response.Booking{}, err
	}

	u.log.Info(ctx, "booking created", zap.String("booking_id", booking.ID.String()), zap.Int64("user_id", userID))

	return toResponse(booking), nil
}

func (u *usecase) ShowBookings(ctx context.Context, userID int64) ([]response.Booking, error) {
	bookings, err := u.repo.FindBookingsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]response.Booking, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toResponse(b))
	}
	return resp, nil
}

func (u *usecase) GetBooking(ctx context.Context, bookingID string, userID int64) (response.Booking, error) {
	booking, err := u.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return response.Booking{}, err
	}
	return toResponse(booking), nil
}

func (u *usecase) DownloadReceipt(ctx context.Context, bookingID string, userID int64) ([]byte, string, error) {
	booking, err := u.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, "", err
	}
	if booking.Status != entity.StatusConfirmed || !booking.IsPaid {
		return nil, "", errors.BadRequest("receipt is available once the booking is confirmed and paid")
	}

	snapshot := booking.Snapshot()
	doc, err := u.renderer.Render(snapshot)
	if err != nil {
		u.log.Error(ctx, "error render receipt", err, zap.String("booking_id", bookingID))
		return nil, "", errors.InternalServerError("error render receipt")
	}

	return doc, receipt.FileName(snapshot), nil
}

func (u *usecase) CreatePaymentOrder(ctx context.Context, payload *request.CreatePaymentOrder, userID int64) (response.PaymentOrder, error) {
	booking, err := u.ownedBooking(ctx, payload.BookingID, userID)
	if err != nil {
		return response.PaymentOrder{}, err
	}

	switch booking.Status {
	case entity.StatusCancelled:
		return response.PaymentOrder{}, errors.BookingCancelled("booking is cancelled")
	case entity.StatusConfirmed:
		return response.PaymentOrder{}, errors.BadRequest("booking is already confirmed")
	}

	amount := pricing.MinorUnits(booking.TotalPrice)

	// an order already attached is handed out again instead of opening a second one
	if booking.PaymentOrderID != nil && *booking.PaymentOrderID != "" {
		return response.PaymentOrder{
			BookingID: payload.BookingID,
			OrderID:   *booking.PaymentOrderID,
			Amount:    amount,
			Currency:  booking.Currency,
			KeyID:     u.gateway.KeyID(),
		}, nil
	}

	order, err := u.gateway.CreateOrder(ctx, payload.BookingID, amount, booking.Currency)
	if err != nil {
		u.log.Error(ctx, "error create gateway order", err, zap.String("booking_id", payload.BookingID))
		return response.PaymentOrder{}, err
	}

	attached, err := u.repo.AttachPaymentOrder(ctx, payload.BookingID, order.ID)
	if err != nil {
		return response.PaymentOrder{}, err
	}

	// a concurrent request attached its order first, that one stays authoritative
	if attached.PaymentOrderID != nil && *attached.PaymentOrderID != order.ID {
		u.log.Warn(ctx, "discarding gateway order, booking already has one",
			zap.String("booking_id", payload.BookingID),
			zap.String("order_id", order.ID),
			zap.String("attached_order_id", *attached.PaymentOrderID),
		)
		return response.PaymentOrder{
			BookingID: payload.BookingID,
			OrderID:   *attached.PaymentOrderID,
			Amount:    pricing.MinorUnits(attached.TotalPrice),
			Currency:  attached.Currency,
			KeyID:     u.gateway.KeyID(),
		}, nil
	}

	u.scheduleExpiry(ctx, payload.BookingID)

	return response.PaymentOrder{
		BookingID: payload.BookingID,
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		KeyID:     u.gateway.KeyID(),
	}, nil
}

func (u *usecase) scheduleExpiry(ctx context.Context, bookingID string) {
	if u.cfgBooking.PaymentExpiry <= 0 {
		return
	}

	payload, err := json.Marshal(request.PaymentExpiration{BookingID: bookingID})
	if err != nil {
		u.log.Error(ctx, "error marshal payment expiration", err)
		return
	}

	if _, err := u.repo.SetTaskScheduler(ctx, scheduler.TypeExpirePendingBooking, payload, u.cfgBooking.PaymentExpiry, expiryTaskID(bookingID)); err != nil {
		u.log.Warn(ctx, "error schedule payment expiration", err, zap.String("booking_id", bookingID))
	}
}

func (u *usecase) ExpirePendingBooking(ctx context.Context, payload *request.PaymentExpiration) error {
	tr, err := u.repo.TransitionToCancelled(ctx, payload.BookingID)
	if errors.IsKind(err, errors.KindNotFound) {
		u.log.Warn(ctx, "expired booking no longer exists", zap.String("booking_id", payload.BookingID))
		return nil
	}
	if err != nil {
		return err
	}

	if tr.Outcome == entity.OutcomeTransitioned {
		u.log.Info(ctx, "unpaid booking expired", zap.String("booking_id", payload.BookingID))
		return nil
	}

	u.log.Info(ctx, "booking left pending before expiry", zap.String("booking_id", payload.BookingID), zap.String("status", string(tr.Booking.Status)))
	return nil
}

func (u *usecase) CancelBooking(ctx context.Context, bookingID string) (response.Booking, error) {
	tr, err := u.repo.TransitionToCancelled(ctx, bookingID)
	if err != nil {
		return response.Booking{}, err
	}

	switch tr.Outcome {
	case entity.OutcomeAlreadyConfirmed:
		return response.Booking{}, errors.BadRequest("only pending bookings can be cancelled, use a status override")
	case entity.OutcomeTransitioned:
		u.dropExpiry(ctx, bookingID)
		u.log.Info(ctx, "booking cancelled by admin", zap.String("booking_id", bookingID))
	}

	return toResponse(tr.Booking), nil
}

// OverrideStatus is the privileged escape hatch. Confirming records a manual payment when the
// booking has none so paid and payment info never disagree.
func (u *usecase) OverrideStatus(ctx context.Context, bookingID string, payload *request.OverrideStatus) (response.Booking, error) {
	status := entity.Status(payload.Status)
	if !status.Valid() {
		return response.Booking{}, errors.ValidationError("unknown booking status")
	}

	current, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return response.Booking{}, err
	}

	var info *entity.PaymentInfo
	if status == entity.StatusConfirmed {
		info = current.PaymentInfo
		if info == nil {
			info = &entity.PaymentInfo{
				Provider:   entity.PaymentSourceManual,
				Source:     entity.PaymentSourceManual,
				VerifiedAt: u.now(),
			}
		}
	}

	booking, err := u.repo.OverrideStatus(ctx, bookingID, status, info)
	if err != nil {
		return response.Booking{}, err
	}

	if status != entity.StatusPending {
		u.dropExpiry(ctx, bookingID)
	}

	u.log.Warn(ctx, "booking status overridden",
		zap.String("booking_id", bookingID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
		zap.String("reason", payload.Reason),
	)

	return toResponse(booking), nil
}

func (u *usecase) dropExpiry(ctx context.Context, bookingID string) {
	if err := u.repo.DeleteTaskScheduler(ctx, expiryTaskID(bookingID)); err != nil {
		u.log.Warn(ctx, "error delete payment expiration task", err, zap.String("booking_id", bookingID))
	}
}

func (u *usecase) ownedBooking(ctx context.Context, bookingID string, userID int64) (entity.Booking, error) {
	booking, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return entity.Booking{}, err
	}
	if booking.UserID != userID {
		return entity.Booking{}, errors.ForbiddenError("booking belongs to another user")
	}
	return booking, nil
}

func (u *usecase) currency(currency string) string {
	if currency != "" {
		return strings.ToUpper(currency)
	}
	return u.cfgGateway.Currency
}

func toResponse(b entity.Booking) response.Booking {
	resp := response.Booking{
		ID:           b.ID.String(),
		RoomID:       b.RoomID,
		HotelID:      b.HotelID,
		HotelName:    b.Room.HotelName,
		RoomType:     b.Room.RoomType,
		CheckIn:      b.CheckIn.Format(entity.DateLayout),
		CheckOut:     b.CheckOut.Format(entity.DateLayout),
		Nights:       b.Nights,
		NightlyRate:  b.NightlyRate,
		TotalPrice:   b.TotalPrice,
		Currency:     b.Currency,
		BillingName:  b.BillingName,
		BillingPhone: b.BillingPhone,
		Status:       string(b.Status),
		IsPaid:       b.IsPaid,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.Customization != nil {
		resp.Customization = b.Customization
	}
	if b.PaymentOrderID != nil {
		resp.PaymentOrderID = *b.PaymentOrderID
	}
	if b.PaymentInfo != nil {
		resp.PaymentID = b.PaymentInfo.PaymentID
	}
	return resp
}
