package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"hotel-booking-service/config"
	"hotel-booking-service/internal/module/booking/models/entity"
	"hotel-booking-service/internal/module/booking/models/response"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/log"
	"hotel-booking-service/internal/pkg/scheduler"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type repositories struct {
	db              *sqlx.DB
	log             log.Logger
	userClient      *circuit.HTTPClient
	hotelClient     *circuit.HTTPClient
	redisClient     *redis.Client
	redsync         *redsync.Redsync
	cfgUserService  *config.UserServiceConfig
	cfgHotelService *config.HotelServiceConfig
	scheduler       *asynq.Client
	inspector       *asynq.Inspector
}

type Repositories interface {
	// http
	ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error)
	FindRoom(ctx context.Context, roomID int64) (response.Room, error)
	// redis
	IsProcessed(ctx context.Context, key string) (bool, error)
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) error
	LockBooking(ctx context.Context, bookingID string, ttl time.Duration) (func(), error)
	// scheduler
	SetTaskScheduler(ctx context.Context, taskType string, payload []byte, processIn time.Duration, taskID string) (string, error)
	DeleteTaskScheduler(ctx context.Context, taskID string) error
	// db
	CreateBooking(ctx context.Context, booking *entity.Booking) error
	FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error)
	FindBookingsByUserID(ctx context.Context, userID int64) ([]entity.Booking, error)
	AttachPaymentOrder(ctx context.Context, bookingID string, orderID string) (entity.Booking, error)
	TransitionToConfirmed(ctx context.Context, bookingID string, info entity.PaymentInfo) (entity.Transition, error)
	TransitionToCancelled(ctx context.Context, bookingID string) (entity.Transition, error)
	OverrideStatus(ctx context.Context, bookingID string, status entity.Status, info *entity.PaymentInfo) (entity.Booking, error)
}

// New takes one client per collaborator so a tripped breaker on the hotel service never blocks
// token validation, and the reverse.
func New(db *sqlx.DB, log log.Logger, userClient *circuit.HTTPClient, hotelClient *circuit.HTTPClient, redisClient *redis.Client, rs *redsync.Redsync, cfgUserService *config.UserServiceConfig, cfgHotelService *config.HotelServiceConfig, scheduler *asynq.Client, inspector *asynq.Inspector) Repositories {
	return &repositories{
		db:              db,
		log:             log,
		userClient:      userClient,
		hotelClient:     hotelClient,
		redisClient:     redisClient,
		redsync:         rs,
		cfgUserService:  cfgUserService,
		cfgHotelService: cfgHotelService,
		scheduler:       scheduler,
		inspector:       inspector,
	}
}

const bookingColumns = `id, user_id, room_id, hotel_id, check_in, check_out, nightly_rate, nights, total_price, currency,
	billing_name, billing_phone, guest_email, customization, room, status, is_paid, payment_info, payment_order_id,
	created_at, updated_at`

const (
	queryInsertBooking = `INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	queryFindBookingByID = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	queryFindBookingsByUserID = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	// The status predicate makes each transition a single compare-and-set on the row.
	queryConfirmPending = `UPDATE bookings SET status = 'confirmed', is_paid = TRUE, payment_info = $2, updated_at = NOW()
	WHERE id = $1 AND status = 'pending' RETURNING ` + bookingColumns

	queryCancelPending = `UPDATE bookings SET status = 'cancelled', is_paid = FALSE, payment_info = NULL, updated_at = NOW()
	WHERE id = $1 AND status = 'pending' RETURNING ` + bookingColumns

	// An order is attached once; a concurrent second attach matches no row.
	queryAttachPaymentOrder = `UPDATE bookings SET payment_order_id = $2, updated_at = NOW()
	WHERE id = $1 AND status = 'pending' AND payment_order_id IS NULL RETURNING ` + bookingColumns

	queryOverrideStatus = `UPDATE bookings SET status = $2, is_paid = $3, payment_info = $4, updated_at = NOW()
	WHERE id = $1 RETURNING ` + bookingColumns
)

// CreateBooking implements Repositories.
func (r *repositories) CreateBooking(ctx context.Context, b *entity.Booking) error {
	_, err := r.db.ExecContext(ctx, queryInsertBooking,
		b.ID, b.UserID, b.RoomID, b.HotelID, b.CheckIn, b.CheckOut, b.NightlyRate, b.Nights, b.TotalPrice, b.Currency,
		b.BillingName, b.BillingPhone, b.GuestEmail, b.Customization, b.Room, b.Status, b.IsPaid, b.PaymentInfo, b.PaymentOrderID,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		r.log.Error(ctx, "error insert booking", err)
		return errors.InternalServerError("error create booking")
	}
	return nil
}

// FindBookingByID implements Repositories.
func (r *repositories) FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error) {
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, queryFindBookingByID, bookingID)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		r.log.Error(ctx, "error find booking by id", err)
		return entity.Booking{}, errors.InternalServerError("error find booking by id")
	}
	return booking, nil
}

// FindBookingsByUserID implements Repositories.
func (r *repositories) FindBookingsByUserID(ctx context.Context, userID int64) ([]entity.Booking, error) {
	bookings := []entity.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, queryFindBookingsByUserID, userID); err != nil {
		r.log.Error(ctx, "error find bookings by user id", err)
		return nil, errors.InternalServerError("error find bookings by user id")
	}
	return bookings, nil
}

// AttachPaymentOrder implements Repositories. When another request already attached an order the
// booking is returned as stored, carrying that order.
func (r *repositories) AttachPaymentOrder(ctx context.Context, bookingID string, orderID string) (entity.Booking, error) {
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, queryAttachPaymentOrder, bookingID, orderID)
	if err == nil {
		return booking, nil
	}
	if err != sql.ErrNoRows {
		r.log.Error(ctx, "error attach payment order", err)
		return entity.Booking{}, errors.InternalServerError("error attach payment order")
	}

	current, err := r.FindBookingByID(ctx, bookingID)
	if err != nil {
		return entity.Booking{}, err
	}
	switch current.Status {
	case entity.StatusCancelled:
		return entity.Booking{}, errors.BookingCancelled("booking is cancelled")
	case entity.StatusConfirmed:
		return entity.Booking{}, errors.BadRequest("booking is already confirmed")
	}

	// lost the race to another attach, the caller hands out the order already on the row
	if current.PaymentOrderID != nil {
		r.log.Info(ctx, "payment order already attached", zap.String("booking_id", bookingID), zap.String("order_id", *current.PaymentOrderID))
		return current, nil
	}
	r.log.Error(ctx, "error attach payment order, pending booking matched no row", zap.String("booking_id", bookingID))
	return entity.Booking{}, errors.InternalServerError("error attach payment order")
}

// TransitionToConfirmed implements Repositories. A booking that is no longer pending is reported
// through the outcome, never as an error.
func (r *repositories) TransitionToConfirmed(ctx context.Context, bookingID string, info entity.PaymentInfo) (entity.Transition, error) {
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, queryConfirmPending, bookingID, info)
	if err == nil {
		return entity.Transition{Booking: booking, Outcome: entity.OutcomeTransitioned}, nil
	}
	if err != sql.ErrNoRows {
		r.log.Error(ctx, "error confirm booking", err)
		return entity.Transition{}, errors.InternalServerError("error confirm booking")
	}

	current, err := r.FindBookingByID(ctx, bookingID)
	if err != nil {
		return entity.Transition{}, err
	}

	switch current.Status {
	case entity.StatusConfirmed:
		return entity.Transition{Booking: current, Outcome: entity.OutcomeAlreadyReconciled}, nil
	case entity.StatusCancelled:
		return entity.Transition{Booking: current, Outcome: entity.OutcomeCancelled}, nil
	default:
		// pending again means an override raced the update
		return entity.Transition{}, errors.InternalServerError("booking changed while confirming")
	}
}

// TransitionToCancelled implements Repositories.
func (r *repositories) TransitionToCancelled(ctx context.Context, bookingID string) (entity.Transition, error) {
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, queryCancelPending, bookingID)
	if err == nil {
		return entity.Transition{Booking: booking, Outcome: entity.OutcomeTransitioned}, nil
	}
	if err != sql.ErrNoRows {
		r.log.Error(ctx, "error cancel booking", err)
		return entity.Transition{}, errors.InternalServerError("error cancel booking")
	}

	current, err := r.FindBookingByID(ctx, bookingID)
	if err != nil {
		return entity.Transition{}, err
	}

	switch current.Status {
	case entity.StatusConfirmed:
		return entity.Transition{Booking: current, Outcome: entity.OutcomeAlreadyConfirmed}, nil
	case entity.StatusCancelled:
		return entity.Transition{Booking: current, Outcome: entity.OutcomeCancelled}, nil
	default:
		return entity.Transition{}, errors.InternalServerError("booking changed while cancelling")
	}
}

// OverrideStatus implements Repositories. It writes unconditionally and is reserved for admins.
func (r *repositories) OverrideStatus(ctx context.Context, bookingID string, status entity.Status, info *entity.PaymentInfo) (entity.Booking, error) {
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, queryOverrideStatus, bookingID, status, info != nil, info)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		r.log.Error(ctx, "error override booking status", err)
		return entity.Booking{}, errors.InternalServerError("error override booking status")
	}
	return booking, nil
}

// IsProcessed implements Repositories.
func (r *repositories) IsProcessed(ctx context.Context, key string) (bool, error) {
	n, err := r.redisClient.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.InternalServerError("error check processed marker")
	}
	return n > 0, nil
}

// MarkProcessed implements Repositories.
func (r *repositories) MarkProcessed(ctx context.Context, key string, ttl time.Duration) error {
	if err := r.redisClient.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return errors.InternalServerError("error set processed marker")
	}
	return nil
}

// LockBooking implements Repositories. The lock is not retried, a busy booking fails fast and the
// caller's own retry policy decides what happens next.
func (r *repositories) LockBooking(ctx context.Context, bookingID string, ttl time.Duration) (func(), error) {
	mutex := r.redsync.NewMutex(fmt.Sprintf("lock:booking:%s", bookingID), redsync.WithExpiry(ttl), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.InternalServerError("booking is locked by another worker")
	}

	return func() {
		if _, err := mutex.UnlockContext(context.Background()); err != nil {
			r.log.Warn(ctx, "error release booking lock", err)
		}
	}, nil
}

// SetTaskScheduler implements Repositories. A non-empty taskID makes enqueueing idempotent.
func (r *repositories) SetTaskScheduler(ctx context.Context, taskType string, payload []byte, processIn time.Duration, taskID string) (string, error) {
	opts := []asynq.Option{
		asynq.Queue(scheduler.QueueDefault),
		asynq.MaxRetry(5),
		asynq.ProcessIn(processIn),
	}
	if taskID != "" {
		opts = append(opts, asynq.TaskID(taskID))
	}

	info, err := r.scheduler.EnqueueContext(ctx, asynq.NewTask(taskType, payload), opts...)
	if stderrors.Is(err, asynq.ErrTaskIDConflict) {
		return taskID, nil
	}
	if err != nil {
		r.log.Error(ctx, "error enqueue task", err)
		return "", errors.InternalServerError("error set task scheduler")
	}
	return info.ID, nil
}

// DeleteTaskScheduler implements Repositories.
func (r *repositories) DeleteTaskScheduler(ctx context.Context, taskID string) error {
	err := r.inspector.DeleteTask(scheduler.QueueDefault, taskID)
	if err == nil || stderrors.Is(err, asynq.ErrTaskNotFound) || stderrors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	r.log.Error(ctx, "error delete task", err)
	return errors.InternalServerError("error delete task scheduler")
}

func (r *repositories) ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error) {
	// http call to user service
	endpoint := fmt.Sprintf("http://%s:%s/api/private/token/validate?token=%s", r.cfgUserService.Host, r.cfgUserService.Port, url.QueryEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return response.UserServiceValidate{}, errors.InternalServerError("error build validate token request")
	}

	resp, err := r.userClient.Do(req)
	if err != nil {
		r.log.Error(ctx, "error call user service", err)
		return response.UserServiceValidate{}, errors.UnauthorizedError("identity service unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Error(ctx, "Invalid token", resp.StatusCode)
		return response.UserServiceValidate{}, errors.UnauthorizedError("Invalid token")
	}

	// parse response
	var respData response.UserServiceValidate
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return response.UserServiceValidate{}, errors.UnauthorizedError("Invalid token")
	}

	if !respData.IsValid {
		r.log.Error(ctx, "Invalid token", resp.StatusCode)
		return response.UserServiceValidate{}, errors.UnauthorizedError("Invalid token")
	}

	return respData, nil
}

// FindRoom implements Repositories. The hotel service may wrap the room in a data envelope.
func (r *repositories) FindRoom(ctx context.Context, roomID int64) (response.Room, error) {
	endpoint := fmt.Sprintf("http://%s:%s/api/private/rooms/%d", r.cfgHotelService.Host, r.cfgHotelService.Port, roomID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return response.Room{}, errors.InternalServerError("error build find room request")
	}

	resp, err := r.hotelClient.Do(req)
	if err != nil {
		r.log.Error(ctx, "error call hotel service", err)
		return response.Room{}, errors.InternalServerError("error find room")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return response.Room{}, errors.NotFound("room not found")
	}
	if resp.StatusCode != http.StatusOK {
		r.log.Error(ctx, "error find room", resp.StatusCode)
		return response.Room{}, errors.InternalServerError("error find room")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response.Room{}, errors.InternalServerError("error read room response")
	}

	raw := body
	if data := gjson.GetBytes(body, "data"); data.IsObject() {
		raw = []byte(data.Raw)
	}

	var room response.Room
	if err := json.Unmarshal(raw, &room); err != nil {
		r.log.Error(ctx, "error decode room", err)
		return response.Room{}, errors.InternalServerError("error decode room")
	}
	if room.ID == 0 {
		room.ID = roomID
	}

	return room, nil
}
