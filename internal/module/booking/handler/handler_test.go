package handler_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"hotel-booking-service/internal/module/booking/handler"
	"hotel-booking-service/internal/module/booking/mocks"
	"hotel-booking-service/internal/module/booking/models/entity"
	"hotel-booking-service/internal/module/booking/models/request"
	"hotel-booking-service/internal/module/booking/models/response"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/gateway"
	log_internal "hotel-booking-service/internal/pkg/log"
	"hotel-booking-service/internal/pkg/messagestream"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/valyala/fasthttp"
)

var (
	h             *handler.BookingHandler
	ucm           *mocks.Usecase
	logMock       *otelzap.Logger
	app           *fiber.App
	validatorTest *validator.Validate
	p             *mockPublisher
)

const bookingID = "6f1c2a1e-6c1d-4a57-8a0f-3c2b1d0e9f11"

type mockPublisher struct {
	mu     sync.Mutex
	topics []string
}

// Close implements message.Publisher.
func (m *mockPublisher) Close() error {
	return nil
}

// Publish implements message.Publisher.
func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics = append(m.topics, topic)
	return nil
}

func NewMockPublisher() *mockPublisher {
	return &mockPublisher{}
}

func setup() {
	ucm = &mocks.Usecase{}
	logMock = log_internal.Setup()
	validatorTest = validator.New()
	p = NewMockPublisher()
	h = &handler.BookingHandler{
		Log:       logMock,
		Validator: validatorTest,
		Usecase:   ucm,
		Publish:   p,
	}
	app = fiber.New()
}

func teardown() {
	ucm = nil
	logMock = nil
	validatorTest = nil
	p = nil
	h = nil
	app = nil
}

func authenticated(ctx *fiber.Ctx) error {
	ctx.Locals("user_id", int64(7))
	ctx.Locals("email_user", "asha@example.com")
	return ctx.Next()
}

func jsonCtx(path string, body []byte) *fiber.Ctx {
	ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
	ctx.Request().SetRequestURI(path)
	ctx.Request().Header.SetContentType("application/json")
	ctx.Request().Header.SetMethod("POST")
	ctx.Request().SetBody(body)
	ctx.Locals("user_id", int64(7))
	ctx.Locals("email_user", "asha@example.com")
	return ctx
}

func TestCreateBooking(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		payload := request.CreateBooking{
			RoomID:       11,
			CheckIn:      "2026-03-10",
			CheckOut:     "2026-03-12",
			BillingName:  "Asha Rao",
			BillingPhone: "+919800000000",
		}
		jsonData, _ := json.Marshal(payload)

		ctx := jsonCtx("/api/v1/bookings", jsonData)
		defer app.ReleaseCtx(ctx)

		ucm.On("CreateBooking", mock.Anything, &payload, int64(7), "asha@example.com").
			Return(response.Booking{ID: bookingID, Status: "pending", TotalPrice: 2000}, nil).Once()

		err := h.CreateBooking(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
		assert.Contains(t, string(ctx.Response().Body()), bookingID)
	})

	t.Run("missing billing name", func(t *testing.T) {
		jsonData := []byte(`{"room_id":11,"check_in":"2026-03-10","check_out":"2026-03-12","billing_phone":"+91"}`)

		ctx := jsonCtx("/api/v1/bookings", jsonData)
		defer app.ReleaseCtx(ctx)

		err := h.CreateBooking(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
		ucm.AssertNumberOfCalls(t, "CreateBooking", 1)
	})

	t.Run("invalid date range", func(t *testing.T) {
		payload := request.CreateBooking{RoomID: 11, CheckIn: "2026-03-12", CheckOut: "2026-03-10", BillingName: "Asha", BillingPhone: "+91"}
		jsonData, _ := json.Marshal(payload)

		ctx := jsonCtx("/api/v1/bookings", jsonData)
		defer app.ReleaseCtx(ctx)

		ucm.On("CreateBooking", mock.Anything, &payload, int64(7), "asha@example.com").
			Return(response.Booking{}, errors.InvalidDateRange("check-in must be before check-out")).Once()

		err := h.CreateBooking(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
		assert.Contains(t, string(ctx.Response().Body()), "invalid_date_range")
	})
}

func TestCheckAvailability(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		payload := request.CheckAvailability{RoomID: 11, CheckIn: "2026-03-10", CheckOut: "2026-03-12"}
		jsonData, _ := json.Marshal(payload)

		ctx := jsonCtx("/api/v1/bookings/availability", jsonData)
		defer app.ReleaseCtx(ctx)

		ucm.On("CheckAvailability", mock.Anything, &payload).
			Return(response.Availability{RoomID: 11, Available: true, Nights: 2, TotalPrice: 2000, Currency: "INR"}, nil).Once()

		err := h.CheckAvailability(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})
}

func TestShowBookings(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Locals("user_id", int64(7))

		ucm.On("ShowBookings", mock.Anything, int64(7)).Return([]response.Booking{{ID: bookingID}}, nil).Once()

		err := h.ShowBookings(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})
}

func TestGetBooking(t *testing.T) {
	setup()
	defer teardown()
	app.Get("/api/v1/bookings/:id", authenticated, h.GetBooking)

	t.Run("success", func(t *testing.T) {
		ucm.On("GetBooking", mock.Anything, bookingID, int64(7)).Return(response.Booking{ID: bookingID, Status: "confirmed"}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/bookings/"+bookingID, nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("other user's booking", func(t *testing.T) {
		ucm.On("GetBooking", mock.Anything, bookingID, int64(7)).Return(response.Booking{}, errors.ForbiddenError("booking belongs to another user")).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/bookings/"+bookingID, nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("malformed id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/bookings/42", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestDownloadReceipt(t *testing.T) {
	setup()
	defer teardown()
	app.Get("/api/v1/bookings/:id/receipt", authenticated, h.DownloadReceipt)

	t.Run("success", func(t *testing.T) {
		ucm.On("DownloadReceipt", mock.Anything, bookingID, int64(7)).Return([]byte("%PDF-1.3"), "receipt-"+bookingID+".pdf", nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/bookings/"+bookingID+"/receipt", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "receipt-"+bookingID+".pdf")
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "%PDF-1.3", string(body))
	})

	t.Run("not confirmed", func(t *testing.T) {
		ucm.On("DownloadReceipt", mock.Anything, bookingID, int64(7)).Return(nil, "", errors.BadRequest("receipt is available once the booking is confirmed and paid")).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/bookings/"+bookingID+"/receipt", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreatePaymentOrder(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		payload := request.CreatePaymentOrder{BookingID: bookingID}
		jsonData, _ := json.Marshal(payload)

		ctx := jsonCtx("/api/v1/payment/order", jsonData)
		defer app.ReleaseCtx(ctx)

		ucm.On("CreatePaymentOrder", mock.Anything, &payload, int64(7)).
			Return(response.PaymentOrder{BookingID: bookingID, OrderID: "order_1", Amount: 200000, Currency: "INR", KeyID: "rzp_test"}, nil).Once()

		err := h.CreatePaymentOrder(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
		assert.Contains(t, string(ctx.Response().Body()), "order_1")
	})

	t.Run("gateway unavailable", func(t *testing.T) {
		payload := request.CreatePaymentOrder{BookingID: bookingID}
		jsonData, _ := json.Marshal(payload)

		ctx := jsonCtx("/api/v1/payment/order", jsonData)
		defer app.ReleaseCtx(ctx)

		ucm.On("CreatePaymentOrder", mock.Anything, &payload, int64(7)).
			Return(response.PaymentOrder{}, errors.GatewayUnavailable("gateway responded 502")).Once()

		err := h.CreatePaymentOrder(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, ctx.Response().StatusCode())
		assert.NotContains(t, string(ctx.Response().Body()), "502")
		assert.Contains(t, string(ctx.Response().Body()), `"retryable":true`)
	})

	t.Run("invalid booking id", func(t *testing.T) {
		ctx := jsonCtx("/api/v1/payment/order", []byte(`{"booking_id":"42"}`))
		defer app.ReleaseCtx(ctx)

		err := h.CreatePaymentOrder(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
	})
}

func TestVerifyPayment(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		payload := request.VerifyPayment{BookingID: bookingID, OrderID: "order_1", PaymentID: "pay_1", Signature: "abc"}
		jsonData, _ := json.Marshal(payload)

		ctx := jsonCtx("/api/v1/payment/verify", jsonData)
		defer app.ReleaseCtx(ctx)

		ucm.On("VerifyPayment", mock.Anything, &payload, int64(7)).
			Return(response.Reconciliation{BookingID: bookingID, Status: "confirmed", IsPaid: true}, nil).Once()

		err := h.VerifyPayment(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})

	t.Run("signature mismatch", func(t *testing.T) {
		payload := request.VerifyPayment{BookingID: bookingID, OrderID: "order_1", PaymentID: "pay_1", Signature: "forged"}
		jsonData, _ := json.Marshal(payload)

		ctx := jsonCtx("/api/v1/payment/verify", jsonData)
		defer app.ReleaseCtx(ctx)

		ucm.On("VerifyPayment", mock.Anything, &payload, int64(7)).
			Return(response.Reconciliation{}, errors.SignatureMismatch("payment signature mismatch")).Once()

		err := h.VerifyPayment(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
		assert.Contains(t, string(ctx.Response().Body()), "signature_mismatch")
	})

	t.Run("booking cancelled", func(t *testing.T) {
		payload := request.VerifyPayment{BookingID: bookingID, OrderID: "order_1", PaymentID: "pay_2", Signature: "abc"}
		jsonData, _ := json.Marshal(payload)

		ctx := jsonCtx("/api/v1/payment/verify", jsonData)
		defer app.ReleaseCtx(ctx)

		ucm.On("VerifyPayment", mock.Anything, &payload, int64(7)).
			Return(response.Reconciliation{}, errors.BookingCancelled("booking is cancelled")).Once()

		err := h.VerifyPayment(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, ctx.Response().StatusCode())
	})
}

func TestHandleWebhook(t *testing.T) {
	setup()
	defer teardown()
	app.Post("/api/v1/payment/webhook", h.HandleWebhook)

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","notes":{"booking_id":"` + bookingID + `"}}}}}`)

	t.Run("success", func(t *testing.T) {
		ucm.On("HandleWebhook", mock.Anything, &request.Webhook{Body: body, Signature: "sig", EventID: "evt_1"}).
			Return(response.Reconciliation{BookingID: bookingID, Status: "confirmed", IsPaid: true}, nil).Once()

		req := httptest.NewRequest("POST", "/api/v1/payment/webhook", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(gateway.HeaderSignature, "sig")
		req.Header.Set(gateway.HeaderEventID, "evt_1")

		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("missing signature", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/payment/webhook", bytes.NewReader(body))

		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		ucm.AssertNumberOfCalls(t, "HandleWebhook", 1)
	})
}

func TestAdmin(t *testing.T) {
	setup()
	defer teardown()
	app.Post("/api/v1/admin/bookings/:id/cancel", h.CancelBooking)
	app.Post("/api/v1/admin/bookings/:id/status", h.OverrideStatus)
	app.Post("/api/v1/admin/bookings/:id/receipt", h.ResendReceipt)

	t.Run("cancel", func(t *testing.T) {
		ucm.On("CancelBooking", mock.Anything, bookingID).Return(response.Booking{ID: bookingID, Status: "cancelled"}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/admin/bookings/"+bookingID+"/cancel", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("override status", func(t *testing.T) {
		payload := request.OverrideStatus{Status: "confirmed", Reason: "paid at desk"}
		jsonData, _ := json.Marshal(payload)
		ucm.On("OverrideStatus", mock.Anything, bookingID, &payload).Return(response.Booking{ID: bookingID, Status: "confirmed", IsPaid: true}, nil).Once()

		req := httptest.NewRequest("POST", "/api/v1/admin/bookings/"+bookingID+"/status", bytes.NewReader(jsonData))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("override to unknown status", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/admin/bookings/"+bookingID+"/status", bytes.NewReader([]byte(`{"status":"archived"}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		ucm.AssertNumberOfCalls(t, "OverrideStatus", 1)
	})

	t.Run("resend receipt", func(t *testing.T) {
		ucm.On("ResendReceipt", mock.Anything, bookingID).Return(nil).Once()

		resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/admin/bookings/"+bookingID+"/receipt", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestConsumeBookingConfirmed(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		payload := entity.Snapshot{BookingID: bookingID, GuestEmail: "asha@example.com", HotelName: "Sea View"}
		jsonData, _ := json.Marshal(payload)

		msg := message.NewMessage("123", jsonData)

		ucm.On("SendBookingReceipt", ctx, &payload).Return(nil).Once()

		err := h.ConsumeBookingConfirmed(msg)

		assert.NoError(t, err)
	})

	t.Run("send failure is retried", func(t *testing.T) {
		payload := entity.Snapshot{BookingID: bookingID, GuestEmail: "other@example.com"}
		jsonData, _ := json.Marshal(payload)

		msg := message.NewMessage("124", jsonData)

		ucm.On("SendBookingReceipt", ctx, &payload).Return(stderrors.New("smtp timeout")).Once()

		err := h.ConsumeBookingConfirmed(msg)

		assert.Error(t, err)
	})

	t.Run("malformed payload is poisoned", func(t *testing.T) {
		msg := message.NewMessage("125", []byte("not json"))

		err := h.ConsumeBookingConfirmed(msg)

		assert.NoError(t, err)
		assert.Equal(t, []string{messagestream.TopicBookingConfirmedPoisoned}, p.topics)
	})
}

func TestExpirePendingBooking(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		payload := request.PaymentExpiration{BookingID: bookingID}
		jsonData, _ := json.Marshal(payload)

		ucm.On("ExpirePendingBooking", ctx, &payload).Return(nil).Once()

		err := h.ExpirePendingBooking(ctx, asynq.NewTask("booking:expire_pending", jsonData))

		assert.NoError(t, err)
	})

	t.Run("invalid payload is not retried", func(t *testing.T) {
		err := h.ExpirePendingBooking(ctx, asynq.NewTask("booking:expire_pending", []byte(`{"booking_id":""}`)))

		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}

func TestSendBookingReceipt(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		payload := request.SendReceipt{BookingID: bookingID, Force: true}
		jsonData, _ := json.Marshal(payload)

		ucm.On("DeliverReceipt", ctx, &payload).Return(nil).Once()

		err := h.SendBookingReceipt(ctx, asynq.NewTask("booking:send_receipt", jsonData))

		assert.NoError(t, err)
	})

	t.Run("delivery failure is retried", func(t *testing.T) {
		payload := request.SendReceipt{BookingID: bookingID}
		jsonData, _ := json.Marshal(payload)

		ucm.On("DeliverReceipt", ctx, &payload).Return(stderrors.New("smtp timeout")).Once()

		err := h.SendBookingReceipt(ctx, asynq.NewTask("booking:send_receipt", jsonData))

		assert.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}
