package handler

import (
	"context"
	"fmt"
	"hotel-booking-service/internal/module/booking/models/entity"
	"hotel-booking-service/internal/module/booking/models/request"
	"hotel-booking-service/internal/module/booking/usecases"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/gateway"
	"hotel-booking-service/internal/pkg/helpers"
	"hotel-booking-service/internal/pkg/messagestream"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type BookingHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	Publish   message.Publisher
}

func (h *BookingHandler) CheckAvailability(ctx *fiber.Ctx) error {
	var req request.CheckAvailability
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.CheckAvailability(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error check availability: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success check availability")
}

func (h *BookingHandler) CreateBooking(ctx *fiber.Ctx) error {
	var req request.CreateBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)
	emailUser := ctx.Locals("email_user").(string)

	resp, err := h.Usecase.CreateBooking(ctx.UserContext(), &req, userID, emailUser)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success create booking, continue to payment")
}

func (h *BookingHandler) ShowBookings(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.ShowBookings(ctx.UserContext(), userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show bookings")
}

func (h *BookingHandler) GetBooking(ctx *fiber.Ctx) error {
	bookingID, err := bookingIDParam(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}
	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.GetBooking(ctx.UserContext(), bookingID, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error get booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success get booking")
}

func (h *BookingHandler) DownloadReceipt(ctx *fiber.Ctx) error {
	bookingID, err := bookingIDParam(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}
	userID := ctx.Locals("user_id").(int64)

	doc, fileName, err := h.Usecase.DownloadReceipt(ctx.UserContext(), bookingID, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error download receipt: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.Status(fiber.StatusOK).Send(doc)
}

func (h *BookingHandler) CreatePaymentOrder(ctx *fiber.Ctx) error {
	var req request.CreatePaymentOrder
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.CreatePaymentOrder(ctx.UserContext(), &req, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create payment order: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success create payment order")
}

func (h *BookingHandler) VerifyPayment(ctx *fiber.Ctx) error {
	var req request.VerifyPayment
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.VerifyPayment(ctx.UserContext(), &req, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error verify payment: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success verify payment")
}

// HandleWebhook keeps the body exactly as received, the signature covers the raw bytes.
func (h *BookingHandler) HandleWebhook(ctx *fiber.Ctx) error {
	signature := ctx.Get(gateway.HeaderSignature)
	if signature == "" {
		h.Log.Ctx(ctx.UserContext()).Error("webhook without signature")
		return helpers.RespError(ctx, h.Log, errors.SignatureMismatch("missing webhook signature"))
	}

	// fasthttp reuses the request buffer once the handler returns
	body := make([]byte, len(ctx.Body()))
	copy(body, ctx.Body())

	req := request.Webhook{
		Body:      body,
		Signature: signature,
		EventID:   ctx.Get(gateway.HeaderEventID),
	}

	resp, err := h.Usecase.HandleWebhook(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error handle webhook: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success handle webhook")
}

func (h *BookingHandler) CancelBooking(ctx *fiber.Ctx) error {
	bookingID, err := bookingIDParam(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	resp, err := h.Usecase.CancelBooking(ctx.UserContext(), bookingID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error cancel booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success cancel booking")
}

func (h *BookingHandler) OverrideStatus(ctx *fiber.Ctx) error {
	bookingID, err := bookingIDParam(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	var req request.OverrideStatus
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.OverrideStatus(ctx.UserContext(), bookingID, &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error override booking status: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success override booking status")
}

func (h *BookingHandler) ResendReceipt(ctx *fiber.Ctx) error {
	bookingID, err := bookingIDParam(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	if err := h.Usecase.ResendReceipt(ctx.UserContext(), bookingID); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error resend receipt: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "success queue receipt")
}

// ConsumeBookingConfirmed sends the receipt for a confirmed booking. Returning an error hands the
// message to the router's retry and poison middleware, a payload that cannot be decoded goes
// straight to the poisoned topic.
func (h *BookingHandler) ConsumeBookingConfirmed(msg *message.Message) error {
	var req entity.Snapshot
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal message: %v", err))
		h.poison(msg, err)
		return nil
	}

	if _, err := uuid.Parse(req.BookingID); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error validate message: %v", err))
		h.poison(msg, err)
		return nil
	}

	ctx := context.Background()

	if err := h.Usecase.SendBookingReceipt(ctx, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume booking confirmed: %v", err))
		return err
	}

	return nil
}

func (h *BookingHandler) poison(msg *message.Message, cause error) {
	reqPoisoned := request.PoisonedQueue{
		TopicTarget: messagestream.TopicBookingConfirmed,
		ErrorMsg:    cause.Error(),
		Payload:     msg.Payload,
	}

	jsonPayload, _ := json.Marshal(reqPoisoned)

	if err := h.Publish.Publish(messagestream.TopicBookingConfirmedPoisoned, message.NewMessage(watermill.NewUUID(), jsonPayload)); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", err))
	}
}

func (h *BookingHandler) ExpirePendingBooking(ctx context.Context, t *asynq.Task) error {
	var req request.PaymentExpiration
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := h.Usecase.ExpirePendingBooking(ctx, &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error expire pending booking: %v", err))
		return err
	}

	return nil
}

func (h *BookingHandler) SendBookingReceipt(ctx context.Context, t *asynq.Task) error {
	var req request.SendReceipt
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := h.Usecase.DeliverReceipt(ctx, &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error send booking receipt: %v", err))
		return err
	}

	return nil
}

func bookingIDParam(ctx *fiber.Ctx) (string, error) {
	bookingID := ctx.Params("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		return "", errors.BadRequest("invalid booking id")
	}
	return bookingID, nil
}
