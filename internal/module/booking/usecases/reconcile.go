package usecases

import (
	"context"
	"hotel-booking-service/internal/module/booking/models/entity"
	"hotel-booking-service/internal/module/booking/models/request"
	"hotel-booking-service/internal/module/booking/models/response"
	"hotel-booking-service/internal/module/booking/pricing"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/gateway"
	"hotel-booking-service/internal/pkg/messagestream"
	"hotel-booking-service/internal/pkg/scheduler"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// paymentSignal is a claim that a booking was paid, as delivered by one of the two paths. Each
// path carries the bytes that were signed and the secret they must verify against.
type paymentSignal struct {
	bookingID string
	payload   []byte
	signature string
	secret    string
	info      entity.PaymentInfo
}

func (u *usecase) VerifyPayment(ctx context.Context, payload *request.VerifyPayment, userID int64) (response.Reconciliation, error) {
	booking, err := u.ownedBooking(ctx, payload.BookingID, userID)
	if err != nil {
		return response.Reconciliation{}, err
	}
	if booking.PaymentOrderID == nil || *booking.PaymentOrderID != payload.OrderID {
		return response.Reconciliation{}, errors.ValidationError("payment order does not belong to this booking")
	}

	tr, err := u.reconcile(ctx, paymentSignal{
		bookingID: payload.BookingID,
		payload:   gateway.CheckoutPayload(payload.OrderID, payload.PaymentID),
		signature: payload.Signature,
		secret:    u.cfgGateway.KeySecret,
		info: entity.PaymentInfo{
			Provider:  gateway.ProviderRazorpay,
			OrderID:   payload.OrderID,
			PaymentID: payload.PaymentID,
			Signature: payload.Signature,
			Source:    entity.PaymentSourceVerify,
		},
	})
	if err != nil {
		return response.Reconciliation{}, err
	}

	return toReconciliation(tr), nil
}

// HandleWebhook only verifies and transitions. Rendering and mail happen off the request path so
// the gateway gets its answer quickly. Nothing, the delivery de-dup included, is consulted before
// the signature checks out.
func (u *usecase) HandleWebhook(ctx context.Context, payload *request.Webhook) (response.Reconciliation, error) {
	evt, err := gateway.ParseWebhookEvent(payload.Body)
	if err != nil {
		return response.Reconciliation{}, err
	}

	if !u.gateway.VerifySignature(payload.Body, payload.Signature, u.cfgGateway.WebhookSecret) {
		u.log.Warn(ctx, "webhook signature mismatch, possible tampering",
			zap.String("event", evt.Event),
			zap.String("event_id", payload.EventID),
			zap.String("booking_id", evt.BookingID),
		)
		return response.Reconciliation{}, errors.SignatureMismatch("webhook signature mismatch")
	}

	if !evt.Confirms() {
		u.log.Info(ctx, "webhook event ignored", zap.String("event", evt.Event), zap.String("booking_id", evt.BookingID), zap.String("payment_id", evt.PaymentID))
		return response.Reconciliation{BookingID: evt.BookingID}, nil
	}

	if _, err := uuid.Parse(evt.BookingID); err != nil {
		return response.Reconciliation{}, errors.BadRequest("webhook is not correlated to a booking")
	}

	if payload.EventID != "" {
		processed, err := u.repo.IsProcessed(ctx, webhookKey(payload.EventID))
		if err != nil {
			u.log.Warn(ctx, "error check webhook delivery", err)
		}
		if processed {
			u.log.Info(ctx, "webhook delivery already processed", zap.String("event_id", payload.EventID))
			return response.Reconciliation{BookingID: evt.BookingID, AlreadyReconciled: true}, nil
		}
	}

	tr, err := u.reconcile(ctx, paymentSignal{
		bookingID: evt.BookingID,
		payload:   payload.Body,
		signature: payload.Signature,
		secret:    u.cfgGateway.WebhookSecret,
		info: entity.PaymentInfo{
			Provider:  gateway.ProviderRazorpay,
			OrderID:   evt.OrderID,
			PaymentID: evt.PaymentID,
			Signature: payload.Signature,
			Source:    entity.PaymentSourceWebhook,
		},
	})
	if err != nil {
		return response.Reconciliation{}, err
	}

	if tr.Outcome == entity.OutcomeTransitioned && evt.Amount > 0 && evt.Amount != pricing.MinorUnits(tr.Booking.TotalPrice) {
		u.alert(ctx, request.PaymentAlert{
			BookingID: evt.BookingID,
			PaymentID: evt.PaymentID,
			OrderID:   evt.OrderID,
			Source:    entity.PaymentSourceWebhook,
			Reason:    "captured amount differs from booking total",
		})
	}

	if payload.EventID != "" {
		if err := u.repo.MarkProcessed(ctx, webhookKey(payload.EventID), u.cfgBooking.WebhookDedup); err != nil {
			u.log.Warn(ctx, "error mark webhook delivery", err)
		}
	}

	return toReconciliation(tr), nil
}

// reconcile is shared by both payment paths. The conditional transition is the only
// synchronization point, side effects run only for the call that moved the booking out of pending.
func (u *usecase) reconcile(ctx context.Context, s paymentSignal) (entity.Transition, error) {
	if !u.gateway.VerifySignature(s.payload, s.signature, s.secret) {
		u.log.Warn(ctx, "payment signature mismatch, possible tampering",
			zap.String("booking_id", s.bookingID),
			zap.String("source", s.info.Source),
			zap.String("payment_id", s.info.PaymentID),
		)
		return entity.Transition{}, errors.SignatureMismatch("payment signature mismatch")
	}

	s.info.VerifiedAt = u.now()

	tr, err := u.repo.TransitionToConfirmed(ctx, s.bookingID, s.info)
	if err != nil {
		return entity.Transition{}, err
	}

	switch tr.Outcome {
	case entity.OutcomeTransitioned:
		u.log.Info(ctx, "booking confirmed", zap.String("booking_id", s.bookingID), zap.String("source", s.info.Source))
		u.afterConfirmed(ctx, tr.Booking)
		return tr, nil
	case entity.OutcomeAlreadyReconciled:
		u.log.Info(ctx, "booking already reconciled", zap.String("booking_id", s.bookingID), zap.String("source", s.info.Source))
		return tr, nil
	case entity.OutcomeCancelled:
		u.alert(ctx, request.PaymentAlert{
			BookingID: s.bookingID,
			PaymentID: s.info.PaymentID,
			OrderID:   s.info.OrderID,
			Source:    s.info.Source,
			Reason:    "payment received for a cancelled booking",
		})
		return entity.Transition{}, errors.BookingCancelled("booking is cancelled, the payment needs manual review")
	default:
		return entity.Transition{}, errors.InternalServerError("unexpected transition outcome")
	}
}

// afterConfirmed hands the receipt off to the consumer. Nothing here can undo the confirmation.
func (u *usecase) afterConfirmed(ctx context.Context, booking entity.Booking) {
	bookingID := booking.ID.String()
	u.dropExpiry(ctx, bookingID)

	snapshot := booking.Snapshot()
	payload, err := json.Marshal(snapshot)
	if err != nil {
		u.log.Error(ctx, "error marshal booking snapshot", err, zap.String("booking_id", bookingID))
		return
	}

	err = u.publisher.Publish(messagestream.TopicBookingConfirmed, message.NewMessage(watermill.NewUUID(), payload))
	if err == nil {
		return
	}
	u.log.Error(ctx, "error publish booking confirmed, falling back to task queue", err, zap.String("booking_id", bookingID))

	task, err := json.Marshal(request.SendReceipt{BookingID: bookingID})
	if err != nil {
		u.log.Error(ctx, "error marshal send receipt task", err)
		return
	}
	if _, err := u.repo.SetTaskScheduler(ctx, scheduler.TypeSendBookingReceipt, task, 0, receiptTaskID(bookingID)); err != nil {
		u.log.Error(ctx, "receipt hand-off failed, resend manually", err, zap.String("booking_id", bookingID))
	}
}

// alert reports money that reached a booking which cannot take it.
func (u *usecase) alert(ctx context.Context, a request.PaymentAlert) {
	u.log.Error(ctx, "payment alert",
		zap.String("booking_id", a.BookingID),
		zap.String("payment_id", a.PaymentID),
		zap.String("order_id", a.OrderID),
		zap.String("source", a.Source),
		zap.String("reason", a.Reason),
	)

	payload, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := u.publisher.Publish(messagestream.TopicPaymentAlert, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		u.log.Error(ctx, "error publish payment alert", err)
	}
}

func toReconciliation(tr entity.Transition) response.Reconciliation {
	return response.Reconciliation{
		BookingID:         tr.Booking.ID.String(),
		Status:            string(tr.Booking.Status),
		IsPaid:            tr.Booking.IsPaid,
		AlreadyReconciled: tr.Outcome == entity.OutcomeAlreadyReconciled,
	}
}
