package usecases

import (
	"context"
	"hotel-booking-service/internal/module/booking/models/entity"
	"hotel-booking-service/internal/module/booking/models/request"
	"hotel-booking-service/internal/module/booking/notification"
	"hotel-booking-service/internal/module/booking/receipt"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/scheduler"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// SendBookingReceipt consumes the booking_confirmed hand-off. Redelivery is expected, so a receipt
// already sent for the booking is skipped.
func (u *usecase) SendBookingReceipt(ctx context.Context, snapshot *entity.Snapshot) error {
	return u.sendReceipt(ctx, *snapshot, false)
}

// DeliverReceipt runs the send receipt task, used as the publish fallback and by admin resends.
func (u *usecase) DeliverReceipt(ctx context.Context, payload *request.SendReceipt) error {
	booking, err := u.repo.FindBookingByID(ctx, payload.BookingID)
	if errors.IsKind(err, errors.KindNotFound) {
		u.log.Warn(ctx, "receipt requested for unknown booking", zap.String("booking_id", payload.BookingID))
		return nil
	}
	if err != nil {
		return err
	}
	if booking.Status != entity.StatusConfirmed || !booking.IsPaid {
		u.log.Warn(ctx, "receipt requested for unconfirmed booking", zap.String("booking_id", payload.BookingID), zap.String("status", string(booking.Status)))
		return nil
	}

	return u.sendReceipt(ctx, booking.Snapshot(), payload.Force)
}

func (u *usecase) ResendReceipt(ctx context.Context, bookingID string) error {
	booking, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != entity.StatusConfirmed || !booking.IsPaid {
		return errors.BadRequest("receipt can only be sent for a confirmed and paid booking")
	}

	payload, err := json.Marshal(request.SendReceipt{BookingID: bookingID, Force: true})
	if err != nil {
		return errors.InternalServerError("error marshal send receipt task")
	}
	if _, err := u.repo.SetTaskScheduler(ctx, scheduler.TypeSendBookingReceipt, payload, 0, ""); err != nil {
		return err
	}
	return nil
}

// sendReceipt renders and mails under a per-booking lock. Errors are returned so the caller's
// retry policy (watermill retry, asynq retry) can run it again. The booking itself is never touched.
func (u *usecase) sendReceipt(ctx context.Context, snapshot entity.Snapshot, force bool) error {
	if snapshot.GuestEmail == "" {
		u.log.Warn(ctx, "booking has no guest email, receipt not sent", zap.String("booking_id", snapshot.BookingID))
		return nil
	}

	unlock, err := u.repo.LockBooking(ctx, snapshot.BookingID, u.cfgBooking.ReceiptLock)
	if err != nil {
		return err
	}
	defer unlock()

	if !force {
		sent, err := u.repo.IsProcessed(ctx, receiptKey(snapshot.BookingID))
		if err != nil {
			u.log.Warn(ctx, "error check receipt marker", err)
		}
		if sent {
			u.log.Info(ctx, "receipt already sent", zap.String("booking_id", snapshot.BookingID))
			return nil
		}
	}

	doc, err := u.renderer.Render(snapshot)
	if err != nil {
		u.log.Error(ctx, "error render receipt", err, zap.String("booking_id", snapshot.BookingID))
		return err
	}

	body, err := notification.ConfirmationBody(snapshot)
	if err != nil {
		u.log.Error(ctx, "error render confirmation body", err)
		return err
	}

	err = u.notifier.Send(ctx, notification.Message{
		To:       snapshot.GuestEmail,
		Subject:  notification.Subject(snapshot),
		HTMLBody: body,
		Attachment: &notification.Attachment{
			Name:        receipt.FileName(snapshot),
			ContentType: "application/pdf",
			Data:        doc,
		},
	})
	if err != nil {
		u.log.Error(ctx, "error send confirmation mail", err, zap.String("booking_id", snapshot.BookingID))
		return err
	}

	if err := u.repo.MarkProcessed(ctx, receiptKey(snapshot.BookingID), u.cfgBooking.ReceiptMarker); err != nil {
		u.log.Warn(ctx, "error mark receipt sent", err)
	}

	u.log.Info(ctx, "confirmation mail sent", zap.String("booking_id", snapshot.BookingID))
	return nil
}
