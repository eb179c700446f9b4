package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies a CustomError so callers can tell "retry later" apart from "do not retry".
type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindInvalidDateRange   Kind = "invalid_date_range"
	KindInvalidAmount      Kind = "invalid_amount"
	KindSignatureMismatch  Kind = "signature_mismatch"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindBookingCancelled   Kind = "booking_cancelled"
	KindGatewayUnavailable Kind = "gateway_unavailable"
	KindInternal           Kind = "internal_error"
)

type CustomError struct {
	Code    int
	Kind    Kind
	Message string
}

func (e CustomError) Error() string {
	return e.Message
}

// Is matches on Kind so wrapped errors of the same kind compare equal.
func (e CustomError) Is(target error) bool {
	t, ok := target.(CustomError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Retryable reports whether the same request may succeed later.
func (e CustomError) Retryable() bool {
	return e.Kind == KindGatewayUnavailable || e.Kind == KindInternal
}

func BadRequest(msg string) error {
	return CustomError{Code: http.StatusBadRequest, Kind: KindValidation, Message: msg}
}

func ValidationError(msg string) error {
	return BadRequest(msg)
}

func InvalidDateRange(msg string) error {
	return CustomError{Code: http.StatusBadRequest, Kind: KindInvalidDateRange, Message: msg}
}

func InvalidAmount(msg string) error {
	return CustomError{Code: http.StatusBadRequest, Kind: KindInvalidAmount, Message: msg}
}

func SignatureMismatch(msg string) error {
	return CustomError{Code: http.StatusBadRequest, Kind: KindSignatureMismatch, Message: msg}
}

func UnauthorizedError(msg string) error {
	return CustomError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: msg}
}

func ForbiddenError(msg string) error {
	return CustomError{Code: http.StatusForbidden, Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) error {
	return CustomError{Code: http.StatusNotFound, Kind: KindNotFound, Message: msg}
}

func BookingCancelled(msg string) error {
	return CustomError{Code: http.StatusConflict, Kind: KindBookingCancelled, Message: msg}
}

func GatewayUnavailable(msg string) error {
	return CustomError{Code: http.StatusServiceUnavailable, Kind: KindGatewayUnavailable, Message: msg}
}

func InternalServerError(msg string) error {
	return CustomError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: msg}
}

// KindOf returns the Kind carried by err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ce CustomError
	if stderrors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
