package helpers

import (
	"hotel-booking-service/internal/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.elastic.co/apm"
)

type Response struct {
	Message   string      `json:"message"`
	Code      string      `json:"code,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

const genericFailure = "something went wrong, please contact support"

func RespSuccess(ctx *fiber.Ctx, log *otelzap.Logger, data interface{}, message string) error {
	return ctx.Status(fiber.StatusOK).JSON(Response{
		Message: message,
		Data:    data,
	})
}

// RespError maps a CustomError to its status code. Anything else is reported as a generic
// failure so gateway or database internals never reach the client.
func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	ce, ok := err.(errors.CustomError)
	if !ok {
		log.Ctx(ctx.UserContext()).Error("unhandled error: " + err.Error())
		apm.CaptureError(ctx.UserContext(), err).Send()
		return ctx.Status(fiber.StatusInternalServerError).JSON(Response{
			Message: genericFailure,
			Code:    string(errors.KindInternal),
		})
	}

	message := ce.Message
	if ce.Code >= fiber.StatusInternalServerError {
		apm.CaptureError(ctx.UserContext(), err).Send()
		message = genericFailure
	}

	return ctx.Status(ce.Code).JSON(Response{
		Message:   message,
		Code:      string(ce.Kind),
		Retryable: ce.Retryable(),
	})
}
