package router

import (
	"hotel-booking-service/internal/module/booking/handler"
	"hotel-booking-service/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func Initialize(app *fiber.App, handlerBooking *handler.BookingHandler, m *middleware.Middleware) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	Api := app.Group("/api")

	// public routes
	v1 := Api.Group("/v1")
	v1.Post("/bookings/availability", m.ValidateToken, handlerBooking.CheckAvailability)
	v1.Post("/bookings", m.ValidateToken, handlerBooking.CreateBooking)
	v1.Get("/bookings", m.ValidateToken, handlerBooking.ShowBookings)
	v1.Get("/bookings/:id", m.ValidateToken, handlerBooking.GetBooking)
	v1.Get("/bookings/:id/receipt", m.ValidateToken, handlerBooking.DownloadReceipt)
	v1.Post("/payment/order", m.ValidateToken, handlerBooking.CreatePaymentOrder)
	v1.Post("/payment/verify", m.ValidateToken, handlerBooking.VerifyPayment)

	// gateway callback, authenticated by its signature
	v1.Post("/payment/webhook", handlerBooking.HandleWebhook)

	admin := v1.Group("/admin", m.ValidateToken, m.RequireAdmin)
	admin.Post("/bookings/:id/cancel", handlerBooking.CancelBooking)
	admin.Post("/bookings/:id/status", handlerBooking.OverrideStatus)
	admin.Post("/bookings/:id/receipt", handlerBooking.ResendReceipt)

	return app

}
