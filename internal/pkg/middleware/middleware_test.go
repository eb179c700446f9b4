package middleware_test

import (
	"hotel-booking-service/internal/module/booking/mocks"
	"hotel-booking-service/internal/module/booking/models/response"
	"hotel-booking-service/internal/pkg/errors"
	log_internal "hotel-booking-service/internal/pkg/log"
	"hotel-booking-service/internal/pkg/middleware"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	app      *fiber.App
	repoMock *mocks.Repositories
)

func setup() {
	repoMock = new(mocks.Repositories)
	m := &middleware.Middleware{Log: log_internal.Setup(), Repo: repoMock}

	app = fiber.New()
	app.Get("/me", m.ValidateToken, func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"user_id": ctx.Locals("user_id"), "email": ctx.Locals("email_user")})
	})
	app.Get("/admin", m.ValidateToken, m.RequireAdmin, func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
}

func teardown() {
	app = nil
	repoMock = nil
}

func TestValidateToken(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		repoMock.On("ValidateToken", mock.Anything, "good").Return(response.UserServiceValidate{IsValid: true, UserID: 7, EmailUser: "asha@example.com", Role: "guest"}, nil).Once()

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Basic abc")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejected by user service", func(t *testing.T) {
		repoMock.On("ValidateToken", mock.Anything, "expired").Return(response.UserServiceValidate{}, errors.UnauthorizedError("Invalid token")).Once()

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer expired")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireAdmin(t *testing.T) {
	setup()
	defer teardown()

	t.Run("admin", func(t *testing.T) {
		repoMock.On("ValidateToken", mock.Anything, "admin").Return(response.UserServiceValidate{IsValid: true, UserID: 1, Role: middleware.RoleAdmin}, nil).Once()

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer admin")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("guest", func(t *testing.T) {
		repoMock.On("ValidateToken", mock.Anything, "guest").Return(response.UserServiceValidate{IsValid: true, UserID: 7, Role: "guest"}, nil).Once()

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer guest")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
