package middleware

import (
	"fmt"
	"hotel-booking-service/internal/module/booking/repositories"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/helpers"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const RoleAdmin = "admin"

type Middleware struct {
	Log  *otelzap.Logger
	Repo repositories.Repositories
}

func (m *Middleware) ValidateToken(ctx *fiber.Ctx) error {
	// get token from header
	auth := ctx.Get("Authorization")
	if auth == "" {
		m.Log.Ctx(ctx.UserContext()).Error("error get token from header")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error get token from header"))
	}

	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		m.Log.Ctx(ctx.UserContext()).Error("error parse bearer token")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error parse bearer token"))
	}

	resp, err := m.Repo.ValidateToken(ctx.UserContext(), token)
	if err != nil {
		m.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate token: %v", err))
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error validate token"))
	}

	if !resp.IsValid {
		m.Log.Ctx(ctx.UserContext()).Error("error validate token")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error validate token"))
	}

	ctx.Locals("user_id", resp.UserID)
	ctx.Locals("email_user", resp.EmailUser)
	ctx.Locals("role", resp.Role)

	return ctx.Next()
}

// RequireAdmin must run after ValidateToken.
func (m *Middleware) RequireAdmin(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)
	if role != RoleAdmin {
		m.Log.Ctx(ctx.UserContext()).Error("error access admin route without admin role")
		return helpers.RespError(ctx, m.Log, errors.ForbiddenError("admin role required"))
	}

	return ctx.Next()
}
