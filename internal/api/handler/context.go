package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

// identity is the caller as described by the claims the Auth middleware injected.
type identity struct {
	UserID string
	Email  string
	Role   domain.Role
}

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be a known role (presence proves the middleware ran).
//   - email must be non-empty; tasks and notifications are keyed on it.
func ctxClaims(c echo.Context) (identity, error) {
	role, _ := c.Get("role").(string)
	if !domain.Role(role).Valid() {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	if email == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	userID, _ := c.Get("user_id").(string)
	return identity{UserID: userID, Email: email, Role: domain.Role(role)}, nil
}

// idempotencyKey returns the client supplied Idempotency-Key header, if any.
func idempotencyKey(c echo.Context) string {
	return c.Request().Header.Get("Idempotency-Key")
}
