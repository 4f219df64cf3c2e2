package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homeharbor/harbor-api/internal/core/domain"
	"github.com/homeharbor/harbor-api/internal/core/ports"
)

const signupScope = "signup"

const signupMessage = "Signup request submitted. Please wait for admin approval."

type AuthHandler struct {
	authService ports.AuthService
	idempotency ports.IdempotencyStore
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, idempotency ports.IdempotencyStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, idempotency: idempotency, log: log}
}

// Login authenticates a user and starts the session. Blank credentials are
// not validated here; the service rejects them as invalid credentials.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
		Role:      session.Role,
	})
}

// Signup queues an account request for admin approval. It never signs the caller in.
//
// @Summary      Request an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string         false  "Replays return the original request id"
// @Param        body             body      signupRequest  true   "Account details"
// @Success      202              {object}  signupResponse
// @Success      200              {object}  signupResponse
// @Failure      400              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	key := idempotencyKey(c)
	if key != "" && h.idempotency != nil {
		id, seen, err := h.idempotency.Seen(ctx, signupScope, key)
		if err != nil {
			h.log.Warn().Err(err).Msg("idempotency lookup failed")
		} else if seen {
			return c.JSON(http.StatusOK, signupResponse{ID: id, Message: signupMessage})
		}
	}

	pending, err := h.authService.Signup(ctx, ports.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ApartmentNumber: req.ApartmentNumber,
		Role:            domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	if key != "" && h.idempotency != nil {
		if err := h.idempotency.Remember(ctx, signupScope, key, pending.ID); err != nil {
			h.log.Warn().Err(err).Msg("idempotency store failed")
		}
	}

	return c.JSON(http.StatusAccepted, signupResponse{ID: pending.ID, Message: signupMessage})
}

// Logout ends the current session. Always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session snapshot.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Session
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, h.authService.Session())
}
