package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeharbor/harbor-api/internal/core/ports"
)

// AdminHandler exposes the approval queue to admins.
type AdminHandler struct {
	authService ports.AuthService
}

func NewAdminHandler(authService ports.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// ListPending handles GET /v1/admin/pending-users.
//
// @Summary      List pending signups
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pendingUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/pending-users [get]
func (h *AdminHandler) ListPending(c echo.Context) error {
	users, err := h.authService.PendingUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pendingUsersResponse{Items: users, Count: len(users)})
}

// ListApproved handles GET /v1/admin/approved-users.
//
// @Summary      List approved accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  approvedUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/approved-users [get]
func (h *AdminHandler) ListApproved(c echo.Context) error {
	users, err := h.authService.ApprovedUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, approvedUsersResponse{Items: users, Count: len(users)})
}

// Approve handles POST /v1/admin/pending-users/:id/approve.
// Unknown ids are accepted silently.
//
// @Summary      Approve a pending signup
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Pending user id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/pending-users/{id}/approve [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	if err := h.authService.ApproveUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Reject handles POST /v1/admin/pending-users/:id/reject.
//
// @Summary      Reject a pending signup
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Pending user id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/pending-users/{id}/reject [post]
func (h *AdminHandler) Reject(c echo.Context) error {
	if err := h.authService.RejectUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
