package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeharbor/harbor-api/internal/core/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /v1/notifications. Reading the inbox marks it read; the
// unread count reflects the state before this call.
//
// @Summary      Notification inbox
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  notificationListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	who, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	unread, err := h.service.UnreadCount(ctx, who.Email)
	if err != nil {
		return err
	}
	items, err := h.service.List(ctx, who.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationListResponse{Items: items, Unread: unread})
}
