package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homeharbor/harbor-api/internal/core/domain"
	"github.com/homeharbor/harbor-api/internal/core/ports"
)

const taskScope = "tasks"

// TaskHandler handles HTTP requests for maintenance tasks.
type TaskHandler struct {
	service     ports.TaskService
	idempotency ports.IdempotencyStore
	log         zerolog.Logger
}

func NewTaskHandler(service ports.TaskService, idempotency ports.IdempotencyStore, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{service: service, idempotency: idempotency, log: log}
}

// Submit handles POST /v1/tasks.
//
// @Summary      Submit a maintenance request
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Replays return the original task id"
// @Param        body             body      submitTaskRequest  true   "Repair request"
// @Success      201              {object}  domain.Task
// @Success      200              {object}  signupResponse
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Submit(c echo.Context) error {
	who, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req submitTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	key := idempotencyKey(c)
	if key != "" && h.idempotency != nil {
		id, seen, err := h.idempotency.Seen(ctx, taskScope+":"+who.Email, key)
		if err != nil {
			h.log.Warn().Err(err).Msg("idempotency lookup failed")
		} else if seen {
			return c.JSON(http.StatusOK, signupResponse{ID: id, Message: "request already submitted"})
		}
	}

	task, err := h.service.Submit(ctx, toSubmitInput(req, who.Email))
	if err != nil {
		return err
	}

	if key != "" && h.idempotency != nil {
		if err := h.idempotency.Remember(ctx, taskScope+":"+who.Email, key, task.ID); err != nil {
			h.log.Warn().Err(err).Msg("idempotency store failed")
		}
	}

	return c.JSON(http.StatusCreated, task)
}

// List handles GET /v1/tasks. Residents only see their own requests.
//
// @Summary      List maintenance requests
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "open, accepted, rejected or completed"
// @Success      200     {object}  taskListResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	who, err := ctxClaims(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), who.Role, who.Email, ports.TaskFilter{
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskListResponse{Items: tasks, Count: len(tasks)})
}

// Accept handles POST /v1/tasks/:id/accept.
//
// @Summary      Accept a maintenance request
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/tasks/{id}/accept [post]
func (h *TaskHandler) Accept(c echo.Context) error {
	return h.transition(c, h.service.Accept)
}

// Reject handles POST /v1/tasks/:id/reject.
//
// @Summary      Reject a maintenance request
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/tasks/{id}/reject [post]
func (h *TaskHandler) Reject(c echo.Context) error {
	return h.transition(c, h.service.Reject)
}

// Complete handles POST /v1/tasks/:id/complete.
//
// @Summary      Complete an accepted maintenance request
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c echo.Context) error {
	return h.transition(c, h.service.Complete)
}

type transitionFunc func(ctx context.Context, id, staffEmail string) (*domain.Task, error)

func (h *TaskHandler) transition(c echo.Context, fn transitionFunc) error {
	who, err := ctxClaims(c)
	if err != nil {
		return err
	}

	task, err := fn(c.Request().Context(), c.Param("id"), who.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}
