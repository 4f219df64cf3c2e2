package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeharbor/harbor-api/internal/core/ports"
)

type DirectoryHandler struct {
	service ports.DirectoryService
}

func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// List handles GET /v1/directory.
//
// @Summary      Resident directory
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Unit number or resident name"
// @Param        status  query     string  false  "occupied, vacant or all"
// @Param        floor   query     string  false  "Floor number or all"
// @Success      200     {object}  directoryListResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/directory [get]
func (h *DirectoryHandler) List(c echo.Context) error {
	who, err := ctxClaims(c)
	if err != nil {
		return err
	}

	apts, err := h.service.List(c.Request().Context(), ports.DirectoryFilter{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
		Floor:  c.QueryParam("floor"),
		Role:   who.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, directoryListResponse{Items: apts, Count: len(apts)})
}

// Get handles GET /v1/directory/:id.
//
// @Summary      Apartment details
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Apartment id"
// @Success      200  {object}  domain.Apartment
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/directory/{id} [get]
func (h *DirectoryHandler) Get(c echo.Context) error {
	who, err := ctxClaims(c)
	if err != nil {
		return err
	}

	apt, err := h.service.Get(c.Request().Context(), c.Param("id"), who.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apt)
}

// Stats handles GET /v1/directory/stats.
//
// @Summary      Occupancy summary
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DirectoryStats
// @Failure      403  {object}  errorResponse
// @Router       /v1/directory/stats [get]
func (h *DirectoryHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
