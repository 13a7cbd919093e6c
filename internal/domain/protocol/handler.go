package protocol

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ehr/advisor/internal/platform/auth"
	"github.com/ehr/advisor/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse", "pharmacist"))
	readGroup.GET("/protocols", h.ListProtocols)
	readGroup.GET("/protocols/:id", h.GetProtocol)
}

func (h *Handler) GetProtocol(c echo.Context) error {
	p, err := h.svc.GetProtocol(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "protocol not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListProtocols(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListProtocols(c.Request().Context(), c.QueryParam("category"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}
