package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/core/ports"
)

type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Dashboard handles GET /api/analytics/dashboard.
//
// @Summary      Admin dashboard
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=ports.Dashboard}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /api/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	dashboard, err := h.service.Dashboard(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, dashboard, "Analytics retrieved successfully")
}
