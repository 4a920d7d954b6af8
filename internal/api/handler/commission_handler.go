package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/api/metrics"
	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// CommissionHandler serves /api/commissions.
type CommissionHandler struct {
	service ports.CommissionService
}

func NewCommissionHandler(service ports.CommissionService) *CommissionHandler {
	return &CommissionHandler{service: service}
}

// Required fields are checked by the service so the client gets a single
// "Missing required fields" message.
type createCommissionRequest struct {
	AgentID    string  `json:"agentId"`
	PropertyID string  `json:"propertyId"`
	Percentage float64 `json:"percentage"`
}

type updateCommissionStatusRequest struct {
	Status domain.CommissionStatus `json:"status" validate:"required,oneof=PENDING APPROVED PAID CANCELLED"`
}

// List handles GET /api/commissions.
//
// @Summary      List commissions
// @Description  Agents see their own commissions; agentId is honored for admins only.
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Items per page (default 10, max 100)"
// @Param        status   query     string  false  "Commission status"
// @Param        agentId  query     string  false  "Agent (admins only)"
// @Success      200      {object}  Response{data=[]domain.Commission}
// @Failure      401      {object}  ErrorResponse
// @Router       /api/commissions [get]
func (h *CommissionHandler) List(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), id, ports.ListCommissionsInput{
		Status:  c.QueryParam("status"),
		AgentID: c.QueryParam("agentId"),
		Page:    pageFromQuery(c),
	})
	if err != nil {
		return err
	}
	return paginated(c, result, "Commissions fetched successfully")
}

// Create handles POST /api/commissions.
//
// @Summary      Create a commission
// @Description  Admin only. The property price and amount are captured at creation.
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCommissionRequest  true  "Commission"
// @Success      201   {object}  Response{data=domain.Commission}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/commissions [post]
func (h *CommissionHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req createCommissionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	commission, err := h.service.Create(c.Request().Context(), id, ports.CreateCommissionInput{
		AgentID:    req.AgentID,
		PropertyID: req.PropertyID,
		Percentage: req.Percentage,
	})
	if err != nil {
		return err
	}

	metrics.CommissionsCreatedTotal.Inc()
	return success(c, http.StatusCreated, commission, "Commission created successfully")
}

// UpdateStatus handles PUT /api/commissions/:id/status.
//
// @Summary      Change a commission status
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                         true  "Commission id"
// @Param        body  body      updateCommissionStatusRequest  true  "New status"
// @Success      200   {object}  Response{data=domain.Commission}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/commissions/{id}/status [put]
func (h *CommissionHandler) UpdateStatus(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req updateCommissionStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	commission, err := h.service.UpdateStatus(c.Request().Context(), id, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, commission, "Commission updated successfully")
}
