package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// VisitHandler serves /api/visits.
type VisitHandler struct {
	service ports.VisitService
}

func NewVisitHandler(service ports.VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

type createVisitRequest struct {
	LeadID          string `json:"leadId"          validate:"required" msg:"Lead ID required"`
	PropertyID      string `json:"propertyId"      validate:"required" msg:"Property ID required"`
	AssignedAgentID string `json:"assignedAgentId"`
	ScheduledAt     string `json:"scheduledAt"     validate:"required" msg:"Invalid date format"`
	Notes           string `json:"notes"`
}

type updateVisitStatusRequest struct {
	Status   domain.VisitStatus `json:"status"   validate:"required,oneof=SCHEDULED COMPLETED NO_SHOW RESCHEDULED CANCELLED"`
	Feedback *string            `json:"feedback"`
	Rating   *int               `json:"rating"   validate:"omitempty,min=1,max=5" msg:"Rating must be between 1 and 5"`
}

// List handles GET /api/visits.
//
// @Summary      List visits
// @Description  Latest scheduled first. agentId is honored for admins only.
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Items per page (default 10, max 100)"
// @Param        status   query     string  false  "Visit status"
// @Param        agentId  query     string  false  "Assigned agent (admins only)"
// @Success      200      {object}  Response{data=[]domain.Visit}
// @Failure      401      {object}  ErrorResponse
// @Router       /api/visits [get]
func (h *VisitHandler) List(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), id, ports.ListVisitsInput{
		Status:  c.QueryParam("status"),
		AgentID: c.QueryParam("agentId"),
		Page:    pageFromQuery(c),
	})
	if err != nil {
		return err
	}
	return paginated(c, result, "Visits fetched successfully")
}

// Get handles GET /api/visits/:id.
//
// @Summary      Get a visit
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Visit id"
// @Success      200  {object}  Response{data=domain.Visit}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/visits/{id} [get]
func (h *VisitHandler) Get(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	visit, err := h.service.Get(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, visit, "Visit fetched successfully")
}

// Create handles POST /api/visits.
//
// @Summary      Schedule a visit
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVisitRequest  true  "Visit"
// @Success      201   {object}  Response{data=domain.Visit}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/visits [post]
func (h *VisitHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req createVisitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	scheduledAt, err := time.Parse(time.RFC3339Nano, req.ScheduledAt)
	if err != nil {
		return domain.Invalid("Invalid date format")
	}

	visit, err := h.service.Create(c.Request().Context(), id, ports.CreateVisitInput{
		LeadID:          req.LeadID,
		PropertyID:      req.PropertyID,
		AssignedAgentID: req.AssignedAgentID,
		ScheduledAt:     scheduledAt,
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, visit, "Visit scheduled successfully")
}

// UpdateStatus handles PUT /api/visits/:id/status.
//
// @Summary      Record a visit outcome
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Visit id"
// @Param        body  body      updateVisitStatusRequest  true  "Outcome"
// @Success      200   {object}  Response{data=domain.Visit}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/visits/{id}/status [put]
func (h *VisitHandler) UpdateStatus(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req updateVisitStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	visit, err := h.service.UpdateStatus(c.Request().Context(), id, c.Param("id"), ports.UpdateVisitStatusInput{
		Status:   req.Status,
		Feedback: req.Feedback,
		Rating:   req.Rating,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, visit, "Visit updated successfully")
}

// Delete handles DELETE /api/visits/:id.
//
// @Summary      Delete a visit
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Visit id"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/visits/{id} [delete]
func (h *VisitHandler) Delete(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return success(c, http.StatusOK, nil, "Visit deleted successfully")
}
