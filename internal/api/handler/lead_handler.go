package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/api/metrics"
	"github.com/recrm/crm-api/internal/core/ports"
)

// LeadHandler serves /api/leads and the lead timeline.
type LeadHandler struct {
	leads      ports.LeadService
	activities ports.ActivityService
}

func NewLeadHandler(leads ports.LeadService, activities ports.ActivityService) *LeadHandler {
	return &LeadHandler{leads: leads, activities: activities}
}

// List handles GET /api/leads.
//
// @Summary      List leads
// @Description  Non-admins only see leads assigned to them.
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 10, max 100)"
// @Param        search  query     string  false  "Matches first name, last name, email or phone"
// @Param        status  query     string  false  "Lead status"
// @Param        source  query     string  false  "Lead source"
// @Success      200     {object}  Response{data=[]domain.Lead}
// @Failure      401     {object}  ErrorResponse
// @Failure      503     {object}  ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	result, err := h.leads.List(c.Request().Context(), id, ports.LeadFilter{
		Status: c.QueryParam("status"),
		Source: c.QueryParam("source"),
		Search: c.QueryParam("search"),
		Page:   pageFromQuery(c),
	})
	if err != nil {
		return err
	}
	return paginated(c, result, "Leads fetched successfully")
}

// Get handles GET /api/leads/:id.
//
// @Summary      Get a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead id"
// @Success      200  {object}  Response{data=domain.Lead}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	lead, err := h.leads.Get(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, lead, "Lead fetched successfully")
}

// Create handles POST /api/leads.
//
// @Summary      Create a lead
// @Description  Agents are always assigned to the leads they create.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLeadRequest  true  "Lead"
// @Success      201   {object}  Response{data=domain.Lead}
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req createLeadRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lead, err := h.leads.Create(c.Request().Context(), id, ports.CreateLeadInput{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		Phone:                req.Phone,
		Type:                 req.Type,
		Source:               req.Source,
		Status:               req.Status,
		BudgetMin:            req.BudgetMin,
		BudgetMax:            req.BudgetMax,
		InterestedPropertyID: req.InterestedPropertyID,
		Notes:                req.Notes,
		AssignedAgentID:      req.AssignedAgentID,
	})
	if err != nil {
		return err
	}

	metrics.LeadsCreatedTotal.WithLabelValues(string(lead.Source)).Inc()
	return success(c, http.StatusCreated, lead, "Lead created successfully")
}

// Update handles PUT /api/leads/:id.
//
// @Summary      Update a lead
// @Description  Only admins may reassign a lead; the field is ignored for everyone else.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Lead id"
// @Param        body  body      updateLeadRequest  true  "Fields to change"
// @Success      200   {object}  Response{data=domain.Lead}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req updateLeadRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lead, err := h.leads.Update(c.Request().Context(), id, c.Param("id"), ports.UpdateLeadInput{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		Phone:                req.Phone,
		Type:                 req.Type,
		Source:               req.Source,
		Status:               req.Status,
		BudgetMin:            req.BudgetMin,
		BudgetMax:            req.BudgetMax,
		InterestedPropertyID: req.InterestedPropertyID,
		Notes:                req.Notes,
		AssignedAgentID:      req.AssignedAgentID,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, lead, "Lead updated successfully")
}

// Delete handles DELETE /api/leads/:id.
//
// @Summary      Delete a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead id"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.leads.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return success(c, http.StatusOK, nil, "Lead deleted successfully")
}

// Activities handles GET /api/leads/:id/activities.
//
// @Summary      Lead timeline
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead id"
// @Success      200  {object}  Response{data=[]domain.Activity}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/leads/{id}/activities [get]
func (h *LeadHandler) Activities(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	items, err := h.activities.ListForLead(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items, "Activities fetched successfully")
}

// AddActivity handles POST /api/leads/:id/activities.
//
// @Summary      Log an activity on a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Lead id"
// @Param        body  body      createActivityRequest  true  "Activity"
// @Success      201   {object}  Response{data=domain.Activity}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/leads/{id}/activities [post]
func (h *LeadHandler) AddActivity(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req createActivityRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	activity, err := h.activities.Create(c.Request().Context(), id, c.Param("id"), ports.CreateActivityInput{
		Type:  req.Type,
		Title: req.Title,
		Notes: req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.ActivitiesRecordedTotal.WithLabelValues(string(activity.Type)).Inc()
	return success(c, http.StatusCreated, activity, "Activity created successfully")
}
