package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/core/ports"
)

// PropertyHandler serves /api/properties.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// List handles GET /api/properties.
//
// @Summary      List properties
// @Description  Non-admins only see their own listings.
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 10, max 100)"
// @Param        search  query     string  false  "Matches title, address or city"
// @Param        status  query     string  false  "Property status"
// @Param        type    query     string  false  "Property type"
// @Success      200     {object}  Response{data=[]domain.Property}
// @Failure      401     {object}  ErrorResponse
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), id, ports.PropertyFilter{
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("type"),
		Search: c.QueryParam("search"),
		Page:   pageFromQuery(c),
	})
	if err != nil {
		return err
	}
	return paginated(c, result, "Properties fetched successfully")
}

// Get handles GET /api/properties/:id.
//
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  Response{data=domain.Property}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	property, err := h.service.Get(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, property, "Property fetched successfully")
}

// Create handles POST /api/properties.
//
// @Summary      Create a property
// @Description  Agents may only list properties under their own id.
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Property"
// @Success      201   {object}  Response{data=domain.Property}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req createPropertyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	property, err := h.service.Create(c.Request().Context(), id, ports.CreatePropertyInput{
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		Status:          req.Status,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
		Country:         req.Country,
		Price:           req.Price,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		SquareFeet:      req.SquareFeet,
		FurnishedStatus: req.FurnishedStatus,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Notes:           req.Notes,
		AgentID:         req.AgentID,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, property, "Property created successfully")
}

// Update handles PUT /api/properties/:id.
//
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Property id"
// @Param        body  body      updatePropertyRequest  true  "Fields to change"
// @Success      200   {object}  Response{data=domain.Property}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req updatePropertyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	property, err := h.service.Update(c.Request().Context(), id, c.Param("id"), ports.UpdatePropertyInput{
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		Status:          req.Status,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
		Country:         req.Country,
		Price:           req.Price,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		SquareFeet:      req.SquareFeet,
		FurnishedStatus: req.FurnishedStatus,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Notes:           req.Notes,
		AgentID:         req.AgentID,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, property, "Property updated successfully")
}

// Delete handles DELETE /api/properties/:id.
//
// @Summary      Delete a property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return success(c, http.StatusOK, nil, "Property deleted successfully")
}
