package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/api/middleware"
	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// identity returns the caller resolved by the Auth middleware. A route that
// reaches a handler without one is misconfigured; answer 401 rather than
// guessing.
func identity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

// pageFromQuery reads page and limit; junk values fall back to the defaults
// and the limit is capped.
func pageFromQuery(c echo.Context) ports.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.Page{Page: page, Limit: limit}.Normalize()
}
