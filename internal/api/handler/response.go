package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/core/ports"
)

// Response is the success envelope returned by every endpoint.
type Response struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
	StatusCode int         `json:"statusCode"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// ErrorResponse is the error envelope. It is rendered by the central
// HTTPErrorHandler only; handlers return errors instead.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

func success(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, Response{
		Success:    true,
		Data:       data,
		Message:    message,
		StatusCode: status,
	})
}

func paginated[T any](c echo.Context, result *ports.PageResult[T], message string) error {
	items := result.Items
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    items,
		Pagination: &Pagination{
			Total: result.Total,
			Page:  result.Page,
			Limit: result.Limit,
			Pages: result.Pages(),
		},
		Message:    message,
		StatusCode: http.StatusOK,
	})
}
