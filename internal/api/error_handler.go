package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recrm/crm-api/internal/api/handler"
	"github.com/recrm/crm-api/internal/api/metrics"
	"github.com/recrm/crm-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the error envelope: {"success": false, "error": "<message>", "statusCode": <code>}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handler.ErrorResponse{Success: false, Error: msg, StatusCode: code})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	if code, msg, ok := statusFor(err); ok {
		if code == http.StatusServiceUnavailable {
			metrics.BackendUnavailableTotal.Inc()
			log.Warn().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("backend unavailable")
		}
		return code, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}

// statusFor maps the error taxonomy onto HTTP. ok is false for anything the
// taxonomy does not name.
func statusFor(err error) (code int, msg string, ok bool) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}

	var (
		forbidden *domain.ForbiddenError
		invalid   *domain.ValidationError
	)
	switch {
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusServiceUnavailable, "Database connection unavailable", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password", true
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusUnauthorized, "User account is inactive", true
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthorized", true
	case errors.As(err, &forbidden) && forbidden.Reason != "":
		return http.StatusForbidden, forbidden.Reason, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden", true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error(), true
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Message, true
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error(), true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User with this email already exists", true
	}
	return 0, "", false
}

// statusCode is the status the error handler will send for err. The metrics
// middleware uses it to label failed requests.
func statusCode(c echo.Context, err error) int {
	if c.Response().Committed {
		return c.Response().Status
	}
	if code, _, ok := statusFor(err); ok {
		return code
	}
	return http.StatusInternalServerError
}
