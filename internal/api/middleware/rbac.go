package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/api/metrics"
	"github.com/recrm/crm-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !id.HasRole(allowedRoles...) {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden_role").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
