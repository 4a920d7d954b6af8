package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/api/metrics"
	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// Authenticator resolves the credential of a request into a domain.Identity.
// The session cookie wins over the Authorization header.
type Authenticator struct {
	parser     ports.IdentityParser
	revoked    ports.TokenRevocationStore
	cookieName string
}

func NewAuthenticator(parser ports.IdentityParser, revoked ports.TokenRevocationStore, cookieName string) *Authenticator {
	return &Authenticator{parser: parser, revoked: revoked, cookieName: cookieName}
}

// Authenticate returns the caller of c. A context that already carries an
// identity is returned as is, so stacking guards never parses twice.
func (a *Authenticator) Authenticate(c echo.Context) (domain.Identity, error) {
	if id, ok := IdentityFrom(c); ok {
		return id, nil
	}

	raw := a.credential(c.Request())
	if raw == "" {
		metrics.AuthRejectionsTotal.WithLabelValues("missing").Inc()
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	id, err := a.parser.Parse(raw)
	if err != nil {
		metrics.AuthRejectionsTotal.WithLabelValues("invalid").Inc()
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	if a.revoked != nil && id.TokenID != "" {
		revoked, err := a.revoked.IsRevoked(c.Request().Context(), id.TokenID)
		if err != nil {
			return domain.Identity{}, err
		}
		if revoked {
			metrics.AuthRejectionsTotal.WithLabelValues("revoked").Inc()
			return domain.Identity{}, domain.ErrUnauthenticated
		}
	}

	SetIdentity(c, *id)
	return *id, nil
}

func (a *Authenticator) credential(r *http.Request) string {
	if a.cookieName != "" {
		if ck, err := r.Cookie(a.cookieName); err == nil && ck.Value != "" {
			return ck.Value
		}
	}

	parts := strings.SplitN(r.Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth rejects requests without a valid, unrevoked credential. Failures are
// returned to the central error handler, which renders the 401 envelope.
func (a *Authenticator) Auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := a.Authenticate(c); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// Resolve attaches the identity when a usable credential is present and lets
// anonymous requests through untouched. A revocation store outage is still an
// error: the caller may be holding a live token.
func (a *Authenticator) Resolve() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := a.Authenticate(c); err != nil && !errors.Is(err, domain.ErrUnauthenticated) {
				return err
			}
			return next(c)
		}
	}
}
