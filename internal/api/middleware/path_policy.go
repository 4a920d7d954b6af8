package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/util"
	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/api/metrics"
	"github.com/recrm/crm-api/internal/core/domain"
)

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/auth/login"

const pathModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj)
`

// PathRule grants the listed roles access to every path under Pattern.
// Redirect is used for page paths when a signed-in caller lacks the role;
// API paths get a 403 envelope carrying Reason instead.
type PathRule struct {
	Pattern  string
	Roles    []domain.Role
	Redirect string
	Reason   string
}

// DefaultPathRules are the prefix rules of the CRM.
func DefaultPathRules() []PathRule {
	staff := []domain.Role{domain.RoleAdmin, domain.RoleAgent}
	admin := []domain.Role{domain.RoleAdmin}

	return []PathRule{
		{Pattern: "/api/admin/*", Roles: admin},
		{Pattern: "/api/agent/*", Roles: staff},
		{Pattern: "/api/analytics/*", Roles: admin, Reason: "Only admins can access analytics"},
		{Pattern: "/admin/*", Roles: admin, Redirect: "/dashboard"},
		{Pattern: "/agent/*", Roles: staff, Redirect: "/"},
	}
}

// PathPolicy is a casbin-backed prefix guard applied before route handlers.
// Paths no rule covers pass through untouched.
type PathPolicy struct {
	enforcer *casbin.Enforcer
	rules    []PathRule
	auth     *Authenticator
}

func NewPathPolicy(auth *Authenticator, rules []PathRule) (*PathPolicy, error) {
	m, err := model.NewModelFromString(pathModel)
	if err != nil {
		return nil, fmt.Errorf("path policy model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("path policy enforcer: %w", err)
	}

	var policies [][]string
	for _, rule := range rules {
		for _, role := range rule.Roles {
			policies = append(policies, []string{role.String(), rule.Pattern})
			if base, ok := strings.CutSuffix(rule.Pattern, "/*"); ok {
				policies = append(policies, []string{role.String(), base})
			}
		}
	}
	if len(policies) > 0 {
		if _, err := enforcer.AddPolicies(policies); err != nil {
			return nil, fmt.Errorf("path policy rules: %w", err)
		}
	}

	return &PathPolicy{enforcer: enforcer, rules: rules, auth: auth}, nil
}

// Allowed reports whether role may reach path. Unprotected paths are allowed.
func (p *PathPolicy) Allowed(role domain.Role, path string) (bool, error) {
	if _, ok := p.match(path); !ok {
		return true, nil
	}
	return p.enforcer.Enforce(role.String(), path)
}

func (p *PathPolicy) match(path string) (PathRule, bool) {
	for _, rule := range p.rules {
		if util.KeyMatch2(path, rule.Pattern) {
			return rule, true
		}
		if base, ok := strings.CutSuffix(rule.Pattern, "/*"); ok && path == base {
			return rule, true
		}
	}
	return PathRule{}, false
}

// Middleware guards protected prefixes. API callers get the error envelope,
// page callers a 302.
func (p *PathPolicy) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			rule, ok := p.match(path)
			if !ok {
				return next(c)
			}
			api := isAPIPath(path)

			id, err := p.auth.Authenticate(c)
			if err != nil {
				if api || errors.Is(err, domain.ErrBackendUnavailable) {
					return err
				}
				return c.Redirect(http.StatusFound, LoginPath)
			}

			allowed, err := p.enforcer.Enforce(id.Role.String(), path)
			if err != nil {
				return err
			}
			if !allowed {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden_path").Inc()
				if api {
					if rule.Reason != "" {
						return domain.Forbidden(rule.Reason)
					}
					return domain.ErrForbidden
				}
				return c.Redirect(http.StatusFound, rule.Redirect)
			}
			return next(c)
		}
	}
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
