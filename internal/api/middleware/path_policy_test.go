package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recrm/crm-api/internal/core/domain"
)

func newPathPolicy(t *testing.T) (*PathPolicy, *Authenticator, func(domain.Role) string) {
	t.Helper()
	auth, tokens, _ := newAuthenticator()
	policy, err := NewPathPolicy(auth, DefaultPathRules())
	require.NoError(t, err)

	token := func(role domain.Role) string {
		raw, _ := issue(t, tokens, role)
		return raw
	}
	return policy, auth, token
}

func TestPathPolicy_Allowed(t *testing.T) {
	policy, _, _ := newPathPolicy(t)

	cases := []struct {
		role domain.Role
		path string
		want bool
	}{
		{domain.RoleAdmin, "/api/admin/users", true},
		{domain.RoleAgent, "/api/admin/users", false},
		{domain.RoleAgent, "/api/admin", false},
		{domain.RoleAgent, "/api/agent/leads", true},
		{domain.RoleClient, "/api/agent/leads", false},
		{domain.RoleAdmin, "/api/agent/leads", true},
		{domain.RoleAgent, "/api/analytics/dashboard", false},
		{domain.RoleAdmin, "/api/analytics/dashboard", true},
		{domain.RoleClient, "/admin/settings", false},
		{domain.RoleClient, "/api/leads", true},
		{domain.RoleClient, "/administrator", true},
	}
	for _, tc := range cases {
		got, err := policy.Allowed(tc.role, tc.path)
		require.NoError(t, err)
		assert.Equalf(t, tc.want, got, "%s on %s", tc.role, tc.path)
	}
}

func TestPathPolicy_APIForbidden(t *testing.T) {
	policy, _, token := newPathPolicy(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token(domain.RoleAgent))

	_, _, called, err := run(policy.Middleware(), req)
	assert.False(t, called)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPathPolicy_APIUnauthenticated(t *testing.T) {
	policy, _, _ := newPathPolicy(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)

	_, _, called, err := run(policy.Middleware(), req)
	assert.False(t, called)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestPathPolicy_PageRedirects(t *testing.T) {
	policy, _, token := newPathPolicy(t)

	cases := []struct {
		name     string
		path     string
		role     domain.Role
		location string
	}{
		{"anonymous admin page", "/admin/users", "", LoginPath},
		{"agent on admin page", "/admin/users", domain.RoleAgent, "/dashboard"},
		{"client on agent page", "/agent/leads", domain.RoleClient, "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.role != "" {
				req.AddCookie(&http.Cookie{Name: testCookie, Value: token(tc.role)})
			}

			_, rec, called, err := run(policy.Middleware(), req)
			require.NoError(t, err)
			assert.False(t, called)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestPathPolicy_UnprotectedAndAllowed(t *testing.T) {
	policy, _, token := newPathPolicy(t)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	_, _, called, err := run(policy.Middleware(), req)
	require.NoError(t, err)
	assert.True(t, called, "unprotected path must not require a credential")

	req = httptest.NewRequest(http.MethodGet, "/agent/leads", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token(domain.RoleAgent)})
	c, _, called, err := run(policy.Middleware(), req)
	require.NoError(t, err)
	assert.True(t, called)

	id, ok := IdentityFrom(c)
	require.True(t, ok)
	assert.Equal(t, domain.RoleAgent, id.Role)
}
