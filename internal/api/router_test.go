package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recrm/crm-api/internal/api/handler"
	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
	"github.com/recrm/crm-api/internal/core/service"
	"github.com/recrm/crm-api/internal/infrastructure/db/memory"
)

// syncRecorder persists activities inline so assertions need not wait on workers.
type syncRecorder struct {
	processor ports.ActivityProcessor
}

func (r syncRecorder) Record(a domain.Activity) {
	_ = r.processor.Process(context.Background(), a)
}

type fixture struct {
	e           *echo.Echo
	tokens      *service.TokenIssuer
	users       *memory.UserRepository
	leads       *memory.LeadRepository
	commissions *memory.CommissionRepository
	revoked     *memory.RevocationStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := memory.NewUserRepository()
	leads := memory.NewLeadRepository()
	properties := memory.NewPropertyRepository()
	visits := memory.NewVisitRepository()
	commissions := memory.NewCommissionRepository()
	revoked := memory.NewRevocationStore()
	tokens := service.NewTokenIssuer("test-secret", time.Hour)
	log := zerolog.Nop()

	activities := service.NewActivityService(memory.NewActivityRepository(), leads)
	recorder := syncRecorder{processor: activities}
	transitions := domain.TransitionPolicy{Mode: domain.TransitionsPermissive}

	e, err := NewRouter(Services{
		Tokens:      tokens,
		Identities:  tokens,
		Revocations: revoked,
		Auth:        service.NewAuthService(users, revoked, tokens),
		Leads:       service.NewLeadService(leads, recorder, transitions, log),
		Properties:  service.NewPropertyService(properties, transitions, log),
		Visits:      service.NewVisitService(visits, leads, properties, users, recorder, transitions, log),
		Commissions: service.NewCommissionService(commissions, properties, users, log),
		Activities:  activities,
		Analytics: service.NewAnalyticsService(&memory.AnalyticsRepository{
			Leads:       leads,
			Properties:  properties,
			Visits:      visits,
			Commissions: commissions,
		}, users),
	}, Options{
		Logger:   log,
		Cookie:   handler.CookieSettings{Name: "auth-token", MaxAge: time.Hour},
		Registry: prometheus.NewRegistry(),
	})
	require.NoError(t, err)

	return &fixture{e: e, tokens: tokens, users: users, leads: leads, commissions: commissions, revoked: revoked}
}

// tokenFor seeds an active user with role and returns a bearer token for it.
func (f *fixture) tokenFor(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	user := &domain.User{
		ID:        userID,
		Email:     userID + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	f.users.Put(user)
	token, _, err := f.tokens.Issue(user)
	require.NoError(t, err)
	return token
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	StatusCode int             `json:"statusCode"`
	Pagination *struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

func (f *fixture) do(t *testing.T, method, target, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

const validLead = `{"firstName":"Maria","lastName":"Lopez","phone":"5551234567","source":"WEBSITE"}`

func TestRouter_Health(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnauthenticatedEnvelope(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodGet, "/api/leads", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Unauthorized", env.Error)
	assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
}

func TestRouter_RegisterLoginMe(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/auth/register", "",
		`{"email":"Agent@Example.com","password":"secret1","firstName":"Ana","lastName":"Ruiz","phone":"5550001111","role":"ADMIN"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "User registered successfully", env.Message)

	var user map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "AGENT", user["role"])
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	rec, env = f.do(t, http.MethodPost, "/api/auth/register", "",
		`{"email":"agent@example.com","password":"secret1","firstName":"Ana","lastName":"Ruiz","phone":"5550001111"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User with this email already exists", env.Error)

	rec, env = f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"agent@example.com","password":"wrong1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", env.Error)

	rec, _ = f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"agent@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth-token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	meRec := httptest.NewRecorder()
	f.e.ServeHTTP(meRec, req)
	assert.Equal(t, http.StatusOK, meRec.Code)
	assert.Contains(t, meRec.Body.String(), `"email":"agent@example.com"`)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	token := f.tokenFor(t, "agent-1", domain.RoleAgent)

	rec, _ := f.do(t, http.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := f.do(t, http.MethodPost, "/api/auth/logout", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout successful", env.Message)

	rec, env = f.do(t, http.MethodGet, "/api/auth/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", env.Error)
}

func TestRouter_LeadLifecycle(t *testing.T) {
	f := newFixture(t)
	token := f.tokenFor(t, "agent-1", domain.RoleAgent)

	rec, env := f.do(t, http.MethodPost, "/api/leads", token, validLead)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Lead created successfully", env.Message)

	var lead domain.Lead
	require.NoError(t, json.Unmarshal(env.Data, &lead))
	assert.Equal(t, "agent-1", lead.AssignedAgentID)
	assert.Equal(t, domain.LeadNew, lead.Status)

	rec, env = f.do(t, http.MethodPut, "/api/leads/"+lead.ID, token, `{"status":"CONTACTED"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Lead updated successfully", env.Message)

	rec, env = f.do(t, http.MethodGet, "/api/leads/"+lead.ID+"/activities", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var timeline []domain.Activity
	require.NoError(t, json.Unmarshal(env.Data, &timeline))
	assert.Len(t, timeline, 2)

	rec, _ = f.do(t, http.MethodPost, "/api/leads/"+lead.ID+"/activities", token, `{"type":"CALL","title":"Intro call"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	other := f.tokenFor(t, "agent-2", domain.RoleAgent)
	rec, env = f.do(t, http.MethodGet, "/api/leads/"+lead.ID, other, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, env.Success)

	rec, env = f.do(t, http.MethodDelete, "/api/leads/"+lead.ID, token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Lead deleted successfully", env.Message)

	rec, env = f.do(t, http.MethodGet, "/api/leads/"+lead.ID, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Lead not found", env.Error)
}

func TestRouter_FirstValidationMessage(t *testing.T) {
	f := newFixture(t)
	token := f.tokenFor(t, "agent-1", domain.RoleAgent)

	rec, env := f.do(t, http.MethodPost, "/api/leads", token, `{"firstName":"M","lastName":"L","phone":"1","source":"WEBSITE"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "First name required", env.Error)
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
}

func TestRouter_Pagination(t *testing.T) {
	f := newFixture(t)
	token := f.tokenFor(t, "agent-1", domain.RoleAgent)

	for range 3 {
		rec, _ := f.do(t, http.MethodPost, "/api/leads", token, validLead)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := f.do(t, http.MethodGet, "/api/leads?page=2&limit=2", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 3, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 2, env.Pagination.Limit)
	assert.Equal(t, 2, env.Pagination.Pages)

	var page []domain.Lead
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 1)
}

func TestRouter_AnalyticsAdminOnly(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodGet, "/api/analytics/dashboard", f.tokenFor(t, "agent-1", domain.RoleAgent), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only admins can access analytics", env.Error)

	rec, env = f.do(t, http.MethodGet, "/api/analytics/dashboard", f.tokenFor(t, "admin-1", domain.RoleAdmin), "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Analytics retrieved successfully", env.Message)
}

func TestRouter_BackendUnavailable(t *testing.T) {
	f := newFixture(t)
	token := f.tokenFor(t, "agent-1", domain.RoleAgent)
	f.leads.Err = domain.Unavailable(errors.New("connection refused"))

	rec, env := f.do(t, http.MethodGet, "/api/leads", token, "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database connection unavailable", env.Error)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRouter_RevocationStoreDown(t *testing.T) {
	f := newFixture(t)
	token := f.tokenFor(t, "agent-1", domain.RoleAgent)
	f.revoked.Err = domain.Unavailable(errors.New("redis down"))

	rec, env := f.do(t, http.MethodGet, "/api/leads", token, "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database connection unavailable", env.Error)
}

func TestRouter_PageRedirects(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/admin/users", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get(echo.HeaderLocation))

	rec, _ = f.do(t, http.MethodGet, "/admin/users", f.tokenFor(t, "agent-1", domain.RoleAgent), "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodGet, "/api/nope", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Not Found", env.Error)
}

func TestRouter_LogoutWhileRevocationStoreDown(t *testing.T) {
	f := newFixture(t)
	token := f.tokenFor(t, "agent-1", domain.RoleAgent)
	f.revoked.Err = domain.Unavailable(errors.New("redis down"))

	rec, env := f.do(t, http.MethodPost, "/api/auth/logout", token, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database connection unavailable", env.Error)

	f.revoked.Err = nil
	rec, _ = f.do(t, http.MethodPost, "/api/auth/logout", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/leads", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_HugePageIsEmpty(t *testing.T) {
	f := newFixture(t)
	token := f.tokenFor(t, "agent-1", domain.RoleAgent)
	rec, _ := f.do(t, http.MethodPost, "/api/leads", token, validLead)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := f.do(t, http.MethodGet, "/api/leads?page=9223372036854775807&limit=100", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 1, env.Pagination.Total)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestRouter_UnauthenticatedWritesPersistNothing(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/leads", "", validLead)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", env.Error)

	rec, _ = f.do(t, http.MethodPost, "/api/commissions", "", `{"agentId":"agent-1","propertyId":"prop-1","percentage":2}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	leads, total, err := f.leads.List(context.Background(), ports.LeadFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, leads)

	commissions, total, err := f.commissions.List(context.Background(), ports.CommissionFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, commissions)
}
