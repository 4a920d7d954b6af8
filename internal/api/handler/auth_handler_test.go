package handler

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

	"github.com/recrm/crm-api/internal/api/middleware"
	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, id domain.Identity) error
	meFn       func(ctx context.Context, id domain.Identity) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, id domain.Identity) error {
	return s.logoutFn(ctx, id)
}

func (s *stubAuthService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.meFn(ctx, id)
}

var testCookie = CookieSettings{Name: "auth-token", MaxAge: 24 * time.Hour}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "alice@example.com" || in.FirstName != "Alice" || in.Phone != "9876543210" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{
				ID:           "u1",
				Email:        in.Email,
				FirstName:    in.FirstName,
				LastName:     in.LastName,
				Role:         domain.RoleAgent,
				PasswordHash: "$2a$10$secret",
			}, nil
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	req := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"secret1","firstName":"Alice","lastName":"Smith","phone":"9876543210","role":"ADMIN"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["success"] != true || resp["statusCode"] != float64(http.StatusCreated) {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	user, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in data")
	}
	if user["role"] != "AGENT" {
		t.Fatalf("expected AGENT role, got %v", user["role"])
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Fatalf("password material leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_FirstValidationMessage(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	req := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"123","firstName":"A","lastName":"Smith","phone":"1"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	err := handler.Register(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Message != "Password must be at least 6 characters" {
		t.Fatalf("unexpected message: %q", ve.Message)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	req := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"bob@example.com","password":"secret1","firstName":"Bob","lastName":"Jones","phone":"9876543210"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, testCookie)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register", "not-json"), httptest.NewRecorder())

	if err := handler.Register(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	e := newEcho()
	expires := time.Now().Add(24 * time.Hour)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token:    "token123",
				Identity: domain.Identity{ID: "u1", Role: domain.RoleAgent, ExpiresAt: expires},
				User:     &domain.User{ID: "u1", Email: email, Role: domain.RoleAgent},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret1"}`), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data, _ := decode(t, rec)["data"].(map[string]any)
	if data["token"] != "token123" {
		t.Fatalf("expected token, got %v", data["token"])
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Name != "auth-token" || cookies[0].Value != "token123" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookies[0])
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, testCookie)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com"}`), httptest.NewRecorder())

	err := handler.Login(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Message != "Email and password are required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"bad"}`), rec)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie expected on failure")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	var revoked string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, id domain.Identity) error {
			revoked = id.TokenID
			return nil
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), rec)
	middleware.SetIdentity(c, domain.Identity{ID: "u1", Role: domain.RoleAgent, TokenID: "jti-1"})

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if revoked != "jti-1" {
		t.Fatalf("expected token jti-1 to be revoked, got %q", revoked)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expiring cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Logout_Anonymous(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, id domain.Identity) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		meFn: func(ctx context.Context, id domain.Identity) (*domain.User, error) {
			return &domain.User{ID: id.ID, Email: "alice@example.com", Role: id.Role}, nil
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), rec)
	middleware.SetIdentity(c, domain.Identity{ID: "u1", Role: domain.RoleAdmin})

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	data, _ := decode(t, rec)["data"].(map[string]any)
	user, _ := data["user"].(map[string]any)
	if user["id"] != "u1" || user["role"] != "ADMIN" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, testCookie)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), httptest.NewRecorder())

	if err := handler.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
