package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/api/metrics"
	"github.com/recrm/crm-api/internal/api/middleware"
	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// CookieSettings describes the HttpOnly session cookie that carries the token.
type CookieSettings struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieSettings
}

func NewAuthHandler(authService ports.AuthService, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

type registerRequest struct {
	Email     string `json:"email"     validate:"required,email" msg:"Invalid email address"`
	Password  string `json:"password"  validate:"min=6"          msg:"Password must be at least 6 characters"`
	FirstName string `json:"firstName" validate:"min=2"          msg:"First name required"`
	LastName  string `json:"lastName"  validate:"min=2"          msg:"Last name required"`
	Phone     string `json:"phone"     validate:"min=10"         msg:"Valid phone number required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required" msg:"Email and password are required"`
	Password string `json:"password" validate:"required" msg:"Email and password are required"`
}

type loginResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type meResponse struct {
	User *domain.User `json:"user"`
}

// Register creates a new agent account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  Response{data=domain.PublicUser}
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	return success(c, http.StatusCreated, user.Public(), "User registered successfully")
}

// Login verifies credentials, sets the session cookie and returns the token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  Response{data=loginResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	h.setCookie(c, result.Token, result.Identity.ExpiresAt)
	return success(c, http.StatusOK, loginResponse{User: result.User, Token: result.Token}, "Login successful")
}

// Logout revokes the presented token, if any, and clears the cookie. It
// succeeds for anonymous callers too.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Response
// @Failure      503  {object}  ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if id, ok := middleware.IdentityFrom(c); ok {
		if err := h.authService.Logout(c.Request().Context(), id); err != nil {
			return err
		}
	}

	h.clearCookie(c)
	return success(c, http.StatusOK, nil, "Logout successful")
}

// Me returns the signed-in user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=meResponse}
// @Failure      401  {object}  ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, meResponse{User: user}, "User retrieved successfully")
}

func (h *AuthHandler) setCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return "inactive"
	default:
		return "error"
	}
}
