//go:build devauth

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recrm/crm-api/internal/core/domain"
)

// BackdoorEnabled reports whether this binary was built with the devauth tag.
const BackdoorEnabled = true

// Fixed users for local testing. They never touch the database.
var backdoorUsers = map[domain.Role]*domain.User{
	domain.RoleAdmin: {
		ID:        "admin-user-1",
		Email:     "admin@recrm.com",
		Role:      domain.RoleAdmin,
		FirstName: "Admin",
		LastName:  "User",
		IsActive:  true,
	},
	domain.RoleAgent: {
		ID:        "agent-user-1",
		Email:     "agent1@recrm.com",
		Role:      domain.RoleAgent,
		FirstName: "John",
		LastName:  "Agent",
		IsActive:  true,
	},
	domain.RoleClient: {
		ID:        "client-user-1",
		Email:     "client@recrm.com",
		Role:      domain.RoleClient,
		FirstName: "Jane",
		LastName:  "Client",
		IsActive:  true,
	},
}

type backdoorRequest struct {
	Role domain.Role `json:"role"`
}

type backdoorHandler struct {
	auth *AuthHandler
	iss  CredentialIssuer
}

// RegisterBackdoor mounts POST /backdoor on the auth group. Only compiled
// with -tags devauth.
func RegisterBackdoor(g *echo.Group, iss CredentialIssuer, cookie CookieSettings) {
	h := &backdoorHandler{auth: &AuthHandler{cookie: cookie}, iss: iss}
	g.POST("/backdoor", h.Login)
}

func (h *backdoorHandler) Login(c echo.Context) error {
	req := backdoorRequest{Role: domain.RoleAdmin}
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid payload")
	}
	user, ok := backdoorUsers[req.Role]
	if !ok {
		return domain.Invalid("Invalid role. Must be ADMIN, AGENT, or CLIENT")
	}

	token, id, err := h.iss.Issue(user)
	if err != nil {
		return err
	}

	h.auth.setCookie(c, token, id.ExpiresAt)
	return success(c, http.StatusOK, loginResponse{User: user, Token: token}, "Backdoor login successful")
}
