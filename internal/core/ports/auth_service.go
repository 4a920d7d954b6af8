package ports

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
)

// RegisterInput carries a self-registration request. The role is never
// client-controlled.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// LoginResult is returned on successful password verification.
type LoginResult struct {
	Token    string
	Identity domain.Identity
	User     *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, id domain.Identity) error
	Me(ctx context.Context, id domain.Identity) (*domain.User, error)
}

// IdentityParser verifies a raw credential and resolves it to an identity.
type IdentityParser interface {
	Parse(token string) (*domain.Identity, error)
}
