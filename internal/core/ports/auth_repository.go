package ports

import (
	"context"
	"time"

	"github.com/recrm/crm-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts user and returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

// TokenRevocationStore remembers logged-out credentials until they expire.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
