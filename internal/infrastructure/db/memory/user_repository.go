package memory

import (
	"context"
	"strings"
	"time"

	"github.com/recrm/crm-api/internal/core/domain"
)

type UserRepository struct {
	*table[*domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{table: newTable[*domain.User]()}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, u := range r.rows {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrUserExists
		}
	}
	r.rows[user.ID] = clone(user)
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.rows {
		if strings.EqualFold(u.Email, email) {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	at = at.UTC()
	u.LastLogin = &at
	u.UpdatedAt = at
	return nil
}

func (r *UserRepository) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*domain.User
	for _, u := range r.rows {
		if u.Role == role {
			out = append(out, clone(u))
		}
	}
	return out, nil
}

// Put stores user as-is, bypassing the duplicate check. Test fixture helper.
func (r *UserRepository) Put(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[user.ID] = clone(user)
}
