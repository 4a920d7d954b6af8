package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// PasswordCost is the bcrypt work factor for stored credentials.
const PasswordCost = 10

const minPasswordLength = 6

// AuthService implements registration, login, logout and identity lookup.
type AuthService struct {
	users   ports.UserRepository
	revoked ports.TokenRevocationStore
	tokens  *TokenIssuer
	now     func() time.Time
}

func NewAuthService(users ports.UserRepository, revoked ports.TokenRevocationStore, tokens *TokenIssuer) *AuthService {
	return &AuthService{users: users, revoked: revoked, tokens: tokens, now: time.Now}
}

// Register creates an AGENT account. The role is never taken from the caller.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	switch {
	case email == "":
		return nil, domain.Invalid("email is required")
	case len(in.Password) < minPasswordLength:
		return nil, domain.Invalid("password must be at least %d characters", minPasswordLength)
	case strings.TrimSpace(in.FirstName) == "":
		return nil, domain.Invalid("firstName is required")
	case strings.TrimSpace(in.LastName) == "":
		return nil, domain.Invalid("lastName is required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         domain.RoleAgent,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index still catches a concurrent registration of the same email.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	token, identity, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, identity.IssuedAt); err != nil {
		return nil, err
	}
	loggedIn := identity.IssuedAt
	user.LastLogin = &loggedIn

	return &ports.LoginResult{Token: token, Identity: identity, User: user}, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, id domain.Identity) error {
	if id.TokenID == "" || s.revoked == nil {
		return nil
	}
	expiresAt := id.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(s.tokens.TTL())
	}
	return s.revoked.Revoke(ctx, id.TokenID, expiresAt)
}

// Me loads the account behind id. A deleted account reads as unauthenticated.
func (s *AuthService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
