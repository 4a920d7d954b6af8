package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
	"github.com/recrm/crm-api/internal/infrastructure/db/memory"
)

func newAuthFixture() (*AuthService, *memory.UserRepository, *memory.RevocationStore) {
	users := memory.NewUserRepository()
	revoked := memory.NewRevocationStore()
	return NewAuthService(users, revoked, NewTokenIssuer("secret", time.Hour)), users, revoked
}

var registration = ports.RegisterInput{
	Email:     "a@b.com",
	Password:  "123456",
	FirstName: "A",
	LastName:  "B",
	Phone:     "1234567890",
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), registration)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleAgent {
		t.Fatalf("expected role forced to AGENT, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected new account to be active")
	}
	if user.PasswordHash == registration.Password {
		t.Fatalf("expected password to be hashed")
	}
	if cost, _ := bcrypt.Cost([]byte(user.PasswordHash)); cost != PasswordCost {
		t.Fatalf("expected bcrypt cost %d, got %d", PasswordCost, cost)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), registration); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	if _, err := svc.Register(context.Background(), registration); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newAuthFixture()

	in := registration
	in.Password = "123"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, users, _ := newAuthFixture()
	if _, err := svc.Register(context.Background(), registration); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	res, err := svc.Login(context.Background(), "A@B.com ", "123456")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Token == "" || res.Identity.Role != domain.RoleAgent {
		t.Fatalf("unexpected login result: %+v", res)
	}

	stored, _ := users.FindByEmail(context.Background(), "a@b.com")
	if stored.LastLogin == nil {
		t.Fatalf("expected lastLogin to be stamped")
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, _ = svc.Register(context.Background(), registration)

	_, wrongPassword := svc.Login(context.Background(), "a@b.com", "wrong-pass")
	_, unknownEmail := svc.Login(context.Background(), "nobody@b.com", "123456")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
}

func TestAuthService_Login_InactiveCheckedAfterPassword(t *testing.T) {
	svc, users, _ := newAuthFixture()
	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	users.Put(&domain.User{ID: "u1", Email: "off@b.com", PasswordHash: string(hash), Role: domain.RoleAgent})

	if _, err := svc.Login(context.Background(), "off@b.com", "bad-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials before inactive check, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "off@b.com", "123456"); !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestAuthService_Login_BackendFailurePropagates(t *testing.T) {
	svc, users, _ := newAuthFixture()
	users.Err = domain.Unavailable(errors.New("connection refused"))

	if _, err := svc.Login(context.Background(), "a@b.com", "123456"); !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	svc, _, revoked := newAuthFixture()
	_, _ = svc.Register(context.Background(), registration)
	res, _ := svc.Login(context.Background(), "a@b.com", "123456")

	if err := svc.Logout(context.Background(), res.Identity); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	ok, _ := revoked.IsRevoked(context.Background(), res.Identity.TokenID)
	if !ok {
		t.Fatalf("expected token to be revoked")
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, _, _ := newAuthFixture()
	user, _ := svc.Register(context.Background(), registration)

	got, err := svc.Me(context.Background(), domain.Identity{ID: user.ID, Role: domain.RoleAgent})
	if err != nil || got.Email != "a@b.com" {
		t.Fatalf("unexpected Me result: %+v, %v", got, err)
	}
	if _, err := svc.Me(context.Background(), domain.Identity{ID: "ghost"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for missing user, got %v", err)
	}
}
