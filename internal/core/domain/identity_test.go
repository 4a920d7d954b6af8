package domain

import (
	"errors"
	"testing"
)

func TestIdentity_CanAccess(t *testing.T) {
	admin := Identity{ID: "a1", Role: RoleAdmin}
	agent := Identity{ID: "g1", Role: RoleAgent}

	if !admin.CanAccess("someone-else") {
		t.Fatalf("admin should access any row")
	}
	if !agent.CanAccess("g1") {
		t.Fatalf("agent should access own row")
	}
	if agent.CanAccess("g2") {
		t.Fatalf("agent should not access foreign row")
	}
	if agent.CanAccess("") {
		t.Fatalf("agent should not access unassigned row")
	}
	if admin.OwnerScope() != "" || agent.OwnerScope() != "g1" {
		t.Fatalf("unexpected owner scopes")
	}
}

func TestCalculateCommission(t *testing.T) {
	if got := CalculateCommission(5_000_000, 2); got != 100_000 {
		t.Fatalf("expected 100000, got %v", got)
	}
	if got := CalculateCommission(250_000, 2.5); got != 6_250 {
		t.Fatalf("expected 6250, got %v", got)
	}
}

func TestErrors_Matching(t *testing.T) {
	if !errors.Is(ErrLeadNotFound, ErrNotFound) {
		t.Fatalf("lead not found should match ErrNotFound")
	}
	if ErrLeadNotFound.Error() != "Lead not found" {
		t.Fatalf("unexpected message %q", ErrLeadNotFound.Error())
	}
	if !errors.Is(Forbidden("nope"), ErrForbidden) {
		t.Fatalf("Forbidden should match ErrForbidden")
	}
	if !errors.Is(Invalid("bad %s", "x"), ErrValidation) {
		t.Fatalf("Invalid should match ErrValidation")
	}
	if !errors.Is(Unavailable(errors.New("dial tcp")), ErrBackendUnavailable) {
		t.Fatalf("Unavailable should match ErrBackendUnavailable")
	}
}
