package service

import (
	"context"
	"errors"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// authorizeOwner allows admins and the owner of a row.
func authorizeOwner(id domain.Identity, ownerID string) error {
	if id.CanAccess(ownerID) {
		return nil
	}
	return domain.ErrForbidden
}

// requireAdmin guards operations reserved to ADMIN regardless of ownership.
func requireAdmin(id domain.Identity, reason string) error {
	if id.IsAdmin() {
		return nil
	}
	if reason == "" {
		return domain.ErrForbidden
	}
	return domain.Forbidden(reason)
}

// requireAgent checks that an agent id picked by an admin names a stored user.
// The caller's own id is trusted.
func requireAgent(ctx context.Context, users ports.UserRepository, id domain.Identity, agentID string) error {
	if agentID == id.ID {
		return nil
	}
	if _, err := users.FindByID(ctx, agentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrAgentNotFound
		}
		return err
	}
	return nil
}

// scopedOwner picks the owner filter for a list call. Admins may narrow by
// requested, everyone else is pinned to themselves.
func scopedOwner(id domain.Identity, requested string) string {
	if id.IsAdmin() {
		return requested
	}
	return id.ID
}
