package domain

import "time"

// Identity is the authenticated caller resolved from a credential. It is built
// once per request by the auth guard and handed explicitly to every service call.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	TokenID   string    `json:"-"`
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// IsAdmin reports whether the identity bypasses ownership filters.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// HasRole reports whether the identity holds one of roles.
func (i Identity) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// CanAccess is the row-level ownership rule: admins see everything, everyone
// else only rows they own or are assigned to.
func (i Identity) CanAccess(ownerID string) bool {
	if i.IsAdmin() {
		return true
	}
	return ownerID != "" && ownerID == i.ID
}

// OwnerScope returns the owner id list queries must be restricted to, or ""
// when the caller may see every row.
func (i Identity) OwnerScope() string {
	if i.IsAdmin() {
		return ""
	}
	return i.ID
}
