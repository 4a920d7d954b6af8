package handler

import "github.com/recrm/crm-api/internal/core/domain"

// CredentialIssuer signs a session token for an already trusted user.
type CredentialIssuer interface {
	Issue(user *domain.User) (string, domain.Identity, error)
}
