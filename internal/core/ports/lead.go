package ports

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
)

// LeadFilter carries list query parameters. OwnerID is set by the service
// layer from the caller identity, never from the request.
type LeadFilter struct {
	OwnerID string // empty = no owner filter (admin)
	Status  string
	Source  string
	Search  string // case-insensitive substring of first/last name, email, phone
	Page    Page
}

type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	FindByID(ctx context.Context, id string) (*domain.Lead, error)
	Update(ctx context.Context, lead *domain.Lead) error
	Delete(ctx context.Context, id string) error
	// List returns newest first.
	List(ctx context.Context, filter LeadFilter) ([]*domain.Lead, int64, error)
}

type CreateLeadInput struct {
	FirstName            string
	LastName             string
	Email                string
	Phone                string
	Type                 domain.LeadType
	Source               domain.LeadSource
	Status               domain.LeadStatus
	BudgetMin            *float64
	BudgetMax            *float64
	InterestedPropertyID string
	Notes                string
	AssignedAgentID      string
}

// UpdateLeadInput is a partial update; nil fields are left unchanged.
type UpdateLeadInput struct {
	FirstName            *string
	LastName             *string
	Email                *string
	Phone                *string
	Type                 *domain.LeadType
	Source               *domain.LeadSource
	Status               *domain.LeadStatus
	BudgetMin            *float64
	BudgetMax            *float64
	InterestedPropertyID *string
	Notes                *string
	AssignedAgentID      *string
}

type LeadService interface {
	List(ctx context.Context, id domain.Identity, filter LeadFilter) (*PageResult[*domain.Lead], error)
	Get(ctx context.Context, id domain.Identity, leadID string) (*domain.Lead, error)
	Create(ctx context.Context, id domain.Identity, in CreateLeadInput) (*domain.Lead, error)
	Update(ctx context.Context, id domain.Identity, leadID string, in UpdateLeadInput) (*domain.Lead, error)
	Delete(ctx context.Context, id domain.Identity, leadID string) error
}
