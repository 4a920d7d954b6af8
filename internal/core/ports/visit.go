package ports

import (
	"context"
	"time"

	"github.com/recrm/crm-api/internal/core/domain"
)

type VisitFilter struct {
	OwnerID string
	Status  string
	Page    Page
}

type VisitRepository interface {
	Create(ctx context.Context, v *domain.Visit) error
	FindByID(ctx context.Context, id string) (*domain.Visit, error)
	Update(ctx context.Context, v *domain.Visit) error
	Delete(ctx context.Context, id string) error
	// List returns the latest scheduledAt first.
	List(ctx context.Context, filter VisitFilter) ([]*domain.Visit, int64, error)
}

type CreateVisitInput struct {
	LeadID          string
	PropertyID      string
	AssignedAgentID string
	ScheduledAt     time.Time
	Notes           string
}

type UpdateVisitStatusInput struct {
	Status   domain.VisitStatus
	Feedback *string
	Rating   *int
}

type ListVisitsInput struct {
	Status  string
	AgentID string // honored for admins only
	Page    Page
}

type VisitService interface {
	List(ctx context.Context, id domain.Identity, in ListVisitsInput) (*PageResult[*domain.Visit], error)
	Get(ctx context.Context, id domain.Identity, visitID string) (*domain.Visit, error)
	Create(ctx context.Context, id domain.Identity, in CreateVisitInput) (*domain.Visit, error)
	UpdateStatus(ctx context.Context, id domain.Identity, visitID string, in UpdateVisitStatusInput) (*domain.Visit, error)
	Delete(ctx context.Context, id domain.Identity, visitID string) error
}
