package ports

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
)

type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	// ListByLead returns the newest entries first.
	ListByLead(ctx context.Context, leadID string) ([]*domain.Activity, error)
}

// ActivityRecorder accepts timeline entries for asynchronous persistence.
// Record must not block the request path.
type ActivityRecorder interface {
	Record(a domain.Activity)
}

// ActivityProcessor persists a single timeline entry. The dispatcher workers
// call it off the request path.
type ActivityProcessor interface {
	Process(ctx context.Context, a domain.Activity) error
}

type CreateActivityInput struct {
	Type  domain.ActivityType
	Title string
	Notes string
}

type ActivityService interface {
	ActivityProcessor
	ListForLead(ctx context.Context, id domain.Identity, leadID string) ([]*domain.Activity, error)
	Create(ctx context.Context, id domain.Identity, leadID string, in CreateActivityInput) (*domain.Activity, error)
}
