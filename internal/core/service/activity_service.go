package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// ActivityService owns the lead timeline. Automatic entries arrive through
// Process from the dispatcher; manual entries go through Create.
type ActivityService struct {
	activities ports.ActivityRepository
	leads      ports.LeadRepository
	now        func() time.Time
}

func NewActivityService(activities ports.ActivityRepository, leads ports.LeadRepository) *ActivityService {
	return &ActivityService{activities: activities, leads: leads, now: time.Now}
}

// Process persists one recorded activity.
func (s *ActivityService) Process(ctx context.Context, a domain.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}
	return s.activities.Insert(ctx, &a)
}

func (s *ActivityService) ListForLead(ctx context.Context, id domain.Identity, leadID string) ([]*domain.Activity, error) {
	if err := s.authorizeLead(ctx, id, leadID); err != nil {
		return nil, err
	}
	return s.activities.ListByLead(ctx, leadID)
}

// Create adds a manual entry (call, meeting, note...) to a lead the caller can access.
func (s *ActivityService) Create(ctx context.Context, id domain.Identity, leadID string, in ports.CreateActivityInput) (*domain.Activity, error) {
	if len(strings.TrimSpace(in.Title)) < 3 {
		return nil, domain.Invalid("Title required")
	}
	if err := s.authorizeLead(ctx, id, leadID); err != nil {
		return nil, err
	}

	a := &domain.Activity{
		ID:          uuid.NewString(),
		LeadID:      leadID,
		Type:        in.Type,
		Title:       strings.TrimSpace(in.Title),
		Notes:       in.Notes,
		PerformedBy: id.ID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.activities.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ActivityService) authorizeLead(ctx context.Context, id domain.Identity, leadID string) error {
	lead, err := s.leads.FindByID(ctx, leadID)
	if err != nil {
		return err
	}
	return authorizeOwner(id, lead.AssignedAgentID)
}
