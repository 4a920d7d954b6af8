package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

const maxRating = 5

type VisitService struct {
	visits      ports.VisitRepository
	leads       ports.LeadRepository
	properties  ports.PropertyRepository
	users       ports.UserRepository
	activities  ports.ActivityRecorder
	transitions domain.TransitionPolicy
	logger      zerolog.Logger
	now         func() time.Time
}

func NewVisitService(
	visits ports.VisitRepository,
	leads ports.LeadRepository,
	properties ports.PropertyRepository,
	users ports.UserRepository,
	activities ports.ActivityRecorder,
	transitions domain.TransitionPolicy,
	logger zerolog.Logger,
) *VisitService {
	return &VisitService{
		visits:      visits,
		leads:       leads,
		properties:  properties,
		users:       users,
		activities:  activities,
		transitions: transitions,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns visits ordered by scheduledAt, newest first. The agentId filter
// only applies to admins.
func (s *VisitService) List(ctx context.Context, id domain.Identity, in ports.ListVisitsInput) (*ports.PageResult[*domain.Visit], error) {
	filter := ports.VisitFilter{
		OwnerID: scopedOwner(id, in.AgentID),
		Status:  in.Status,
		Page:    in.Page.Normalize(),
	}

	items, total, err := s.visits.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.PageResult[*domain.Visit]{
		Items: items,
		Total: total,
		Page:  filter.Page.Page,
		Limit: filter.Page.Limit,
	}, nil
}

func (s *VisitService) Get(ctx context.Context, id domain.Identity, visitID string) (*domain.Visit, error) {
	v, err := s.visits.FindByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(id, v.AssignedAgentID); err != nil {
		return nil, err
	}
	return v, nil
}

// Create schedules a visit for an existing lead and property.
func (s *VisitService) Create(ctx context.Context, id domain.Identity, in ports.CreateVisitInput) (*domain.Visit, error) {
	if in.ScheduledAt.IsZero() {
		return nil, domain.Invalid("Invalid date format")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.leads.FindByID(gctx, in.LeadID)
		return err
	})
	g.Go(func() error {
		_, err := s.properties.FindByID(gctx, in.PropertyID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrLeadOrPropertyNotFound
		}
		return nil, err
	}

	agentID := in.AssignedAgentID
	if !id.IsAdmin() {
		agentID = id.ID
	}
	if agentID == "" {
		return nil, domain.Invalid("Agent assignment required")
	}
	if err := requireAgent(ctx, s.users, id, agentID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	v := &domain.Visit{
		ID:              uuid.NewString(),
		LeadID:          in.LeadID,
		PropertyID:      in.PropertyID,
		AssignedAgentID: agentID,
		ScheduledAt:     in.ScheduledAt.UTC(),
		Status:          domain.VisitScheduled,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.visits.Create(ctx, v); err != nil {
		return nil, err
	}

	if s.activities != nil {
		s.activities.Record(domain.Activity{
			ID:          uuid.NewString(),
			LeadID:      v.LeadID,
			Type:        domain.ActivitySiteVisit,
			Title:       "Site visit scheduled",
			Notes:       v.ScheduledAt.Format(time.RFC3339),
			PerformedBy: id.ID,
			CreatedAt:   now,
		})
	}
	return v, nil
}

// UpdateStatus records the outcome of a visit.
func (s *VisitService) UpdateStatus(ctx context.Context, id domain.Identity, visitID string, in ports.UpdateVisitStatusInput) (*domain.Visit, error) {
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > maxRating) {
		return nil, domain.Invalid("rating must be between 1 and %d", maxRating)
	}

	v, err := s.Get(ctx, id, visitID)
	if err != nil {
		return nil, err
	}
	if err := s.transitions.Visit(v.Status, in.Status); err != nil {
		return nil, err
	}

	v.Status = in.Status
	setIf(&v.Feedback, in.Feedback)
	if in.Rating != nil {
		v.Rating = in.Rating
	}
	v.UpdatedAt = s.now().UTC()

	if err := s.visits.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VisitService) Delete(ctx context.Context, id domain.Identity, visitID string) error {
	if err := requireAdmin(id, "Only admins can delete visits"); err != nil {
		return err
	}
	return s.visits.Delete(ctx, visitID)
}
