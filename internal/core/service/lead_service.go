package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

type LeadService struct {
	repo        ports.LeadRepository
	activities  ports.ActivityRecorder
	transitions domain.TransitionPolicy
	logger      zerolog.Logger
	now         func() time.Time
}

func NewLeadService(repo ports.LeadRepository, activities ports.ActivityRecorder, transitions domain.TransitionPolicy, logger zerolog.Logger) *LeadService {
	return &LeadService{
		repo:        repo,
		activities:  activities,
		transitions: transitions,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns one page of leads. Non-admins only see leads assigned to them.
func (s *LeadService) List(ctx context.Context, id domain.Identity, filter ports.LeadFilter) (*ports.PageResult[*domain.Lead], error) {
	filter.OwnerID = id.OwnerScope()
	filter.Page = filter.Page.Normalize()

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.PageResult[*domain.Lead]{
		Items: items,
		Total: total,
		Page:  filter.Page.Page,
		Limit: filter.Page.Limit,
	}, nil
}

func (s *LeadService) Get(ctx context.Context, id domain.Identity, leadID string) (*domain.Lead, error) {
	lead, err := s.repo.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(id, lead.AssignedAgentID); err != nil {
		return nil, err
	}
	return lead, nil
}

// Create stores a new lead. Non-admins always become the assigned agent;
// admins may assign anyone or leave the lead unassigned.
func (s *LeadService) Create(ctx context.Context, id domain.Identity, in ports.CreateLeadInput) (*domain.Lead, error) {
	now := s.now().UTC()
	lead := &domain.Lead{
		ID:                   uuid.NewString(),
		FirstName:            in.FirstName,
		LastName:             in.LastName,
		Email:                in.Email,
		Phone:                in.Phone,
		Type:                 in.Type,
		Source:               in.Source,
		Status:               in.Status,
		BudgetMin:            in.BudgetMin,
		BudgetMax:            in.BudgetMax,
		InterestedPropertyID: in.InterestedPropertyID,
		Notes:                in.Notes,
		AssignedAgentID:      in.AssignedAgentID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if lead.Type == "" {
		lead.Type = domain.LeadBuyer
	}
	if lead.Status == "" {
		lead.Status = domain.LeadNew
	}
	if !id.IsAdmin() {
		lead.AssignedAgentID = id.ID
	}
	if err := validateBudget(lead.BudgetMin, lead.BudgetMax); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.record(id, lead.ID, domain.ActivityNote, "Lead created", "")
	return lead, nil
}

// Update applies the non-nil fields of in. A reassignment from a non-admin is
// dropped without error.
func (s *LeadService) Update(ctx context.Context, id domain.Identity, leadID string, in ports.UpdateLeadInput) (*domain.Lead, error) {
	lead, err := s.Get(ctx, id, leadID)
	if err != nil {
		return nil, err
	}
	previous := lead.Status

	setIf(&lead.FirstName, in.FirstName)
	setIf(&lead.LastName, in.LastName)
	setIf(&lead.Email, in.Email)
	setIf(&lead.Phone, in.Phone)
	setIf(&lead.Type, in.Type)
	setIf(&lead.Source, in.Source)
	setIf(&lead.InterestedPropertyID, in.InterestedPropertyID)
	setIf(&lead.Notes, in.Notes)
	if in.BudgetMin != nil {
		lead.BudgetMin = in.BudgetMin
	}
	if in.BudgetMax != nil {
		lead.BudgetMax = in.BudgetMax
	}
	if id.IsAdmin() {
		setIf(&lead.AssignedAgentID, in.AssignedAgentID)
	}
	if in.Status != nil {
		if err := s.transitions.Lead(previous, *in.Status); err != nil {
			return nil, err
		}
		lead.Status = *in.Status
	}
	if err := validateBudget(lead.BudgetMin, lead.BudgetMax); err != nil {
		return nil, err
	}

	lead.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	if lead.Status != previous {
		s.record(id, lead.ID, domain.ActivityNote, "Status changed", string(previous)+" -> "+string(lead.Status))
	}
	return lead, nil
}

// Delete is reserved to admins regardless of ownership.
func (s *LeadService) Delete(ctx context.Context, id domain.Identity, leadID string) error {
	if err := requireAdmin(id, "Only admins can delete leads"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, leadID)
}

func (s *LeadService) record(id domain.Identity, leadID string, kind domain.ActivityType, title, notes string) {
	if s.activities == nil {
		return
	}
	s.activities.Record(domain.Activity{
		ID:          uuid.NewString(),
		LeadID:      leadID,
		Type:        kind,
		Title:       title,
		Notes:       notes,
		PerformedBy: id.ID,
		CreatedAt:   s.now().UTC(),
	})
}

func validateBudget(lo, hi *float64) error {
	if lo != nil && hi != nil && *lo > *hi {
		return domain.Invalid("budgetMin must not exceed budgetMax")
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
