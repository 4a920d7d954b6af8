package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

type CommissionService struct {
	commissions ports.CommissionRepository
	properties  ports.PropertyRepository
	users       ports.UserRepository
	logger      zerolog.Logger
	now         func() time.Time
}

func NewCommissionService(commissions ports.CommissionRepository, properties ports.PropertyRepository, users ports.UserRepository, logger zerolog.Logger) *CommissionService {
	return &CommissionService{commissions: commissions, properties: properties, users: users, logger: logger, now: time.Now}
}

func (s *CommissionService) List(ctx context.Context, id domain.Identity, in ports.ListCommissionsInput) (*ports.PageResult[*domain.Commission], error) {
	filter := ports.CommissionFilter{
		AgentID: scopedOwner(id, in.AgentID),
		Status:  in.Status,
		Page:    in.Page.Normalize(),
	}

	items, total, err := s.commissions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.PageResult[*domain.Commission]{
		Items: items,
		Total: total,
		Page:  filter.Page.Page,
		Limit: filter.Page.Limit,
	}, nil
}

// Create snapshots the property's current price into the commission. Later
// price changes never touch the stored amount.
func (s *CommissionService) Create(ctx context.Context, id domain.Identity, in ports.CreateCommissionInput) (*domain.Commission, error) {
	if err := requireAdmin(id, "Only admins can create commissions"); err != nil {
		return nil, err
	}
	if in.AgentID == "" || in.PropertyID == "" || in.Percentage == 0 {
		return nil, domain.Invalid("Missing required fields")
	}
	if in.Percentage < 0 || in.Percentage > 100 {
		return nil, domain.Invalid("percentage must be between 0 and 100")
	}

	property, err := s.properties.FindByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := requireAgent(ctx, s.users, id, in.AgentID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := &domain.Commission{
		ID:               uuid.NewString(),
		AgentID:          in.AgentID,
		PropertyID:       property.ID,
		Percentage:       in.Percentage,
		PropertyPrice:    property.Price,
		CommissionAmount: domain.CalculateCommission(property.Price, in.Percentage),
		Status:           domain.CommissionPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.commissions.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("commission_id", c.ID).
		Str("agent_id", c.AgentID).
		Float64("amount", c.CommissionAmount).
		Msg("commission created")
	return c, nil
}

// UpdateStatus moves a commission through its payout lifecycle. paidAt is
// stamped the first time it becomes PAID.
func (s *CommissionService) UpdateStatus(ctx context.Context, id domain.Identity, commissionID string, status domain.CommissionStatus) (*domain.Commission, error) {
	if err := requireAdmin(id, "Only admins can update commissions"); err != nil {
		return nil, err
	}
	switch status {
	case domain.CommissionPending, domain.CommissionApproved, domain.CommissionPaid, domain.CommissionCancelled:
	default:
		return nil, domain.Invalid("invalid commission status %q", status)
	}

	c, err := s.commissions.FindByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c.Status = status
	if status == domain.CommissionPaid && c.PaidAt == nil {
		c.PaidAt = &now
	}
	c.UpdatedAt = now

	if err := s.commissions.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
