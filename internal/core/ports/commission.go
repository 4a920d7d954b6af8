package ports

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
)

type CommissionFilter struct {
	AgentID string
	Status  string
	Page    Page
}

type CommissionRepository interface {
	Create(ctx context.Context, c *domain.Commission) error
	FindByID(ctx context.Context, id string) (*domain.Commission, error)
	Update(ctx context.Context, c *domain.Commission) error
	List(ctx context.Context, filter CommissionFilter) ([]*domain.Commission, int64, error)
}

type CreateCommissionInput struct {
	AgentID    string
	PropertyID string
	Percentage float64
}

type ListCommissionsInput struct {
	Status  string
	AgentID string // honored for admins only
	Page    Page
}

type CommissionService interface {
	List(ctx context.Context, id domain.Identity, in ListCommissionsInput) (*PageResult[*domain.Commission], error)
	Create(ctx context.Context, id domain.Identity, in CreateCommissionInput) (*domain.Commission, error)
	UpdateStatus(ctx context.Context, id domain.Identity, commissionID string, status domain.CommissionStatus) (*domain.Commission, error)
}
