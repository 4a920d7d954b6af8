package memory

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

type CommissionRepository struct {
	*table[*domain.Commission]
}

func NewCommissionRepository() *CommissionRepository {
	return &CommissionRepository{table: newTable[*domain.Commission]()}
}

func (r *CommissionRepository) Create(_ context.Context, c *domain.Commission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.rows[c.ID] = clone(c)
	return nil
}

func (r *CommissionRepository) FindByID(_ context.Context, id string) (*domain.Commission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrCommissionNotFound
	}
	return clone(c), nil
}

func (r *CommissionRepository) Update(_ context.Context, c *domain.Commission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[c.ID]; !ok {
		return domain.ErrCommissionNotFound
	}
	r.rows[c.ID] = clone(c)
	return nil
}

func (r *CommissionRepository) List(_ context.Context, f ports.CommissionFilter) ([]*domain.Commission, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	var matched []*domain.Commission
	for _, c := range r.all() {
		if f.AgentID != "" && c.AgentID != f.AgentID {
			continue
		}
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		matched = append(matched, clone(c))
	}

	items, total := paginate(matched, f.Page, func(a, b *domain.Commission) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	return items, total, nil
}
