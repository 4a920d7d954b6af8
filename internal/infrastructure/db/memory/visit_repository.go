package memory

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

type VisitRepository struct {
	*table[*domain.Visit]
}

func NewVisitRepository() *VisitRepository {
	return &VisitRepository{table: newTable[*domain.Visit]()}
}

func (r *VisitRepository) Create(_ context.Context, v *domain.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.rows[v.ID] = clone(v)
	return nil
}

func (r *VisitRepository) FindByID(_ context.Context, id string) (*domain.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	v, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrVisitNotFound
	}
	return clone(v), nil
}

func (r *VisitRepository) Update(_ context.Context, v *domain.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[v.ID]; !ok {
		return domain.ErrVisitNotFound
	}
	r.rows[v.ID] = clone(v)
	return nil
}

func (r *VisitRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return domain.ErrVisitNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *VisitRepository) List(_ context.Context, f ports.VisitFilter) ([]*domain.Visit, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	var matched []*domain.Visit
	for _, v := range r.all() {
		if f.OwnerID != "" && v.AssignedAgentID != f.OwnerID {
			continue
		}
		if f.Status != "" && string(v.Status) != f.Status {
			continue
		}
		matched = append(matched, clone(v))
	}

	items, total := paginate(matched, f.Page, func(a, b *domain.Visit) bool {
		return a.ScheduledAt.After(b.ScheduledAt)
	})
	return items, total, nil
}
