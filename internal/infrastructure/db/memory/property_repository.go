package memory

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

type PropertyRepository struct {
	*table[*domain.Property]
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{table: newTable[*domain.Property]()}
}

func (r *PropertyRepository) Create(_ context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.rows[p.ID] = clone(p)
	return nil
}

func (r *PropertyRepository) FindByID(_ context.Context, id string) (*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return clone(p), nil
}

func (r *PropertyRepository) Update(_ context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[p.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	r.rows[p.ID] = clone(p)
	return nil
}

func (r *PropertyRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *PropertyRepository) List(_ context.Context, f ports.PropertyFilter) ([]*domain.Property, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	var matched []*domain.Property
	for _, p := range r.all() {
		if f.OwnerID != "" && p.AgentID != f.OwnerID {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.Type != "" && string(p.Type) != f.Type {
			continue
		}
		if f.Search != "" &&
			!containsFold(p.Title, f.Search) &&
			!containsFold(p.Address, f.Search) &&
			!containsFold(p.City, f.Search) {
			continue
		}
		matched = append(matched, clone(p))
	}

	items, total := paginate(matched, f.Page, func(a, b *domain.Property) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	return items, total, nil
}
