package memory

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

type LeadRepository struct {
	*table[*domain.Lead]
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{table: newTable[*domain.Lead]()}
}

func (r *LeadRepository) Create(_ context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.rows[lead.ID] = clone(lead)
	return nil
}

func (r *LeadRepository) FindByID(_ context.Context, id string) (*domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	l, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	return clone(l), nil
}

func (r *LeadRepository) Update(_ context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[lead.ID]; !ok {
		return domain.ErrLeadNotFound
	}
	r.rows[lead.ID] = clone(lead)
	return nil
}

func (r *LeadRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return domain.ErrLeadNotFound
	}
	delete(r.rows, id)
	return nil
}

// List applies the same predicates as the Mongo repository.
func (r *LeadRepository) List(_ context.Context, f ports.LeadFilter) ([]*domain.Lead, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	var matched []*domain.Lead
	for _, l := range r.all() {
		if f.OwnerID != "" && l.AssignedAgentID != f.OwnerID {
			continue
		}
		if f.Status != "" && string(l.Status) != f.Status {
			continue
		}
		if f.Source != "" && string(l.Source) != f.Source {
			continue
		}
		if f.Search != "" &&
			!containsFold(l.FirstName, f.Search) &&
			!containsFold(l.LastName, f.Search) &&
			!containsFold(l.Email, f.Search) &&
			!containsFold(l.Phone, f.Search) {
			continue
		}
		matched = append(matched, clone(l))
	}

	items, total := paginate(matched, f.Page, func(a, b *domain.Lead) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	return items, total, nil
}
