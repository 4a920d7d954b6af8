package memory

import (
	"context"
	"sort"

	"github.com/recrm/crm-api/internal/core/domain"
)

type ActivityRepository struct {
	*table[*domain.Activity]
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{table: newTable[*domain.Activity]()}
}

func (r *ActivityRepository) Insert(_ context.Context, a *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.rows[a.ID] = clone(a)
	return nil
}

func (r *ActivityRepository) ListByLead(_ context.Context, leadID string) ([]*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []*domain.Activity{}
	for _, a := range r.rows {
		if a.LeadID == leadID {
			out = append(out, clone(a))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
