package memory

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// AnalyticsRepository computes dashboard counters over the other in-memory tables.
type AnalyticsRepository struct {
	Leads       *LeadRepository
	Properties  *PropertyRepository
	Visits      *VisitRepository
	Commissions *CommissionRepository
}

func (r *AnalyticsRepository) CountProperties(_ context.Context, status domain.PropertyStatus) (int64, error) {
	r.Properties.mu.RLock()
	defer r.Properties.mu.RUnlock()
	if r.Properties.Err != nil {
		return 0, r.Properties.Err
	}
	var n int64
	for _, p := range r.Properties.rows {
		if status == "" || p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepository) CountLeads(_ context.Context, status domain.LeadStatus) (int64, error) {
	r.Leads.mu.RLock()
	defer r.Leads.mu.RUnlock()
	if r.Leads.Err != nil {
		return 0, r.Leads.Err
	}
	var n int64
	for _, l := range r.Leads.rows {
		if status == "" || l.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepository) CountVisits(_ context.Context, status domain.VisitStatus) (int64, error) {
	r.Visits.mu.RLock()
	defer r.Visits.mu.RUnlock()
	if r.Visits.Err != nil {
		return 0, r.Visits.Err
	}
	var n int64
	for _, v := range r.Visits.rows {
		if status == "" || v.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepository) CommissionTotals(_ context.Context, status domain.CommissionStatus) (ports.CommissionTotals, error) {
	r.Commissions.mu.RLock()
	defer r.Commissions.mu.RUnlock()
	if r.Commissions.Err != nil {
		return ports.CommissionTotals{}, r.Commissions.Err
	}
	var t ports.CommissionTotals
	for _, c := range r.Commissions.rows {
		if status == "" || c.Status == status {
			t.Count++
			t.Amount += c.CommissionAmount
		}
	}
	return t, nil
}

func (r *AnalyticsRepository) TotalsByAgent(ctx context.Context) (map[string]ports.AgentTotals, error) {
	out := make(map[string]ports.AgentTotals)

	r.Properties.mu.RLock()
	for _, p := range r.Properties.rows {
		t := out[p.AgentID]
		t.Properties++
		out[p.AgentID] = t
	}
	r.Properties.mu.RUnlock()

	r.Leads.mu.RLock()
	for _, l := range r.Leads.rows {
		if l.AssignedAgentID == "" {
			continue
		}
		t := out[l.AssignedAgentID]
		t.Leads++
		out[l.AssignedAgentID] = t
	}
	r.Leads.mu.RUnlock()

	r.Commissions.mu.RLock()
	for _, c := range r.Commissions.rows {
		if c.Status != domain.CommissionPaid {
			continue
		}
		t := out[c.AgentID]
		t.CommissionEarned += c.CommissionAmount
		out[c.AgentID] = t
	}
	r.Commissions.mu.RUnlock()

	return out, ctx.Err()
}
