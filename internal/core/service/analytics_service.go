package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

const (
	agentActive   = "ACTIVE"
	agentInactive = "INACTIVE"
)

type AnalyticsService struct {
	stats ports.AnalyticsRepository
	users ports.UserRepository
}

func NewAnalyticsService(stats ports.AnalyticsRepository, users ports.UserRepository) *AnalyticsService {
	return &AnalyticsService{stats: stats, users: users}
}

// Dashboard aggregates the admin overview. All counters are fetched
// concurrently; the first failure cancels the rest.
func (s *AnalyticsService) Dashboard(ctx context.Context, id domain.Identity) (*ports.Dashboard, error) {
	if err := requireAdmin(id, "Only admins can access analytics"); err != nil {
		return nil, err
	}

	var (
		totalProperties, availableProperties int64
		activeLeads, closedLeads             int64
		totalVisits, completedVisits         int64
		pending, paid                        ports.CommissionTotals
		agents                               []*domain.User
		byAgent                              map[string]ports.AgentTotals
	)

	g, ctx := errgroup.WithContext(ctx)
	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(ctx)
			*dst = n
			return err
		})
	}
	count(&totalProperties, func(ctx context.Context) (int64, error) { return s.stats.CountProperties(ctx, "") })
	count(&availableProperties, func(ctx context.Context) (int64, error) {
		return s.stats.CountProperties(ctx, domain.PropertyAvailable)
	})
	count(&activeLeads, func(ctx context.Context) (int64, error) { return s.stats.CountLeads(ctx, domain.LeadInterested) })
	count(&closedLeads, func(ctx context.Context) (int64, error) { return s.stats.CountLeads(ctx, domain.LeadClosedWon) })
	count(&totalVisits, func(ctx context.Context) (int64, error) { return s.stats.CountVisits(ctx, "") })
	count(&completedVisits, func(ctx context.Context) (int64, error) { return s.stats.CountVisits(ctx, domain.VisitCompleted) })
	g.Go(func() (err error) {
		pending, err = s.stats.CommissionTotals(ctx, domain.CommissionPending)
		return err
	})
	g.Go(func() (err error) {
		paid, err = s.stats.CommissionTotals(ctx, domain.CommissionPaid)
		return err
	})
	g.Go(func() (err error) {
		agents, err = s.users.ListByRole(ctx, domain.RoleAgent)
		return err
	})
	g.Go(func() (err error) {
		byAgent, err = s.stats.TotalsByAgent(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	performance := make([]ports.AgentPerformance, 0, len(agents))
	for _, a := range agents {
		totals := byAgent[a.ID]
		status := agentInactive
		if a.IsActive {
			status = agentActive
		}
		performance = append(performance, ports.AgentPerformance{
			ID:               a.ID,
			Name:             a.FirstName + " " + a.LastName,
			Properties:       totals.Properties,
			Leads:            totals.Leads,
			CommissionEarned: totals.CommissionEarned,
			Status:           status,
		})
	}
	sort.SliceStable(performance, func(i, j int) bool {
		return performance[i].CommissionEarned > performance[j].CommissionEarned
	})

	return &ports.Dashboard{
		Overview: ports.OverviewStats{
			TotalProperties:     totalProperties,
			AvailableProperties: availableProperties,
			ActiveLeads:         activeLeads,
			ClosedLeads:         closedLeads,
			ConversionRate:      percent(closedLeads, closedLeads+activeLeads),
		},
		Visits: ports.VisitStats{
			Total:          totalVisits,
			Completed:      completedVisits,
			Pending:        totalVisits - completedVisits,
			CompletionRate: percent(completedVisits, totalVisits),
		},
		Commissions: ports.CommissionStats{
			Pending: ports.AmountStats{Count: pending.Count, Amount: pending.Amount},
			Paid:    ports.AmountStats{Count: paid.Count, Amount: paid.Amount},
			Total: ports.AmountStats{
				Count:  pending.Count + paid.Count,
				Amount: pending.Amount + paid.Amount,
			},
		},
		Agents: ports.AgentStats{
			Total:       len(agents),
			Performance: performance,
		},
	}, nil
}

// percent formats part/whole as a two-decimal percentage, "0.00" when whole is zero.
func percent(part, whole int64) string {
	if whole <= 0 || part <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(part)/float64(whole)*100)
}
