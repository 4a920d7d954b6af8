package ports

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
)

// CommissionTotals is a count and amount sum of commissions in one status.
type CommissionTotals struct {
	Count  int64
	Amount float64
}

// AgentTotals aggregates what one agent owns.
type AgentTotals struct {
	Properties       int64
	Leads            int64
	CommissionEarned float64
}

// AnalyticsRepository exposes the aggregate reads behind the admin dashboard.
// An empty status means "any".
type AnalyticsRepository interface {
	CountProperties(ctx context.Context, status domain.PropertyStatus) (int64, error)
	CountLeads(ctx context.Context, status domain.LeadStatus) (int64, error)
	CountVisits(ctx context.Context, status domain.VisitStatus) (int64, error)
	CommissionTotals(ctx context.Context, status domain.CommissionStatus) (CommissionTotals, error)
	// TotalsByAgent keys by agent id; commission earned counts PAID only.
	TotalsByAgent(ctx context.Context) (map[string]AgentTotals, error)
}

type OverviewStats struct {
	TotalProperties     int64  `json:"totalProperties"`
	AvailableProperties int64  `json:"availableProperties"`
	ActiveLeads         int64  `json:"activeLeads"`
	ClosedLeads         int64  `json:"closedLeads"`
	ConversionRate      string `json:"conversionRate"`
}

type VisitStats struct {
	Total          int64  `json:"total"`
	Completed      int64  `json:"completed"`
	Pending        int64  `json:"pending"`
	CompletionRate string `json:"completionRate"`
}

type AmountStats struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type CommissionStats struct {
	Pending AmountStats `json:"pending"`
	Paid    AmountStats `json:"paid"`
	Total   AmountStats `json:"total"`
}

type AgentPerformance struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Properties       int64   `json:"properties"`
	Leads            int64   `json:"leads"`
	CommissionEarned float64 `json:"commissionEarned"`
	Status           string  `json:"status"`
}

type AgentStats struct {
	Total       int                `json:"total"`
	Performance []AgentPerformance `json:"performance"`
}

// Dashboard is the admin analytics payload.
type Dashboard struct {
	Overview    OverviewStats   `json:"overview"`
	Visits      VisitStats      `json:"visits"`
	Commissions CommissionStats `json:"commissions"`
	Agents      AgentStats      `json:"agents"`
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, id domain.Identity) (*Dashboard, error)
}
