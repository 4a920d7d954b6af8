package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// AnalyticsRepository answers dashboard counters with count and aggregation
// queries; documents are never pulled into the process.
type AnalyticsRepository struct {
	properties  *mongo.Collection
	leads       *mongo.Collection
	visits      *mongo.Collection
	commissions *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{
		properties:  db.Collection(collectionProperties),
		leads:       db.Collection(collectionLeads),
		visits:      db.Collection(collectionVisits),
		commissions: db.Collection(collectionCommissions),
	}
}

func (r *AnalyticsRepository) CountProperties(ctx context.Context, status domain.PropertyStatus) (int64, error) {
	return count(ctx, r.properties, string(status))
}

func (r *AnalyticsRepository) CountLeads(ctx context.Context, status domain.LeadStatus) (int64, error) {
	return count(ctx, r.leads, string(status))
}

func (r *AnalyticsRepository) CountVisits(ctx context.Context, status domain.VisitStatus) (int64, error) {
	return count(ctx, r.visits, string(status))
}

type sumRow struct {
	ID     string  `bson:"_id"`
	Count  int64   `bson:"count"`
	Amount float64 `bson:"amount"`
}

func (r *AnalyticsRepository) CommissionTotals(ctx context.Context, status domain.CommissionStatus) (ports.CommissionTotals, error) {
	rows, err := aggregate(ctx, r.commissions, statusFilter(string(status)), nil, "$commissionAmount")
	if err != nil {
		return ports.CommissionTotals{}, err
	}
	if len(rows) == 0 {
		return ports.CommissionTotals{}, nil
	}
	return ports.CommissionTotals{Count: rows[0].Count, Amount: rows[0].Amount}, nil
}

// TotalsByAgent groups listings, assigned leads and PAID commissions by agent id.
func (r *AnalyticsRepository) TotalsByAgent(ctx context.Context) (map[string]ports.AgentTotals, error) {
	out := make(map[string]ports.AgentTotals)

	props, err := aggregate(ctx, r.properties, bson.M{}, "$agentId", nil)
	if err != nil {
		return nil, err
	}
	for _, row := range props {
		t := out[row.ID]
		t.Properties = row.Count
		out[row.ID] = t
	}

	leads, err := aggregate(ctx, r.leads, bson.M{"assignedAgentId": bson.M{"$nin": bson.A{nil, ""}}}, "$assignedAgentId", nil)
	if err != nil {
		return nil, err
	}
	for _, row := range leads {
		t := out[row.ID]
		t.Leads = row.Count
		out[row.ID] = t
	}

	paid, err := aggregate(ctx, r.commissions, statusFilter(string(domain.CommissionPaid)), "$agentId", "$commissionAmount")
	if err != nil {
		return nil, err
	}
	for _, row := range paid {
		t := out[row.ID]
		t.CommissionEarned = row.Amount
		out[row.ID] = t
	}

	return out, nil
}

func count(ctx context.Context, col *mongo.Collection, status string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := col.CountDocuments(ctx, statusFilter(status))
	if err != nil {
		return 0, classify("count "+col.Name(), err, nil)
	}
	return n, nil
}

// aggregate runs $match then $group on groupBy (nil for a single bucket),
// counting documents and summing sumField when it is set.
func aggregate(ctx context.Context, col *mongo.Collection, match bson.M, groupBy, sumField any) ([]sumRow, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	group := bson.M{
		"_id":   groupBy,
		"count": bson.M{"$sum": 1},
	}
	if sumField != nil {
		group["amount"] = bson.M{"$sum": sumField}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: group}},
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, classify("aggregate "+col.Name(), err, nil)
	}
	var rows []sumRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, classify("decode "+col.Name(), err, nil)
	}
	return rows, nil
}

func statusFilter(status string) bson.M {
	if status == "" {
		return bson.M{}
	}
	return bson.M{"status": status}
}
