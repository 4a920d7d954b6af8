package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

const collectionCommissions = "commissions"

type CommissionRepository struct {
	col *mongo.Collection
}

func NewCommissionRepository(db *mongo.Database) *CommissionRepository {
	return &CommissionRepository{col: db.Collection(collectionCommissions)}
}

func (r *CommissionRepository) Create(ctx context.Context, c *domain.Commission) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, c)
	return classify("insert commission", err, nil)
}

func (r *CommissionRepository) FindByID(ctx context.Context, id string) (*domain.Commission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Commission
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, classify("find commission", err, domain.ErrCommissionNotFound)
	}
	return &c, nil
}

// Update only ever touches status fields; the snapshot amount is immutable.
func (r *CommissionRepository) Update(ctx context.Context, c *domain.Commission) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": c.Status, "updatedAt": c.UpdatedAt}
	if c.PaidAt != nil {
		set["paidAt"] = c.PaidAt
	}
	res, err := r.col.UpdateByID(ctx, c.ID, bson.M{"$set": set})
	if err != nil {
		return classify("update commission", err, nil)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommissionNotFound
	}
	return nil
}

func (r *CommissionRepository) List(ctx context.Context, f ports.CommissionFilter) ([]*domain.Commission, int64, error) {
	filter := bson.M{}
	if f.AgentID != "" {
		filter["agentId"] = f.AgentID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return findPage[domain.Commission](ctx, r.col, filter, bson.D{{Key: "createdAt", Value: -1}}, f.Page)
}
