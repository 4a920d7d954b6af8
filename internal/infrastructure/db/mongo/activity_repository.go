package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recrm/crm-api/internal/core/domain"
)

const collectionActivities = "activities"

// ActivityRepository persists the lead timeline.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, a)
	return classify("insert activity", err, nil)
}

func (r *ActivityRepository) ListByLead(ctx context.Context, leadID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"leadId": leadID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, classify("list activities", err, nil)
	}
	out := []*domain.Activity{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, classify("decode activities", err, nil)
	}
	return out, nil
}
