package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

const collectionVisits = "property_visits"

type VisitRepository struct {
	col *mongo.Collection
}

func NewVisitRepository(db *mongo.Database) *VisitRepository {
	return &VisitRepository{col: db.Collection(collectionVisits)}
}

func (r *VisitRepository) Create(ctx context.Context, v *domain.Visit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, v)
	return classify("insert visit", err, nil)
}

func (r *VisitRepository) FindByID(ctx context.Context, id string) (*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Visit
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return nil, classify("find visit", err, domain.ErrVisitNotFound)
	}
	return &v, nil
}

func (r *VisitRepository) Update(ctx context.Context, v *domain.Visit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return classify("update visit", err, nil)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

func (r *VisitRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classify("delete visit", err, nil)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

// List returns visits ordered by scheduledAt, latest first.
func (r *VisitRepository) List(ctx context.Context, f ports.VisitFilter) ([]*domain.Visit, int64, error) {
	filter := bson.M{}
	if f.OwnerID != "" {
		filter["assignedAgentId"] = f.OwnerID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return findPage[domain.Visit](ctx, r.col, filter, bson.D{{Key: "scheduledAt", Value: -1}}, f.Page)
}
