package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

const collectionLeads = "leads"

type LeadRepository struct {
	col *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{col: db.Collection(collectionLeads)}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, lead)
	return classify("insert lead", err, nil)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Lead
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, classify("find lead", err, domain.ErrLeadNotFound)
	}
	return &l, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": lead.ID}, lead)
	if err != nil {
		return classify("update lead", err, nil)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classify("delete lead", err, nil)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

// List returns leads newest first.
func (r *LeadRepository) List(ctx context.Context, f ports.LeadFilter) ([]*domain.Lead, int64, error) {
	return findPage[domain.Lead](ctx, r.col, leadFilter(f), bson.D{{Key: "createdAt", Value: -1}}, f.Page)
}

func leadFilter(f ports.LeadFilter) bson.M {
	filter := bson.M{}
	if f.OwnerID != "" {
		filter["assignedAgentId"] = f.OwnerID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Source != "" {
		filter["source"] = f.Source
	}
	if f.Search != "" {
		filter["$or"] = searchAny(f.Search, "firstName", "lastName", "email", "phone")
	}
	return filter
}
