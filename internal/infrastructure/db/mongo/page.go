package mongo

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/recrm/crm-api/internal/core/ports"
)

// findPage runs the count and the page query concurrently against the same filter.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter bson.M, sort bson.D, page ports.Page) ([]*T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	page = page.Normalize()
	opts := options.Find().
		SetSort(stableSort(sort)).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	var (
		items []*T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, err := col.Find(gctx, filter, opts)
		if err != nil {
			return err
		}
		items = make([]*T, 0, page.Limit)
		return cur.All(gctx, &items)
	})
	g.Go(func() (err error) {
		total, err = col.CountDocuments(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, classify("list "+col.Name(), err, nil)
	}
	return items, total, nil
}

// stableSort appends _id so rows with equal sort keys keep one order across
// skip/limit pages.
func stableSort(sort bson.D) bson.D {
	for _, e := range sort {
		if e.Key == "_id" {
			return sort
		}
	}
	out := make(bson.D, 0, len(sort)+1)
	out = append(out, sort...)
	return append(out, bson.E{Key: "_id", Value: -1})
}

// searchAny matches term case-insensitively as a literal substring of any field.
func searchAny(term string, fields ...string) bson.A {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return or
}
