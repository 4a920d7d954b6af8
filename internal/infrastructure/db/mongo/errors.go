package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/recrm/crm-api/internal/core/domain"
)

// classify translates driver errors into domain errors. Connectivity failures
// become domain.ErrBackendUnavailable so the API can answer 503 without
// looking at error text.
func classify(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	if isUnavailable(err) {
		return domain.Unavailable(fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	var selection topology.ServerSelectionError
	switch {
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return true
	case errors.Is(err, mongo.ErrClientDisconnected), errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.As(err, &selection):
		return true
	}
	return false
}
