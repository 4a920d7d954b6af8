package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recrm/crm-api/internal/core/domain"
)

const revokedKeyPrefix = "auth:revoked:"

// RevocationStore remembers logged-out token ids until their natural expiry.
// Key format: auth:revoked:<jti>
type RevocationStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

// Revoke marks tokenID revoked. Tokens that have already expired need no entry.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(tokenID), "1", ttl).Err(); err != nil {
		return domain.Unavailable(fmt.Errorf("revoke token: %w", err))
	}
	return nil
}

// IsRevoked reports whether tokenID was logged out. A store failure is
// returned as domain.ErrBackendUnavailable; callers must not treat it as "not revoked".
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, domain.Unavailable(fmt.Errorf("revocation check: %w", err))
	}
	return n > 0, nil
}

func (s *RevocationStore) key(tokenID string) string {
	return revokedKeyPrefix + tokenID
}
