package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore flags signed-out token IDs until their natural expiry, so
// a revoked token stops working without keeping state past its lifetime.
type RevocationStore struct {
	client *redis.Client
}

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

func (s *RevocationStore) MarkRevoked(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Hour
	}
	return s.client.Set(ctx, "portal:revoked:"+tokenID, "1", ttl).Err()
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, "portal:revoked:"+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
