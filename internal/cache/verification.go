package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
)

// VerificationStore holds one-shot email verification tokens with a TTL.
type VerificationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVerificationStore(client *redis.Client, ttl time.Duration) *VerificationStore {
	return &VerificationStore{client: client, ttl: ttl}
}

func (s *VerificationStore) Put(ctx context.Context, token, userID string) error {
	return s.client.Set(ctx, "portal:verify:"+token, userID, s.ttl).Err()
}

// Take consumes the token and returns the user it was issued for. A token
// can be redeemed at most once.
func (s *VerificationStore) Take(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, "portal:verify:"+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
