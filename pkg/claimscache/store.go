package claimscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Wire-stable cache key formats. These must stay bit-exact for interop
// with entries written by other services sharing the cache.
const (
	userClaimsKeyFormat      = "UserClaimsCacheKey:'%s'"
	workOrderClaimsKeyFormat = "UserClaimsWorkOrdersCacheKey:'%s'"
)

// UserClaimsKey builds the distributed cache key for a token's claim set.
func UserClaimsKey(token string) string {
	return fmt.Sprintf(userClaimsKeyFormat, token)
}

// WorkOrderClaimsKey builds the distributed cache key for a token's
// work-order claim list.
func WorkOrderClaimsKey(token string) string {
	return fmt.Sprintf(workOrderClaimsKeyFormat, token)
}

// Store abstracts the distributed byte cache holding signed claim
// payloads.
type Store interface {
	// Get returns the payload for key; the boolean reports presence.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the payload under key with the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Delete removes the key.
	Delete(ctx context.Context, key string) error
}

// RedisStore implements Store over the shared Redis cache.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.Cmdable) (*RedisStore, error) {
	if client == nil {
		return nil, ErrMissingStore
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Join(ErrStoreUnavailable, err)
	}
	return payload, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
