package cursorstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pagecore:cursor:"

// Redis is a Store backed by a shared redis instance so that pagination
// sequences survive process restarts and span multiple API replicas.
// Expiry rides on redis key TTLs.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a redis-backed store. A zero ttl selects DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Put(ctx context.Context, key string, payload []byte) error {
	return r.client.Set(ctx, redisKeyPrefix+key, payload, r.ttl).Err()
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

// Purge is a no-op: redis evicts expired keys itself.
func (r *Redis) Purge(context.Context) (int, error) { return 0, nil }

func (r *Redis) Close() error { return r.client.Close() }
