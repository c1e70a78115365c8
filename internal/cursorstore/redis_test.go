package cursorstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedis(client, ttl), mr
}

func TestRedisPutGet(t *testing.T) {
	ctx := context.Background()
	r, _ := testRedis(t, time.Hour)

	require.NoError(t, r.Put(ctx, "k1", []byte("payload")))

	got, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	_, err = r.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisExpiry(t *testing.T) {
	ctx := context.Background()
	r, mr := testRedis(t, time.Hour)

	require.NoError(t, r.Put(ctx, "k1", []byte("payload")))

	mr.FastForward(59 * time.Minute)
	_, err := r.Get(ctx, "k1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = r.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisPurgeIsNoop(t *testing.T) {
	ctx := context.Background()
	r, _ := testRedis(t, time.Hour)

	require.NoError(t, r.Put(ctx, "k1", []byte("payload")))

	removed, err := r.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	_, err = r.Get(ctx, "k1")
	assert.NoError(t, err)
}
