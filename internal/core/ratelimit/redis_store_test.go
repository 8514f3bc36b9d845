package ratelimit

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedis connects to REDIS_URL or skips
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping redis store test")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis not reachable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore_FixedWindow(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	key := fmt.Sprintf("test-%d", time.Now().UnixNano())
	t.Cleanup(func() { client.Del(context.Background(), "ratelimit:"+key) })

	l, err := New(NewRedisStore(client), 3, 500*time.Millisecond)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	res, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.True(t, res.ResetAt.After(time.Now()))

	time.Sleep(600 * time.Millisecond)
	res, err = l.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "window should have expired")
	assert.Equal(t, 2, res.Remaining)
}

func TestRedisStore_ResetFollowsKeyTTL(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	key := fmt.Sprintf("test-ttl-%d", time.Now().UnixNano())
	t.Cleanup(func() { client.Del(context.Background(), "ratelimit:"+key) })

	store := NewRedisStore(client)
	before := time.Now()
	count, resetAt, err := store.Increment(ctx, key, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.WithinRange(t, resetAt, before.Add(time.Second), time.Now().Add(2*time.Second))
}

func TestRedisStore_ClientError(t *testing.T) {
	// Nothing listens on port 1
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	_, _, err := NewRedisStore(client).Increment(context.Background(), "k", time.Second)
	assert.Error(t, err)
}
