package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrScript bumps the counter and starts the expiry on the first hit of a window.
// Returns {count, pttl_ms}.
var incrScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisStore keeps counters in Redis so several processes can share a quota
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a store on a pre-configured client (Client, ClusterClient, ...)
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "ratelimit:",
	}
}

// Increment implements Store
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	res, err := incrScript.Run(ctx, s.client, []string{s.prefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis increment failed: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis script result: %v", res)
	}

	resetAt := time.Now().Add(time.Duration(res[1]) * time.Millisecond)
	return int(res[0]), resetAt, nil
}
