package ratelimit

import (
	"context"
	"time"
)

// Store holds fixed-window counters.
type Store interface {
	// Increment atomically adds one to key's counter in the current window,
	// opening a new window of length window when none is active.
	// It returns the new count and the instant the window resets.
	Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// Clock returns the current time. Tests swap it to cross window boundaries
// without sleeping.
type Clock func() time.Time

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)
