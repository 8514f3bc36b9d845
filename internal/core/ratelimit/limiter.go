package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrLimitExceeded is returned by Check when the client is over quota
var ErrLimitExceeded = errors.New("rate limit exceeded")

// Defaults matching the list/create endpoint policy: 10 requests per minute per client
const (
	DefaultRequests = 10
	DefaultWindow   = time.Minute
)

// Result describes the outcome of a single Allow call
type Result struct {
	ResetAt   time.Time
	Limit     int
	Remaining int
	Allowed   bool
}

// RetryAfter is the time left until the window resets, never negative
func (r Result) RetryAfter(now time.Time) time.Duration {
	if d := r.ResetAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Limiter caps the number of requests per client identity in a fixed window.
//
// A window opens on the identity's first request and lasts Window. Every call
// counts, including rejected ones, but a rejected call never extends the
// window. At or after the reset instant the next request opens a new window.
type Limiter struct {
	store    Store
	requests int
	window   time.Duration
}

// New creates a limiter allowing requests per window for each identity
func New(store Store, requests int, window time.Duration) (*Limiter, error) {
	if store == nil {
		return nil, errors.New("ratelimit: store is required")
	}
	if requests < 1 {
		return nil, fmt.Errorf("ratelimit: requests must be positive, got %d", requests)
	}
	if window <= 0 {
		return nil, fmt.Errorf("ratelimit: window must be positive, got %s", window)
	}
	return &Limiter{
		store:    store,
		requests: requests,
		window:   window,
	}, nil
}

// Allow records one request for identity and reports whether it is within the ceiling
func (l *Limiter) Allow(ctx context.Context, identity string) (Result, error) {
	count, resetAt, err := l.store.Increment(ctx, identity, l.window)
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: increment %q: %w", identity, err)
	}

	remaining := l.requests - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= l.requests,
		Limit:     l.requests,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// Check is Allow returning ErrLimitExceeded on rejection
func (l *Limiter) Check(ctx context.Context, identity string) (Result, error) {
	res, err := l.Allow(ctx, identity)
	if err != nil {
		return res, err
	}
	if !res.Allowed {
		return res, ErrLimitExceeded
	}
	return res, nil
}

// Limit returns the configured ceiling per window
func (l *Limiter) Limit() int {
	return l.requests
}

// Window returns the configured window length
func (l *Limiter) Window() time.Duration {
	return l.window
}
