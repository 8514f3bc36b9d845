package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	resetAt time.Time
	count   int
}

// MemoryStore keeps counters in a map guarded by a single mutex
type MemoryStore struct {
	clock   Clock
	windows map[string]*window
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

// MemoryOption configures a MemoryStore
type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now
func WithClock(clock Clock) MemoryOption {
	return func(s *MemoryStore) {
		s.clock = clock
	}
}

// NewMemoryStore creates an in-memory store
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		clock:   time.Now,
		windows: make(map[string]*window),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Increment implements Store
func (s *MemoryStore) Increment(ctx context.Context, key string, length time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()

	w, exists := s.windows[key]
	if !exists || !now.Before(w.resetAt) {
		w = &window{
			count:   1,
			resetAt: now.Add(length),
		}
		s.windows[key] = w
		return w.count, w.resetAt, nil
	}

	w.count++
	return w.count, w.resetAt, nil
}

// StartCleanup removes expired windows every interval until Close is called
func (s *MemoryStore) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.done:
				return
			}
		}
	}()
}

// Sweep drops every window that has already reset
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	for key, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, key)
		}
	}
}

// Len returns the number of tracked identities
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

// Close stops the cleanup goroutine
func (s *MemoryStore) Close() error {
	s.once.Do(func() {
		close(s.done)
	})
	return nil
}
