package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map. Suitable for tests
// and single-instance deployments; production multi-instance setups should
// use RedisStore so counters are shared.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
	lockouts map[string]time.Time

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
}

type counter struct {
	count     int64
	expiresAt time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired entries are purged.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

// NewMemoryStore creates an in-memory store with background cleanup.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		counters:        make(map[string]*counter),
		lockouts:        make(map[string]time.Time),
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

func (s *MemoryStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c, exists := s.counters[key]
	if !exists || now.After(c.expiresAt) {
		c = &counter{count: 1, expiresAt: now.Add(window)}
		s.counters[key] = c
		return c.count, nil
	}

	c.count++
	return c.count, nil
}

func (s *MemoryStore) Lock(ctx context.Context, key string, lockout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lockouts[key] = time.Now().Add(lockout)
	return nil
}

func (s *MemoryStore) LockoutRemaining(ctx context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, exists := s.lockouts[key]
	if !exists {
		return 0, nil
	}
	remaining := time.Until(until)
	if remaining <= 0 {
		delete(s.lockouts, key)
		return 0, nil
	}
	return remaining, nil
}

func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.counters, key)
	delete(s.lockouts, key)
	return nil
}

// Close stops the background cleanup goroutine.
func (s *MemoryStore) Close() {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, c := range s.counters {
		if now.After(c.expiresAt) {
			delete(s.counters, key)
		}
	}
	for key, until := range s.lockouts {
		if now.After(until) {
			delete(s.lockouts, key)
		}
	}
}
