package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryThrottle is an in-process LoginThrottle. Suitable for a single
// instance and for tests; deployments with more than one replica should use
// the Redis-backed store so the window is shared.
type MemoryThrottle struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	window      time.Duration
	maxAttempts int
}

// NewMemoryThrottle builds an in-process throttle with the given window and
// attempt cap.
func NewMemoryThrottle(window time.Duration, maxAttempts int) *MemoryThrottle {
	return &MemoryThrottle{
		attempts:    make(map[string][]time.Time),
		window:      window,
		maxAttempts: maxAttempts,
	}
}

func (t *MemoryThrottle) RecordFailure(_ context.Context, id string, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts[id] = append(t.prune(id, at), at)
	return nil
}

func (t *MemoryThrottle) IsLockedOut(_ context.Context, id string, now time.Time) (LockStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return evaluateLock(t.attempts[id], now, t.window, t.maxAttempts), nil
}

func (t *MemoryThrottle) Clear(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, id)
	return nil
}

// prune drops attempts that have aged out of the window so a noisy account
// cannot grow its history without bound. Caller holds the mutex.
func (t *MemoryThrottle) prune(id string, now time.Time) []time.Time {
	cutoff := now.Add(-t.window)
	kept := t.attempts[id][:0]
	for _, at := range t.attempts[id] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	return kept
}
