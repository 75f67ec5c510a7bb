// Package auth implements account registration, sign-in with login
// throttling, token revocation and the password reset flow.
package auth

import (
	"context"
	"fmt"
	"time"
)

// LockStatus is the outcome of a lockout check.
type LockStatus struct {
	Locked bool
	// RemainingSeconds is how long the caller must wait before another
	// attempt, rounded up. Zero when not locked.
	RemainingSeconds int
}

// LoginThrottle tracks failed sign-in attempts per account and locks the
// account once too many failures land inside a sliding window. Successful
// sign-ins clear the history. Implementations must be safe for concurrent
// use; the single-process store lives in this package and a Redis-backed one
// covers multi-instance deployments.
type LoginThrottle interface {
	RecordFailure(ctx context.Context, id string, at time.Time) error
	IsLockedOut(ctx context.Context, id string, now time.Time) (LockStatus, error)
	Clear(ctx context.Context, id string) error
}

// LockedError is returned from sign-in while the account is locked out.
type LockedError struct {
	RemainingSeconds int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("too many failed attempts, try again in %d seconds", e.RemainingSeconds)
}

// evaluateLock applies the sliding-window rule to a raw attempt history.
// The account is locked when at least maxAttempts failures fall within
// window of now; the lock expires when the maxAttempts-newest failure ages
// out, so the remaining wait is measured from that attempt.
func evaluateLock(attempts []time.Time, now time.Time, window time.Duration, maxAttempts int) LockStatus {
	cutoff := now.Add(-window)
	recent := attempts[:0:0]
	for _, at := range attempts {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}
	if len(recent) < maxAttempts {
		return LockStatus{}
	}
	// recent is append-ordered oldest first; the attempt that must age out
	// is the maxAttempts-newest one.
	pivot := recent[len(recent)-maxAttempts]
	remaining := window - now.Sub(pivot)
	if remaining <= 0 {
		return LockStatus{}
	}
	secs := int((remaining + time.Second - 1) / time.Second)
	return LockStatus{Locked: true, RemainingSeconds: secs}
}
