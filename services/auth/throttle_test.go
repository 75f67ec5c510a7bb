package auth

import (
	"context"
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func at(seconds int) time.Time { return t0.Add(time.Duration(seconds) * time.Second) }

func TestThrottle_LocksAfterFiveFailures(t *testing.T) {
	ctx := context.Background()
	th := NewMemoryThrottle(60*time.Second, 5)

	// Failures at t=0,10,20,30,40.
	for i := 0; i < 5; i++ {
		if err := th.RecordFailure(ctx, "a@example.com", at(i*10)); err != nil {
			t.Fatal(err)
		}
	}

	status, err := th.IsLockedOut(ctx, "a@example.com", at(45))
	if err != nil {
		t.Fatal(err)
	}
	if !status.Locked {
		t.Fatal("expected lockout after 5 failures within the window")
	}
	// The lock clears when the oldest of the five failures (t=0) ages out of
	// the 60s window, so 15 seconds remain at t=45.
	if status.RemainingSeconds != 15 {
		t.Fatalf("remaining = %d, want 15", status.RemainingSeconds)
	}
}

func TestThrottle_FourFailuresDoNotLock(t *testing.T) {
	ctx := context.Background()
	th := NewMemoryThrottle(60*time.Second, 5)

	for i := 0; i < 4; i++ {
		if err := th.RecordFailure(ctx, "a@example.com", at(i)); err != nil {
			t.Fatal(err)
		}
	}

	status, _ := th.IsLockedOut(ctx, "a@example.com", at(5))
	if status.Locked {
		t.Fatal("4 failures must not lock the account")
	}
}

func TestThrottle_LockExpiresWithWindow(t *testing.T) {
	ctx := context.Background()
	th := NewMemoryThrottle(60*time.Second, 5)

	for i := 0; i < 5; i++ {
		th.RecordFailure(ctx, "a@example.com", at(i*10))
	}

	if status, _ := th.IsLockedOut(ctx, "a@example.com", at(59)); !status.Locked {
		t.Fatal("still inside the window, expected locked")
	}
	// At t=60 the t=0 failure has aged out and only 4 remain.
	if status, _ := th.IsLockedOut(ctx, "a@example.com", at(60)); status.Locked {
		t.Fatalf("window elapsed, expected unlocked (remaining=%d)", status.RemainingSeconds)
	}
}

func TestThrottle_ClearResets(t *testing.T) {
	ctx := context.Background()
	th := NewMemoryThrottle(60*time.Second, 5)

	for i := 0; i < 5; i++ {
		th.RecordFailure(ctx, "a@example.com", at(i))
	}
	if err := th.Clear(ctx, "a@example.com"); err != nil {
		t.Fatal(err)
	}

	if status, _ := th.IsLockedOut(ctx, "a@example.com", at(6)); status.Locked {
		t.Fatal("clear must remove the failure history")
	}
}

func TestThrottle_AccountsIsolated(t *testing.T) {
	ctx := context.Background()
	th := NewMemoryThrottle(60*time.Second, 5)

	for i := 0; i < 5; i++ {
		th.RecordFailure(ctx, "a@example.com", at(i))
	}

	if status, _ := th.IsLockedOut(ctx, "b@example.com", at(6)); status.Locked {
		t.Fatal("failures on one account must not lock another")
	}
}

func TestThrottle_FailuresDuringLockExtendIt(t *testing.T) {
	ctx := context.Background()
	th := NewMemoryThrottle(60*time.Second, 5)

	for i := 0; i < 5; i++ {
		th.RecordFailure(ctx, "a@example.com", at(i*10))
	}
	// A sixth failure at t=50 shifts the 5-newest pivot from t=0 to t=10.
	th.RecordFailure(ctx, "a@example.com", at(50))

	status, _ := th.IsLockedOut(ctx, "a@example.com", at(65))
	if !status.Locked {
		t.Fatal("expected still locked after failure during lockout")
	}
	if status.RemainingSeconds != 5 {
		t.Fatalf("remaining = %d, want 5", status.RemainingSeconds)
	}
}

func TestEvaluateLock_RemainingRoundsUp(t *testing.T) {
	attempts := []time.Time{t0}
	for i := 1; i < 5; i++ {
		attempts = append(attempts, at(i))
	}

	status := evaluateLock(attempts, t0.Add(44*time.Second+500*time.Millisecond), 60*time.Second, 5)
	if !status.Locked {
		t.Fatal("expected locked")
	}
	if status.RemainingSeconds != 16 {
		t.Fatalf("remaining = %d, want 16 (15.5s rounded up)", status.RemainingSeconds)
	}
}
