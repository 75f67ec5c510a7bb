package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const throttleKeyPrefix = "login_attempts:"

// RedisThrottle is a LoginThrottle backed by a Redis sorted set per account,
// scored by attempt time in nanoseconds. All replicas sharing the Redis
// instance see the same window.
type RedisThrottle struct {
	client      *redis.Client
	window      time.Duration
	maxAttempts int
}

// NewRedisThrottle builds a Redis-backed throttle with the given window and
// attempt cap.
func NewRedisThrottle(client *redis.Client, window time.Duration, maxAttempts int) *RedisThrottle {
	return &RedisThrottle{client: client, window: window, maxAttempts: maxAttempts}
}

func (t *RedisThrottle) key(id string) string {
	return throttleKeyPrefix + id
}

func (t *RedisThrottle) RecordFailure(ctx context.Context, id string, at time.Time) error {
	key := t.key(id)
	// Member includes a uuid fragment so two failures in the same nanosecond
	// still count separately.
	member := fmt.Sprintf("%d:%s", at.UnixNano(), uuid.NewString()[:8])
	pipe := t.client.TxPipeline()
	pipe.ZAdd(ctx, key, &redis.Z{Score: float64(at.UnixNano()), Member: member})
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(at.Add(-t.window).UnixNano(), 10))
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	return nil
}

func (t *RedisThrottle) IsLockedOut(ctx context.Context, id string, now time.Time) (LockStatus, error) {
	cutoff := now.Add(-t.window)
	entries, err := t.client.ZRangeByScoreWithScores(ctx, t.key(id), &redis.ZRangeBy{
		Min: "(" + strconv.FormatInt(cutoff.UnixNano(), 10),
		Max: "+inf",
	}).Result()
	if err != nil && err != redis.Nil {
		return LockStatus{}, fmt.Errorf("failed to read login failures: %w", err)
	}
	attempts := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		attempts = append(attempts, time.Unix(0, int64(e.Score)))
	}
	return evaluateLock(attempts, now, t.window, t.maxAttempts), nil
}

func (t *RedisThrottle) Clear(ctx context.Context, id string) error {
	if err := t.client.Del(ctx, t.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to clear login failures: %w", err)
	}
	return nil
}
