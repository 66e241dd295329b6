package license

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLedger is a Ledger backed by Redis counters. INCRBY is atomic per key,
// which satisfies the engine's serialization contract without client-side
// locking.
type RedisLedger struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisLedger wraps an existing Redis client.
func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client, now: time.Now}
}

// NewRedisLedgerFromURL connects to Redis using a redis:// URL.
func NewRedisLedgerFromURL(url, password string, db int, timeout time.Duration) (*RedisLedger, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	opts.DialTimeout = timeout
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout

	return NewRedisLedger(redis.NewClient(opts)), nil
}

func (l *RedisLedger) usageKey(subject, feature string) string {
	return fmt.Sprintf("quota:%s:%s", subject, feature)
}

func (l *RedisLedger) resetKey(subject, feature string) string {
	return fmt.Sprintf("quota_reset:%s:%s", subject, feature)
}

// GetUsage returns the current counter value, zero for unseen keys.
func (l *RedisLedger) GetUsage(ctx context.Context, subject, feature string) (int, error) {
	val, err := l.client.Get(ctx, l.usageKey(subject, feature)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read usage counter: %w", err)
	}
	return val, nil
}

// Increment atomically adds to the counter and returns the new total. The
// reset boundary is recorded once per key with SETNX.
func (l *RedisLedger) Increment(ctx context.Context, subject, feature string, by int) (int, error) {
	total, err := l.client.IncrBy(ctx, l.usageKey(subject, feature), int64(by)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment usage counter: %w", err)
	}

	boundary := nextMonthBoundary(l.now()).Format(time.RFC3339)
	if err := l.client.SetNX(ctx, l.resetKey(subject, feature), boundary, 0).Err(); err != nil {
		return int(total), fmt.Errorf("failed to record reset time: %w", err)
	}

	return int(total), nil
}

// Reset deletes the counter and its reset boundary.
func (l *RedisLedger) Reset(ctx context.Context, subject, feature string) error {
	if err := l.client.Del(ctx, l.usageKey(subject, feature), l.resetKey(subject, feature)).Err(); err != nil {
		return fmt.Errorf("failed to reset usage counter: %w", err)
	}
	return nil
}

// GetResetTime returns the recorded reset boundary, or nil for unseen keys.
func (l *RedisLedger) GetResetTime(ctx context.Context, subject, feature string) (*time.Time, error) {
	raw, err := l.client.Get(ctx, l.resetKey(subject, feature)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reset time: %w", err)
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored reset time: %w", err)
	}
	return &t, nil
}

// Ping checks connectivity to the backing Redis instance.
func (l *RedisLedger) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close closes the underlying Redis connection.
func (l *RedisLedger) Close() error {
	return l.client.Close()
}
