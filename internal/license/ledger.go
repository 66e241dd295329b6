package license

import (
	"context"
	"sync"
	"time"
)

// Ledger is the per-(subject, feature) usage counter the engine consumes.
// Implementations must serialize Increment per key: concurrent callers
// incrementing the same key must never lose an update. The engine places no
// other requirement on the backing store.
type Ledger interface {
	GetUsage(ctx context.Context, subject, feature string) (int, error)
	Increment(ctx context.Context, subject, feature string, by int) (int, error)
	Reset(ctx context.Context, subject, feature string) error
	GetResetTime(ctx context.Context, subject, feature string) (*time.Time, error)
}

// MemoryLedger is an in-process Ledger backed by a mutex-guarded map.
// Suitable for single-node deployments and tests.
type MemoryLedger struct {
	mu       sync.Mutex
	usage    map[string]int
	resetAt  map[string]time.Time
	now      func() time.Time
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		usage:   make(map[string]int),
		resetAt: make(map[string]time.Time),
		now:     time.Now,
	}
}

func ledgerKey(subject, feature string) string {
	return subject + ":" + feature
}

// GetUsage returns the current counter value, zero for unseen keys.
func (l *MemoryLedger) GetUsage(_ context.Context, subject, feature string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.usage[ledgerKey(subject, feature)], nil
}

// Increment atomically adds to the counter and returns the new total. The
// first increment of a key records the next calendar-month boundary as its
// reset time.
func (l *MemoryLedger) Increment(_ context.Context, subject, feature string, by int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := ledgerKey(subject, feature)
	if _, seen := l.resetAt[key]; !seen {
		l.resetAt[key] = nextMonthBoundary(l.now())
	}
	l.usage[key] += by
	return l.usage[key], nil
}

// Reset zeroes the counter and clears its reset time.
func (l *MemoryLedger) Reset(_ context.Context, subject, feature string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := ledgerKey(subject, feature)
	delete(l.usage, key)
	delete(l.resetAt, key)
	return nil
}

// GetResetTime returns the recorded reset boundary, or nil for unseen keys.
func (l *MemoryLedger) GetResetTime(_ context.Context, subject, feature string) (*time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.resetAt[ledgerKey(subject, feature)]; ok {
		out := t
		return &out, nil
	}
	return nil, nil
}

// NextResetBoundary reports when monthly counters next roll over after t.
func NextResetBoundary(t time.Time) time.Time {
	return nextMonthBoundary(t)
}

// nextMonthBoundary returns midnight UTC on the first day of the month
// following t.
func nextMonthBoundary(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
