package license

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedgerIncrementAndGet(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	used, err := ledger.GetUsage(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	total, err := ledger.Increment(ctx, "alice", FeatureJobSearches, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	total, err = ledger.Increment(ctx, "alice", FeatureJobSearches, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	// Counters are isolated per subject and per feature.
	used, err = ledger.GetUsage(ctx, "alice", FeatureResumeTailoring)
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	used, err = ledger.GetUsage(ctx, "bob", FeatureJobSearches)
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}

func TestMemoryLedgerReset(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	_, err := ledger.Increment(ctx, "alice", FeatureJobSearches, 5)
	require.NoError(t, err)

	require.NoError(t, ledger.Reset(ctx, "alice", FeatureJobSearches))

	used, err := ledger.GetUsage(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	resetsAt, err := ledger.GetResetTime(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.Nil(t, resetsAt)
}

func TestMemoryLedgerRecordsResetBoundary(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	ledger.now = func() time.Time {
		return time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	}

	// No boundary before the first increment.
	resetsAt, err := ledger.GetResetTime(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.Nil(t, resetsAt)

	_, err = ledger.Increment(ctx, "alice", FeatureJobSearches, 1)
	require.NoError(t, err)

	resetsAt, err = ledger.GetResetTime(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	require.NotNil(t, resetsAt)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), *resetsAt)

	// Later increments keep the original boundary.
	ledger.now = func() time.Time {
		return time.Date(2025, time.March, 25, 18, 0, 0, 0, time.UTC)
	}
	_, err = ledger.Increment(ctx, "alice", FeatureJobSearches, 1)
	require.NoError(t, err)

	again, err := ledger.GetResetTime(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.Equal(t, *resetsAt, *again)
}

func TestNextMonthBoundary(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"mid month",
			time.Date(2025, time.June, 15, 13, 45, 0, 0, time.UTC),
			time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"december rolls the year",
			time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
			time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"first of month still advances",
			time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextMonthBoundary(tt.in))
		})
	}
}
