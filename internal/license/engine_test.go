package license

import (
	"context"
	"sync"
	"testing"

	"jobhunter/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(tiers map[string]string) *Engine {
	resolver := TierResolverFunc(func(_ context.Context, subject string) (string, error) {
		return tiers[subject], nil
	})
	return NewEngine(NewMemoryLedger(), resolver, logging.NewMultiLogger())
}

func TestCheckAndConsumeExhaustsMonthlyQuota(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(map[string]string{"alice": TierFree})

	for i := 0; i < 5; i++ {
		allowed, remaining, err := engine.CheckAndConsume(ctx, "alice", FeatureJobSearches, 1)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 4-i, remaining)
	}

	// The sixth attempt is refused and does not advance the counter.
	allowed, remaining, err := engine.CheckAndConsume(ctx, "alice", FeatureJobSearches, 1)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	used, err := engine.Usage(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.Equal(t, 5, used)
}

func TestCheckAndConsumeUnlimited(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(map[string]string{"corp": TierEnterprise})

	for i := 0; i < 20; i++ {
		allowed, remaining, err := engine.CheckAndConsume(ctx, "corp", FeatureResumeTailoring, 1)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, Unlimited, remaining)
	}

	// Usage telemetry still tracks uncapped consumption.
	used, err := engine.Usage(ctx, "corp", FeatureResumeTailoring)
	require.NoError(t, err)
	assert.Equal(t, 20, used)
}

func TestCheckAndConsumeDisabledFeatureLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(map[string]string{"alice": TierFree})

	allowed, remaining, err := engine.CheckAndConsume(ctx, "alice", FeatureCoverLetters, 1)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	used, err := engine.Usage(ctx, "alice", FeatureCoverLetters)
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}

func TestCheckAndConsumeAbsentFeature(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(map[string]string{"alice": TierFree})

	allowed, remaining, err := engine.CheckAndConsume(ctx, "alice", "hunter_headhunter_calls", 1)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
}

func TestCheckAndConsumeUnknownTier(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(map[string]string{"alice": "platinum"})

	_, _, err := engine.CheckAndConsume(ctx, "alice", FeatureJobSearches, 1)
	assert.Error(t, err)
}

func TestCheckAndConsumeConcurrentNeverOvershoots(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(map[string]string{"alice": TierFree})

	const attempts = 40
	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _, err := engine.CheckAndConsume(ctx, "alice", FeatureJobSearches, 1)
			assert.NoError(t, err)
			results <- allowed
		}()
	}
	wg.Wait()
	close(results)

	granted := 0
	for allowed := range results {
		if allowed {
			granted++
		}
	}
	assert.Equal(t, 5, granted)

	used, err := engine.Usage(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.Equal(t, 5, used)
}

func TestCanUse(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(map[string]string{
		"alice": TierFree,
		"corp":  TierEnterprise,
	})

	ok, err := engine.CanUse(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = engine.CanUse(ctx, "alice", FeatureCoverLetters)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = engine.CanUse(ctx, "corp", FeatureCoverLetters)
	require.NoError(t, err)
	assert.True(t, ok)

	// Peeking never consumes.
	used, err := engine.Usage(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}

func TestResetAllCountersSkipsLifetimeCaps(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(map[string]string{"alice": TierFree})

	_, _, err := engine.CheckAndConsume(ctx, "alice", FeatureJobSearches, 1)
	require.NoError(t, err)
	_, _, err = engine.CheckAndConsume(ctx, "alice", FeaturePersonas, 1)
	require.NoError(t, err)

	require.NoError(t, engine.ResetAllCounters(ctx, "alice"))

	used, err := engine.Usage(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	// The lifetime persona counter survives the reset.
	used, err = engine.Usage(ctx, "alice", FeaturePersonas)
	require.NoError(t, err)
	assert.Equal(t, 1, used)

	// Resetting an already clean ledger is a no-op.
	require.NoError(t, engine.ResetAllCounters(ctx, "alice"))
	used, err = engine.Usage(ctx, "alice", FeatureJobSearches)
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}

func TestGetEntitlements(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(map[string]string{"alice": TierFree})

	_, _, err := engine.CheckAndConsume(ctx, "alice", FeatureJobSearches, 1)
	require.NoError(t, err)
	_, _, err = engine.CheckAndConsume(ctx, "alice", FeatureJobSearches, 1)
	require.NoError(t, err)

	snapshot, err := engine.GetEntitlements(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", snapshot.Subject)
	assert.Equal(t, TierFree, snapshot.Tier)
	require.Len(t, snapshot.Features, 5)

	// Rows come back sorted by feature key.
	for i := 1; i < len(snapshot.Features); i++ {
		assert.Less(t, snapshot.Features[i-1].Feature, snapshot.Features[i].Feature)
	}

	byFeature := make(map[string]FeatureEntitlement)
	for _, fe := range snapshot.Features {
		byFeature[fe.Feature] = fe
	}

	searches := byFeature[FeatureJobSearches]
	assert.Equal(t, 5, searches.Limit)
	assert.Equal(t, 2, searches.Used)
	assert.NotNil(t, searches.ResetsAt)

	letters := byFeature[FeatureCoverLetters]
	assert.Equal(t, 0, letters.Limit)
	assert.Equal(t, 0, letters.Used)
	assert.Nil(t, letters.ResetsAt)
}
