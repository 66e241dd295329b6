package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"jobhunter/internal/license"
	"jobhunter/internal/logging"
	"jobhunter/internal/search"
	"jobhunter/internal/storage"
	"jobhunter/pkg/models"
	"jobhunter/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns canned listings and counts invocations.
type stubProvider struct {
	listings []*models.JobListing
	err      error
	calls    int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, _ search.Criteria) ([]*models.JobListing, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.listings, nil
}

type testFixture struct {
	pipeline *Pipeline
	engine   *license.Engine
	provider *stubProvider
	profiles *storage.MemoryProfileRepository
	jobs     *storage.MemoryJobRepository
	apps     storage.ApplicationRepository
}

type fixtureOption func(*testFixture)

func withListings(listings ...*models.JobListing) fixtureOption {
	return func(f *testFixture) { f.provider.listings = listings }
}

func withAppRepo(apps storage.ApplicationRepository) fixtureOption {
	return func(f *testFixture) { f.apps = apps }
}

func newFixture(t *testing.T, opts ...fixtureOption) *testFixture {
	t.Helper()

	profiles := storage.NewMemoryProfileRepository()
	profiles.Seed(
		&models.Profile{
			ID:      "free-profile",
			Name:    "Dana Whitfield",
			Title:   "Software Engineer",
			Summary: "Backend engineer building Go services.",
			Tier:    license.TierFree,
			Skills: []models.Skill{
				{Name: "Go", Category: "language", Level: "advanced"},
				{Name: "PostgreSQL", Category: "database", Level: "intermediate"},
			},
			ExperienceTitles: []string{"Software Engineer"},
		},
		&models.Profile{
			ID:      "pro-profile",
			Name:    "Marcus Lin",
			Title:   "Senior Software Engineer",
			Summary: "Senior engineer building distributed systems.",
			Tier:    license.TierPro,
			Skills: []models.Skill{
				{Name: "Go", Category: "language", Level: "expert"},
				{Name: "Kubernetes", Category: "infrastructure", Level: "advanced"},
			},
			ExperienceTitles: []string{"Senior Software Engineer"},
		},
		&models.Profile{
			ID:      "enterprise-profile",
			Name:    "Priya Raman",
			Title:   "Staff Engineer",
			Summary: "Staff engineer leading platform architecture.",
			Tier:    license.TierEnterprise,
			Skills: []models.Skill{
				{Name: "Go", Category: "language", Level: "expert"},
			},
			ExperienceTitles: []string{"Staff Engineer"},
		},
	)

	resolver := license.TierResolverFunc(func(ctx context.Context, subject string) (string, error) {
		profile, err := profiles.Find(ctx, subject)
		if err != nil {
			return "", err
		}
		if profile == nil {
			return "", utils.NewNotFoundError("profile", subject)
		}
		return profile.Tier, nil
	})

	logger := logging.NewMultiLogger()
	f := &testFixture{
		engine:   license.NewEngine(license.NewMemoryLedger(), resolver, logger),
		provider: &stubProvider{},
		profiles: profiles,
		jobs:     storage.NewMemoryJobRepository(),
		apps:     storage.NewMemoryApplicationRepository(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.pipeline = New(f.engine, f.provider, f.profiles, f.jobs, f.apps, Options{
		AutoApplyThreshold: 70,
		MaxApplications:    10,
		BatchWorkers:       1,
		MaxSearchResults:   25,
	}, logger)
	f.pipeline.now = func() time.Time {
		return time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func listing(id string, remote models.RemoteMode) *models.JobListing {
	return &models.JobListing{
		ID:           id,
		Title:        "Go Developer",
		Company:      "Acme",
		Location:     "Berlin",
		RemoteMode:   remote,
		Technologies: []string{"Go"},
		Description:  "Platform services team.",
		Source:       "stub",
	}
}

func TestFindJobsRanksBestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, withListings(
		listing("onsite-job", models.RemoteModeOnsite),
		listing("remote-job", models.RemoteModeRemote),
	))

	ranked, remaining, err := f.pipeline.FindJobs(ctx, "free-profile", search.Criteria{Keywords: []string{"go"}})
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "remote-job", ranked[0].Job.ID)
	assert.Equal(t, "onsite-job", ranked[1].Job.ID)
	assert.Greater(t, ranked[0].Analysis.OverallScore, ranked[1].Analysis.OverallScore)
	assert.Equal(t, 4, remaining)

	// Listings are persisted for later pipeline stages.
	stored, err := f.jobs.FindPosting(ctx, "remote-job")
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestFindJobsStableOrderForEqualScores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, withListings(
		listing("first", models.RemoteModeRemote),
		listing("second", models.RemoteModeRemote),
		listing("third", models.RemoteModeRemote),
	))

	ranked, _, err := f.pipeline.FindJobs(ctx, "free-profile", search.Criteria{})
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	// Identical listings score identically; provider order is preserved.
	assert.Equal(t, "first", ranked[0].Job.ID)
	assert.Equal(t, "second", ranked[1].Job.ID)
	assert.Equal(t, "third", ranked[2].Job.ID)
}

func TestFindJobsExhaustsFreeQuota(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, withListings(listing("job-1", models.RemoteModeRemote)))

	for i := 0; i < 5; i++ {
		_, remaining, err := f.pipeline.FindJobs(ctx, "free-profile", search.Criteria{})
		require.NoError(t, err)
		assert.Equal(t, 4-i, remaining)
	}

	_, _, err := f.pipeline.FindJobs(ctx, "free-profile", search.Criteria{})
	var quota *utils.QuotaExceededError
	require.True(t, errors.As(err, &quota))
	assert.Equal(t, license.FeatureJobSearches, quota.Feature)
	assert.Equal(t, 5, quota.Limit)
	assert.Equal(t, 5, quota.Used)

	// The refused search never reached the provider.
	assert.Equal(t, 5, f.provider.calls)
}

func TestFindJobsUnknownProfile(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.pipeline.FindJobs(context.Background(), "nobody", search.Criteria{})
	var notFound *utils.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "profile", notFound.Kind)
}

func TestFindJobsProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.provider.err = utils.NewProviderError("stub", fmt.Errorf("connection refused"))

	_, _, err := f.pipeline.FindJobs(context.Background(), "pro-profile", search.Criteria{})
	var provider *utils.ProviderError
	assert.True(t, errors.As(err, &provider))
}

func TestTailorResumeMetersQuota(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.jobs.AddPosting(ctx, listing("job-1", models.RemoteModeRemote)))

	req := &models.TailorResumeRequest{ProfileID: "free-profile", JobID: "job-1"}
	for i := 0; i < 3; i++ {
		doc, err := f.pipeline.TailorResume(ctx, req)
		require.NoError(t, err)
		assert.NotEmpty(t, doc.Content)
		assert.False(t, doc.GeneratedAt.IsZero())
	}

	_, err := f.pipeline.TailorResume(ctx, req)
	var quota *utils.QuotaExceededError
	require.True(t, errors.As(err, &quota))
	assert.Equal(t, license.FeatureResumeTailoring, quota.Feature)
	assert.Equal(t, 3, quota.Limit)
}

func TestTailorResumeUnlimitedTier(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.jobs.AddPosting(ctx, listing("job-1", models.RemoteModeRemote)))

	req := &models.TailorResumeRequest{ProfileID: "enterprise-profile", JobID: "job-1"}
	for i := 0; i < 20; i++ {
		_, err := f.pipeline.TailorResume(ctx, req)
		require.NoError(t, err)
	}

	used, err := f.engine.Usage(ctx, "enterprise-profile", license.FeatureResumeTailoring)
	require.NoError(t, err)
	assert.Equal(t, 20, used)
}

func TestTailorResumeUnknownJob(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.TailorResume(context.Background(), &models.TailorResumeRequest{
		ProfileID: "free-profile",
		JobID:     "missing-job",
	})
	var notFound *utils.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "job", notFound.Kind)

	// A failed lookup consumes nothing.
	used, err := f.engine.Usage(context.Background(), "free-profile", license.FeatureResumeTailoring)
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}

func TestGenerateCoverLetterDisabledOnFreeTier(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.jobs.AddPosting(ctx, listing("job-1", models.RemoteModeRemote)))

	_, err := f.pipeline.GenerateCoverLetter(ctx, &models.CoverLetterRequest{
		ProfileID: "free-profile",
		JobID:     "job-1",
	})

	var notAvailable *utils.FeatureNotAvailableError
	require.True(t, errors.As(err, &notAvailable))
	assert.Equal(t, license.FeatureCoverLetters, notAvailable.Feature)
	assert.Equal(t, license.TierFree, notAvailable.Tier)

	// The refusal never touches the ledger.
	used, err := f.engine.Usage(ctx, "free-profile", license.FeatureCoverLetters)
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}

func TestGenerateCoverLetterProTier(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.jobs.AddPosting(ctx, listing("job-1", models.RemoteModeRemote)))

	letter, err := f.pipeline.GenerateCoverLetter(ctx, &models.CoverLetterRequest{
		ProfileID: "pro-profile",
		JobID:     "job-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, letter.Content)
	assert.False(t, letter.GeneratedAt.IsZero())

	used, err := f.engine.Usage(ctx, "pro-profile", license.FeatureCoverLetters)
	require.NoError(t, err)
	assert.Equal(t, 1, used)
}

func TestSubmitApplicationManual(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.jobs.AddPosting(ctx, listing("job-1", models.RemoteModeRemote)))

	app, err := f.pipeline.SubmitApplication(ctx, &models.SubmitApplicationRequest{
		ProfileID: "free-profile",
		JobID:     "job-1",
		Resume:    "resume text",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Equal(t, models.SubmissionManual, app.SubmissionType)
	assert.NotEmpty(t, app.ID)
	assert.NotEmpty(t, app.ConfirmationCode)

	// Manual submissions never meter the auto-apply feature.
	used, err := f.engine.Usage(ctx, "free-profile", license.FeatureAutoApplies)
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	stored, err := f.apps.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusApplied, stored.Status)
}

func TestSubmitApplicationAutoRequiresEntitlement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.jobs.AddPosting(ctx, listing("job-1", models.RemoteModeRemote)))

	_, err := f.pipeline.SubmitApplication(ctx, &models.SubmitApplicationRequest{
		ProfileID:  "free-profile",
		JobID:      "job-1",
		AutoSubmit: true,
	})
	var notAvailable *utils.FeatureNotAvailableError
	require.True(t, errors.As(err, &notAvailable))
	assert.Equal(t, license.FeatureAutoApplies, notAvailable.Feature)

	app, err := f.pipeline.SubmitApplication(ctx, &models.SubmitApplicationRequest{
		ProfileID:  "pro-profile",
		JobID:      "job-1",
		AutoSubmit: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionAuto, app.SubmissionType)

	used, err := f.engine.Usage(ctx, "pro-profile", license.FeatureAutoApplies)
	require.NoError(t, err)
	assert.Equal(t, 1, used)
}

func TestApplicationLifecycleFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.jobs.AddPosting(ctx, listing("job-1", models.RemoteModeRemote)))

	app, err := f.pipeline.SubmitApplication(ctx, &models.SubmitApplicationRequest{
		ProfileID: "free-profile",
		JobID:     "job-1",
	})
	require.NoError(t, err)

	interviewing, err := f.pipeline.ScheduleInterview(ctx, app.ID, "phone screen on Friday")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterviewing, interviewing.Status)
	assert.Equal(t, "phone screen on Friday", interviewing.ResponseNote)

	offered, err := f.pipeline.RecordOffer(ctx, app.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffer, offered.Status)
	assert.Equal(t, "phone screen on Friday", offered.ResponseNote)

	// Offer is terminal.
	_, err = f.pipeline.Reject(ctx, app.ID, "")
	var lifecycle *utils.LifecycleError
	assert.True(t, errors.As(err, &lifecycle))
}

func TestApplicationTransitionUnknownApplication(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.ScheduleInterview(context.Background(), "app_missing", "")
	var notFound *utils.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "application", notFound.Kind)
}

func TestApplicationStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.jobs.AddPosting(ctx, listing("job-1", models.RemoteModeRemote)))

	first, err := f.pipeline.SubmitApplication(ctx, &models.SubmitApplicationRequest{ProfileID: "free-profile", JobID: "job-1"})
	require.NoError(t, err)
	_, err = f.pipeline.SubmitApplication(ctx, &models.SubmitApplicationRequest{ProfileID: "pro-profile", JobID: "job-1"})
	require.NoError(t, err)

	_, err = f.pipeline.Reject(ctx, first.ID, "position filled")
	require.NoError(t, err)

	stats, err := f.pipeline.ApplicationStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[models.StatusApplied])
	assert.Equal(t, 1, stats.ByStatus[models.StatusRejected])
}

func TestEntitlementsReflectConsumption(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, withListings(listing("job-1", models.RemoteModeRemote)))

	_, _, err := f.pipeline.FindJobs(ctx, "free-profile", search.Criteria{})
	require.NoError(t, err)

	snapshot, err := f.pipeline.Entitlements(ctx, "free-profile")
	require.NoError(t, err)
	assert.Equal(t, license.TierFree, snapshot.Tier)

	for _, fe := range snapshot.Features {
		if fe.Feature == license.FeatureJobSearches {
			assert.Equal(t, 5, fe.Limit)
			assert.Equal(t, 1, fe.Used)
		}
	}

	require.NoError(t, f.pipeline.ResetCounters(ctx, "free-profile"))
	snapshot, err = f.pipeline.Entitlements(ctx, "free-profile")
	require.NoError(t, err)
	for _, fe := range snapshot.Features {
		assert.Equal(t, 0, fe.Used)
	}
}
