package pipeline

import (
	"context"
	"sort"
	"time"

	"jobhunter/internal/docgen"
	"jobhunter/internal/license"
	"jobhunter/internal/logging"
	"jobhunter/internal/scoring"
	"jobhunter/internal/search"
	"jobhunter/internal/storage"
	"jobhunter/pkg/models"
	"jobhunter/pkg/utils"
)

// Options tune pipeline defaults taken from configuration.
type Options struct {
	AutoApplyThreshold int
	MaxApplications    int
	BatchWorkers       int
	MaxSearchResults   int
}

// Pipeline composes licensing, scoring, document generation and the external
// collaborators into the application workflow. All operations are
// request-scoped; the only shared mutable state lives in the quota ledger.
type Pipeline struct {
	license  *license.Engine
	provider search.Provider
	profiles storage.ProfileRepository
	jobs     storage.JobRepository
	apps     storage.ApplicationRepository
	opts     Options
	logger   logging.Logger
	now      func() time.Time
}

// New creates the orchestration pipeline.
func New(
	engine *license.Engine,
	provider search.Provider,
	profiles storage.ProfileRepository,
	jobs storage.JobRepository,
	apps storage.ApplicationRepository,
	opts Options,
	logger logging.Logger,
) *Pipeline {
	opts.AutoApplyThreshold = utils.GetIntOrDefault(opts.AutoApplyThreshold, 70)
	opts.MaxApplications = utils.GetIntOrDefault(opts.MaxApplications, 10)
	opts.BatchWorkers = utils.GetIntOrDefault(opts.BatchWorkers, 1)
	opts.MaxSearchResults = utils.GetIntOrDefault(opts.MaxSearchResults, 25)

	return &Pipeline{
		license:  engine,
		provider: provider,
		profiles: profiles,
		jobs:     jobs,
		apps:     apps,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// getProfile resolves a profile or reports a typed not-found outcome.
func (p *Pipeline) getProfile(ctx context.Context, id string) (*models.Profile, error) {
	if id == "" {
		return nil, utils.NewValidationError("profile_id is required")
	}

	profile, err := p.profiles.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, utils.NewNotFoundError("profile", id)
	}
	return profile, nil
}

// getJob resolves a stored job posting or reports a typed not-found outcome.
func (p *Pipeline) getJob(ctx context.Context, id string) (*models.JobListing, error) {
	if id == "" {
		return nil, utils.NewValidationError("job_id is required")
	}

	job, err := p.jobs.FindPosting(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.NewNotFoundError("job", id)
	}
	return job, nil
}

// consume meters one unit of a feature, mapping refusals to the typed
// domain outcomes. Feature-not-available (limit exactly zero on a
// non-unlimited tier) is checked before touching the ledger.
func (p *Pipeline) consume(ctx context.Context, subject, feature string) (int, error) {
	limit, err := p.license.Limit(ctx, subject, feature)
	if err != nil {
		return 0, err
	}
	if limit == 0 {
		unlimited, err := p.license.PlanIsUnlimited(ctx, subject)
		if err != nil {
			return 0, err
		}
		if !unlimited {
			tier, err := p.license.Tier(ctx, subject)
			if err != nil {
				return 0, err
			}
			return 0, utils.NewFeatureNotAvailableError(feature, tier)
		}
	}

	allowed, remaining, err := p.license.CheckAndConsume(ctx, subject, feature, 1)
	if err != nil {
		return 0, err
	}
	if !allowed {
		return 0, utils.NewQuotaExceededError(feature, limit, limit-remaining)
	}
	return remaining, nil
}

// FindJobs runs a metered search for the profile and returns listings ranked
// by overall compatibility, best first, tie-broken by provider order. Every
// listing is persisted through the job repository for later stages.
func (p *Pipeline) FindJobs(ctx context.Context, profileID string, criteria search.Criteria) ([]*models.RankedJob, int, error) {
	profile, err := p.getProfile(ctx, profileID)
	if err != nil {
		return nil, 0, err
	}

	remaining, err := p.consume(ctx, profileID, license.FeatureJobSearches)
	if err != nil {
		return nil, 0, err
	}

	if criteria.MaxResults <= 0 {
		criteria.MaxResults = p.opts.MaxSearchResults
	}

	listings, err := p.provider.Search(ctx, criteria)
	if err != nil {
		return nil, remaining, err
	}

	ranked := p.rank(profile, listings)

	for _, rj := range ranked {
		if err := p.jobs.AddPosting(ctx, rj.Job); err != nil {
			p.logger.Warn("failed to persist job posting", map[string]interface{}{
				"job_id": rj.Job.ID,
				"error":  err.Error(),
			})
		}
	}

	p.logger.Info("job search completed", map[string]interface{}{
		"profile_id":      profileID,
		"results":         len(ranked),
		"quota_remaining": remaining,
	})
	return ranked, remaining, nil
}

// rank scores each listing and sorts best first. The sort is stable so equal
// scores keep their provider order.
func (p *Pipeline) rank(profile *models.Profile, listings []*models.JobListing) []*models.RankedJob {
	ranked := make([]*models.RankedJob, 0, len(listings))
	for _, job := range listings {
		ranked = append(ranked, &models.RankedJob{
			Job:      job,
			Analysis: scoring.Analyze(profile, job),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Analysis.OverallScore > ranked[j].Analysis.OverallScore
	})
	return ranked
}

// AnalyzeGap computes the compatibility report for a stored job. Unmetered.
func (p *Pipeline) AnalyzeGap(ctx context.Context, profileID, jobID string) (*models.CompatibilityAnalysis, error) {
	profile, err := p.getProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	job, err := p.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return scoring.Analyze(profile, job), nil
}

// TailorResume meters and synthesizes a tailored resume for a stored job.
func (p *Pipeline) TailorResume(ctx context.Context, req *models.TailorResumeRequest) (*models.TailoredDocument, error) {
	profile, err := p.getProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}
	job, err := p.getJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(ctx, req.ProfileID, license.FeatureResumeTailoring); err != nil {
		return nil, err
	}

	doc := docgen.GenerateResume(profile, job, docgen.ResumeOptions{
		Persona:       docgen.PersonaID(req.PersonaID),
		HighlightGaps: req.HighlightGaps,
		Format:        req.Format,
	})
	doc.GeneratedAt = p.now()
	return doc, nil
}

// GenerateCoverLetter meters and synthesizes a cover letter. On tiers where
// the feature limit is exactly zero this reports feature-not-available and
// leaves the ledger untouched.
func (p *Pipeline) GenerateCoverLetter(ctx context.Context, req *models.CoverLetterRequest) (*models.CoverLetterDocument, error) {
	profile, err := p.getProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}
	job, err := p.getJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(ctx, req.ProfileID, license.FeatureCoverLetters); err != nil {
		return nil, err
	}

	letter := docgen.GenerateCoverLetter(profile, job, docgen.CoverLetterOptions{
		Persona:         docgen.PersonaID(req.PersonaID),
		Tone:            models.Tone(req.Tone),
		Template:        docgen.Template(req.Template),
		StripSalutation: req.StripSalutation,
		StripSignature:  req.StripSignature,
	})
	letter.GeneratedAt = p.now()
	return letter, nil
}

// SubmitApplication creates a submission and moves it draft -> applied.
// Auto submissions additionally meter the auto-apply feature.
func (p *Pipeline) SubmitApplication(ctx context.Context, req *models.SubmitApplicationRequest) (*models.ApplicationSubmission, error) {
	if _, err := p.getProfile(ctx, req.ProfileID); err != nil {
		return nil, err
	}
	if _, err := p.getJob(ctx, req.JobID); err != nil {
		return nil, err
	}

	submissionType := models.SubmissionManual
	if req.AutoSubmit {
		submissionType = models.SubmissionAuto
		if _, err := p.consume(ctx, req.ProfileID, license.FeatureAutoApplies); err != nil {
			return nil, err
		}
	}

	app := &models.ApplicationSubmission{
		ID:               utils.GenerateSubmissionID(),
		ProfileID:        req.ProfileID,
		JobID:            req.JobID,
		Resume:           req.Resume,
		CoverLetter:      req.CoverLetter,
		SubmittedAt:      p.now(),
		Status:           models.StatusDraft,
		SubmissionType:   submissionType,
		ConfirmationCode: utils.GenerateConfirmationCode(),
	}
	if err := Transition(app, models.StatusApplied); err != nil {
		return nil, err
	}

	if err := p.apps.AddApplication(ctx, app); err != nil {
		return nil, err
	}

	p.logger.Info("application submitted", map[string]interface{}{
		"application_id": app.ID,
		"profile_id":     app.ProfileID,
		"job_id":         app.JobID,
		"type":           string(app.SubmissionType),
	})
	return app, nil
}

// updateStatus loads an application, applies a lifecycle transition and
// persists the result.
func (p *Pipeline) updateStatus(ctx context.Context, applicationID string, to models.ApplicationStatus, note string) (*models.ApplicationSubmission, error) {
	if applicationID == "" {
		return nil, utils.NewValidationError("application_id is required")
	}

	app, err := p.apps.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, utils.NewNotFoundError("application", applicationID)
	}

	if err := Transition(app, to); err != nil {
		return nil, err
	}
	if note != "" {
		app.ResponseNote = note
	}

	if err := p.apps.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ScheduleInterview moves an applied application to interviewing.
func (p *Pipeline) ScheduleInterview(ctx context.Context, applicationID, note string) (*models.ApplicationSubmission, error) {
	return p.updateStatus(ctx, applicationID, models.StatusInterviewing, note)
}

// RecordOffer moves an interviewing application to the terminal offer state.
func (p *Pipeline) RecordOffer(ctx context.Context, applicationID, note string) (*models.ApplicationSubmission, error) {
	return p.updateStatus(ctx, applicationID, models.StatusOffer, note)
}

// Reject moves an application to the terminal rejected state.
func (p *Pipeline) Reject(ctx context.Context, applicationID, note string) (*models.ApplicationSubmission, error) {
	return p.updateStatus(ctx, applicationID, models.StatusRejected, note)
}

// ListApplications returns all stored submissions.
func (p *Pipeline) ListApplications(ctx context.Context) ([]*models.ApplicationSubmission, error) {
	return p.apps.ListApplications(ctx)
}

// ApplicationStats summarizes stored submissions.
func (p *Pipeline) ApplicationStats(ctx context.Context) (*models.ApplicationStats, error) {
	return p.apps.GetStats(ctx)
}

// Entitlements exposes the live entitlement snapshot for a subject.
func (p *Pipeline) Entitlements(ctx context.Context, subject string) (*license.Entitlements, error) {
	return p.license.GetEntitlements(ctx, subject)
}

// ResetCounters zeroes all periodic quota counters for a subject.
func (p *Pipeline) ResetCounters(ctx context.Context, subject string) error {
	return p.license.ResetAllCounters(ctx, subject)
}
