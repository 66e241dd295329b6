package pipeline

import (
	"context"
	"fmt"
	"sync"

	"jobhunter/internal/docgen"
	"jobhunter/internal/license"
	"jobhunter/internal/search"
	"jobhunter/pkg/models"
	"jobhunter/pkg/utils"
)

// batchOutcome is the per-job result slot. Exactly one of app and err is set.
type batchOutcome struct {
	app *models.ApplicationSubmission
	err *models.BatchApplyError
}

// BatchApply runs one metered search, keeps the listings whose overall score
// meets the threshold, caps them at the application limit and submits each
// one with freshly generated documents. A failing job never aborts the batch;
// it is reported in the result's error list instead. Skipped counts every
// found listing that was not considered for submission.
func (p *Pipeline) BatchApply(ctx context.Context, req *models.BatchApplyRequest) (*models.BatchApplyResult, error) {
	profile, err := p.getProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	threshold := req.AutoApplyThreshold
	if threshold <= 0 {
		threshold = p.opts.AutoApplyThreshold
	}
	maxApps := req.MaxApplications
	if maxApps <= 0 {
		maxApps = p.opts.MaxApplications
	}

	if _, err := p.consume(ctx, req.ProfileID, license.FeatureJobSearches); err != nil {
		return nil, err
	}

	listings, err := p.provider.Search(ctx, search.Criteria{
		Keywords:   req.Keywords,
		Location:   req.Location,
		Seniority:  req.Seniority,
		MaxResults: p.opts.MaxSearchResults,
	})
	if err != nil {
		return nil, err
	}

	ranked := p.rank(profile, listings)

	eligible := make([]*models.RankedJob, 0, maxApps)
	for _, rj := range ranked {
		if rj.Analysis.OverallScore < threshold {
			continue
		}
		eligible = append(eligible, rj)
		if len(eligible) == maxApps {
			break
		}
	}

	outcomes := make([]batchOutcome, len(eligible))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.opts.BatchWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = p.applyOne(ctx, profile, eligible[i], req.PersonaID)
			}
		}()
	}
	for i := range eligible {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := &models.BatchApplyResult{
		Applications: make([]*models.ApplicationSubmission, 0, len(eligible)),
		Errors:       make([]models.BatchApplyError, 0),
		Skipped:      len(listings) - len(eligible),
	}
	for _, out := range outcomes {
		if out.err != nil {
			result.Errors = append(result.Errors, *out.err)
			continue
		}
		result.Applications = append(result.Applications, out.app)
	}

	p.logger.Info("batch apply completed", map[string]interface{}{
		"profile_id": req.ProfileID,
		"found":      len(listings),
		"applied":    len(result.Applications),
		"failed":     len(result.Errors),
		"skipped":    result.Skipped,
	})
	return result, nil
}

// applyOne generates documents and submits a single application. A panic in
// any stage is contained and reported as that job's error.
func (p *Pipeline) applyOne(ctx context.Context, profile *models.Profile, rj *models.RankedJob, personaID string) (out batchOutcome) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("batch application panicked", map[string]interface{}{
				"job_id": rj.Job.ID,
				"panic":  fmt.Sprintf("%v", r),
			})
			out = batchOutcome{err: &models.BatchApplyError{
				JobID:   rj.Job.ID,
				Message: fmt.Sprintf("internal error: %v", r),
			}}
		}
	}()

	if _, err := p.consume(ctx, profile.ID, license.FeatureAutoApplies); err != nil {
		return batchOutcome{err: &models.BatchApplyError{JobID: rj.Job.ID, Message: err.Error()}}
	}

	persona := docgen.PersonaID(personaID)
	resume := docgen.GenerateResume(profile, rj.Job, docgen.ResumeOptions{Persona: persona})
	letter := docgen.GenerateCoverLetter(profile, rj.Job, docgen.CoverLetterOptions{Persona: persona})

	if err := p.jobs.AddPosting(ctx, rj.Job); err != nil {
		return batchOutcome{err: &models.BatchApplyError{JobID: rj.Job.ID, Message: err.Error()}}
	}

	app := &models.ApplicationSubmission{
		ID:               utils.GenerateSubmissionID(),
		ProfileID:        profile.ID,
		JobID:            rj.Job.ID,
		Resume:           resume.Content,
		CoverLetter:      letter.Content,
		SubmittedAt:      p.now(),
		Status:           models.StatusDraft,
		SubmissionType:   models.SubmissionAuto,
		ConfirmationCode: utils.GenerateConfirmationCode(),
	}
	if err := Transition(app, models.StatusApplied); err != nil {
		return batchOutcome{err: &models.BatchApplyError{JobID: rj.Job.ID, Message: err.Error()}}
	}
	if err := p.apps.AddApplication(ctx, app); err != nil {
		return batchOutcome{err: &models.BatchApplyError{JobID: rj.Job.ID, Message: err.Error()}}
	}
	return batchOutcome{app: app}
}
