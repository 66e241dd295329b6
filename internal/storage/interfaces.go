package storage

import (
	"context"

	"jobhunter/pkg/models"
)

// ProfileRepository is the read-only candidate profile collaborator.
// Find returns (nil, nil) when the profile is absent.
type ProfileRepository interface {
	Find(ctx context.Context, id string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]*models.Profile, error)
}

// JobRepository persists job postings seen by the pipeline.
// FindPosting returns (nil, nil) when the posting is absent.
type JobRepository interface {
	FindPosting(ctx context.Context, id string) (*models.JobListing, error)
	AddPosting(ctx context.Context, job *models.JobListing) error
}

// ApplicationRepository is the write-through store for submissions.
type ApplicationRepository interface {
	AddApplication(ctx context.Context, app *models.ApplicationSubmission) error
	GetApplication(ctx context.Context, id string) (*models.ApplicationSubmission, error)
	UpdateApplication(ctx context.Context, app *models.ApplicationSubmission) error
	ListApplications(ctx context.Context) ([]*models.ApplicationSubmission, error)
	GetStats(ctx context.Context) (*models.ApplicationStats, error)
}
