package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"jobhunter/pkg/models"
)

// MemoryProfileRepository is an in-process ProfileRepository.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

// NewMemoryProfileRepository creates an empty repository.
func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: make(map[string]*models.Profile)}
}

// Seed stores profiles, replacing existing ones with the same ID.
func (r *MemoryProfileRepository) Seed(profiles ...*models.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
}

func (r *MemoryProfileRepository) Find(_ context.Context, id string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[id], nil
}

// ListProfiles returns all stored profiles sorted by ID.
func (r *MemoryProfileRepository) ListProfiles(_ context.Context) ([]*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryJobRepository is an in-process JobRepository.
type MemoryJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*models.JobListing
}

// NewMemoryJobRepository creates an empty repository.
func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{jobs: make(map[string]*models.JobListing)}
}

func (r *MemoryJobRepository) FindPosting(_ context.Context, id string) (*models.JobListing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.jobs[id], nil
}

func (r *MemoryJobRepository) AddPosting(_ context.Context, job *models.JobListing) error {
	if job.ID == "" {
		return fmt.Errorf("job posting requires an ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return nil
}

// MemoryApplicationRepository is an in-process ApplicationRepository.
type MemoryApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]*models.ApplicationSubmission
}

// NewMemoryApplicationRepository creates an empty repository.
func NewMemoryApplicationRepository() *MemoryApplicationRepository {
	return &MemoryApplicationRepository{apps: make(map[string]*models.ApplicationSubmission)}
}

func (r *MemoryApplicationRepository) AddApplication(_ context.Context, app *models.ApplicationSubmission) error {
	if app.ID == "" {
		return fmt.Errorf("application requires an ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[app.ID]; exists {
		return fmt.Errorf("application %s already exists", app.ID)
	}
	stored := *app
	r.apps[app.ID] = &stored
	return nil
}

func (r *MemoryApplicationRepository) GetApplication(_ context.Context, id string) (*models.ApplicationSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, nil
	}
	out := *app
	return &out, nil
}

func (r *MemoryApplicationRepository) UpdateApplication(_ context.Context, app *models.ApplicationSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[app.ID]; !exists {
		return fmt.Errorf("application %s does not exist", app.ID)
	}
	stored := *app
	r.apps[app.ID] = &stored
	return nil
}

func (r *MemoryApplicationRepository) ListApplications(_ context.Context) ([]*models.ApplicationSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.ApplicationSubmission, 0, len(r.apps))
	for _, app := range r.apps {
		copied := *app
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}

func (r *MemoryApplicationRepository) GetStats(_ context.Context) (*models.ApplicationStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.ApplicationStats{
		Total:    len(r.apps),
		ByStatus: make(map[models.ApplicationStatus]int),
	}
	for _, app := range r.apps {
		stats.ByStatus[app.Status]++
	}
	return stats, nil
}
