package search

import (
	"context"

	"jobhunter/pkg/models"
)

// Criteria narrows a job search. Providers must tolerate narrow keyword sets.
type Criteria struct {
	Keywords   []string `json:"keywords"`
	Location   string   `json:"location,omitempty"`
	Seniority  string   `json:"seniority,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
}

// Provider is a job search collaborator. Errors from a provider are treated
// as infrastructure failures, not domain outcomes.
type Provider interface {
	Name() string
	Search(ctx context.Context, criteria Criteria) ([]*models.JobListing, error)
}

// StaticProvider serves a fixed in-memory listing set, filtered by criteria.
// Used as the primary source in development and in tests.
type StaticProvider struct {
	name     string
	listings []*models.JobListing
}

// NewStaticProvider creates a provider over a fixed listing set.
func NewStaticProvider(name string, listings []*models.JobListing) *StaticProvider {
	return &StaticProvider{name: name, listings: listings}
}

func (p *StaticProvider) Name() string {
	return p.name
}

func (p *StaticProvider) Search(_ context.Context, criteria Criteria) ([]*models.JobListing, error) {
	return FilterListings(p.listings, criteria), nil
}
