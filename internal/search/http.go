package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobhunter/pkg/models"
)

// HTTPProvider queries an external job board API over JSON. The endpoint
// receives the criteria as a POST body and returns a listings array.
type HTTPProvider struct {
	name     string
	endpoint string
	client   *http.Client
}

// NewHTTPProvider creates a provider against the given search endpoint.
func NewHTTPProvider(name, endpoint string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		name:     name,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Name() string {
	return p.name
}

func (p *HTTPProvider) Search(ctx context.Context, criteria Criteria) ([]*models.JobListing, error) {
	body, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search criteria: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Listings []*models.JobListing `json:"listings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	for _, job := range payload.Listings {
		if job.Source == "" {
			job.Source = p.name
		}
	}
	return payload.Listings, nil
}
