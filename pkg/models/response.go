package models

import "time"

// FindJobsResponse is the ranked search result for a profile.
type FindJobsResponse struct {
	Jobs           []*RankedJob  `json:"jobs"`
	QuotaRemaining int           `json:"quota_remaining"`
	ProcessingTime time.Duration `json:"processing_time"`
	RequestID      string        `json:"request_id"`
}

// RankedJob pairs a listing with its compatibility analysis.
type RankedJob struct {
	Job      *JobListing            `json:"job"`
	Analysis *CompatibilityAnalysis `json:"analysis"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string         `json:"error"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id"`
	Timestamp time.Time      `json:"timestamp"`
}
