package models

import "time"

// RemoteMode describes how much of a role can be performed remotely.
type RemoteMode string

const (
	RemoteModeRemote RemoteMode = "remote"
	RemoteModeHybrid RemoteMode = "hybrid"
	RemoteModeOnsite RemoteMode = "onsite"
)

// JobListing represents a structured job posting returned by a search provider.
// A listing is immutable once fetched within a single pipeline call.
type JobListing struct {
	ID           string       `json:"id"`
	Title        string       `json:"title" validate:"required"`
	Company      string       `json:"company" validate:"required"`
	Location     string       `json:"location"`
	RemoteMode   RemoteMode   `json:"remote_mode"`
	Technologies []string     `json:"technologies"`
	Salary       *SalaryRange `json:"salary,omitempty"`
	Description  string       `json:"description"`
	Requirements string       `json:"requirements"`
	Source       string       `json:"source"`
	PostedDate   time.Time    `json:"posted_date"`
}

// SalaryRange represents the advertised salary information for a job posting
type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Midpoint returns the middle of the advertised range.
func (s *SalaryRange) Midpoint() int {
	return (s.Min + s.Max) / 2
}
