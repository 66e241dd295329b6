package models

import "time"

// ApplicationStatus is the lifecycle state of a submitted application.
// Transitions are driven only by explicit calls, never by time.
type ApplicationStatus string

const (
	StatusDraft        ApplicationStatus = "draft"
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffer        ApplicationStatus = "offer"
	StatusRejected     ApplicationStatus = "rejected"
)

// SubmissionType distinguishes manual submissions from automated batch ones.
type SubmissionType string

const (
	SubmissionManual SubmissionType = "manual"
	SubmissionAuto   SubmissionType = "auto"
)

// ApplicationSubmission represents one job application. Created on submit;
// only status and response fields change afterwards.
type ApplicationSubmission struct {
	ID               string            `json:"id"`
	ProfileID        string            `json:"profile_id"`
	JobID            string            `json:"job_id"`
	Resume           string            `json:"resume"`
	CoverLetter      string            `json:"cover_letter"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	Status           ApplicationStatus `json:"status"`
	SubmissionType   SubmissionType    `json:"submission_type"`
	ConfirmationCode string            `json:"confirmation_code"`
	ResponseNote     string            `json:"response_note,omitempty"`
}

// BatchApplyError records a single job failure inside a batch run.
type BatchApplyError struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

// BatchApplyResult is the outcome of a batch-apply run.
// len(Applications) + len(Errors) always equals the number of eligible jobs
// attempted; Skipped counts jobs filtered out before any attempt.
type BatchApplyResult struct {
	Applications []*ApplicationSubmission `json:"applications"`
	Skipped      int                      `json:"skipped"`
	Errors       []BatchApplyError        `json:"errors"`
}

// ApplicationStats summarizes stored applications by lifecycle state.
type ApplicationStats struct {
	Total    int                       `json:"total"`
	ByStatus map[ApplicationStatus]int `json:"by_status"`
}
