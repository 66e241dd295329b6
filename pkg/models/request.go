package models

// FindJobsRequest is the payload for the job search endpoint.
type FindJobsRequest struct {
	ProfileID  string   `json:"profile_id" validate:"required"`
	Keywords   []string `json:"keywords" validate:"required,min=1"`
	Location   string   `json:"location,omitempty"`
	Seniority  string   `json:"seniority,omitempty"`
	MaxResults int      `json:"max_results,omitempty" validate:"omitempty,min=1,max=100"`
}

// AnalyzeGapRequest is the payload for gap analysis.
type AnalyzeGapRequest struct {
	ProfileID string `json:"profile_id" validate:"required"`
	JobID     string `json:"job_id" validate:"required"`
}

// TailorResumeRequest is the payload for resume tailoring.
type TailorResumeRequest struct {
	ProfileID     string `json:"profile_id" validate:"required"`
	JobID         string `json:"job_id" validate:"required"`
	PersonaID     string `json:"persona_id,omitempty"`
	HighlightGaps bool   `json:"highlight_gaps,omitempty"`
	Format        string `json:"format,omitempty" validate:"omitempty,oneof=text markdown"`
}

// CoverLetterRequest is the payload for cover letter generation.
type CoverLetterRequest struct {
	ProfileID       string `json:"profile_id" validate:"required"`
	JobID           string `json:"job_id" validate:"required"`
	PersonaID       string `json:"persona_id,omitempty"`
	Tone            string `json:"tone,omitempty" validate:"omitempty,oneof=formal conversational enthusiastic"`
	Template        string `json:"template,omitempty" validate:"omitempty,oneof=professional creative direct academic"`
	StripSalutation bool   `json:"strip_salutation,omitempty"`
	StripSignature  bool   `json:"strip_signature,omitempty"`
}

// SubmitApplicationRequest is the payload for a single application submission.
type SubmitApplicationRequest struct {
	ProfileID   string `json:"profile_id" validate:"required"`
	JobID       string `json:"job_id" validate:"required"`
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter"`
	AutoSubmit  bool   `json:"auto_submit,omitempty"`
}

// BatchApplyRequest is the payload for threshold-gated batch application.
type BatchApplyRequest struct {
	ProfileID          string   `json:"profile_id" validate:"required"`
	Keywords           []string `json:"keywords" validate:"required,min=1"`
	Location           string   `json:"location,omitempty"`
	Seniority          string   `json:"seniority,omitempty"`
	AutoApplyThreshold int      `json:"auto_apply_threshold,omitempty" validate:"omitempty,min=0,max=100"`
	MaxApplications    int      `json:"max_applications,omitempty" validate:"omitempty,min=1,max=50"`
	PersonaID          string   `json:"persona_id,omitempty"`
}
