package models

import "time"

// Tone describes the voice of a generated cover letter.
type Tone string

const (
	ToneFormal         Tone = "formal"
	ToneConversational Tone = "conversational"
	ToneEnthusiastic   Tone = "enthusiastic"
)

// TailoredDocument represents a synthesized application document. Content is
// deterministic for identical inputs; GeneratedAt is attached by the
// orchestration layer, never by the generator itself.
type TailoredDocument struct {
	Content               string    `json:"content"`
	Format                string    `json:"format"`
	Confidence            float64   `json:"confidence"`
	KeywordMatches        []string  `json:"keyword_matches"`
	SuggestedImprovements []string  `json:"suggested_improvements"`
	GeneratedAt           time.Time `json:"generated_at,omitempty"`
}

// CoverLetterDocument is a tailored document with the tone it was written in.
type CoverLetterDocument struct {
	TailoredDocument
	Tone Tone `json:"tone"`
}
