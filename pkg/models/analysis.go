package models

// Recommendation is the action suggested for a (profile, job) pair based on
// the overall compatibility score.
type Recommendation string

const (
	RecommendApplyNow        Recommendation = "apply_now"
	RecommendStrongCandidate Recommendation = "strong_candidate"
	RecommendModerateFit     Recommendation = "moderate_fit"
	RecommendStretchGoal     Recommendation = "stretch_goal"
	RecommendSkip            Recommendation = "skip"
)

// GapSeverity classifies how badly a missing requirement hurts a candidacy.
type GapSeverity string

const (
	SeverityCritical GapSeverity = "critical"
	SeverityHigh     GapSeverity = "high"
	SeverityMedium   GapSeverity = "medium"
	SeverityLow      GapSeverity = "low"
	SeverityNone     GapSeverity = "none"
)

// SkillGap represents a requirement keyword absent from the profile.
type SkillGap struct {
	Skill     string      `json:"skill"`
	Severity  GapSeverity `json:"severity"`
	Learnable bool        `json:"learnable"`
}

// CompatibilityAnalysis is the multi-dimensional fit report for a
// (profile, job) pair. Instances are created fresh per pair and never mutated.
type CompatibilityAnalysis struct {
	SkillMatch          int            `json:"skill_match"`
	CulturalFit         int            `json:"cultural_fit"`
	GrowthPotential     int            `json:"growth_potential"`
	CompensationFit     int            `json:"compensation_fit"`
	LocationSuitability int            `json:"location_suitability"`
	OverallScore        int            `json:"overall_score"`
	Recommendation      Recommendation `json:"recommendation"`
	SkillGaps           []SkillGap     `json:"skill_gaps"`
	Strengths           []string       `json:"strengths"`
	Concerns            []string       `json:"concerns"`
}
