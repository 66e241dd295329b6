package license

// Subscription tiers.
const (
	TierFree       = "free"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// Meterable feature keys.
const (
	FeatureJobSearches     = "hunter_job_searches"
	FeatureResumeTailoring = "hunter_resume_tailoring"
	FeatureCoverLetters    = "hunter_cover_letters"
	FeatureAutoApplies     = "hunter_auto_applies"
	FeaturePersonas        = "hunter_personas"
)

// ResetPeriod describes when a feature counter returns to zero.
type ResetPeriod string

const (
	ResetNever   ResetPeriod = "never"
	ResetMonthly ResetPeriod = "monthly"
)

// Unlimited is the sentinel limit for features without a cap.
const Unlimited = -1

// FeatureLimit is one entry of a plan: how much of a feature a tier gets.
// Limit semantics: -1 unlimited, 0 disabled, >0 capped.
type FeatureLimit struct {
	Limit       int         `json:"limit"`
	ResetPeriod ResetPeriod `json:"reset_period"`
}

// Plan maps feature keys to their limits for one tier. Plans are immutable
// and loaded at startup; feature keys absent from a plan are fully disabled.
type Plan struct {
	Tier     string                  `json:"tier"`
	Features map[string]FeatureLimit `json:"features"`
}

// Feature returns the limit entry for a feature key. Missing keys report a
// disabled feature (limit 0).
func (p Plan) Feature(key string) (FeatureLimit, bool) {
	fl, ok := p.Features[key]
	if !ok {
		return FeatureLimit{Limit: 0, ResetPeriod: ResetNever}, false
	}
	return fl, true
}

// IsUnlimited reports whether every feature in the plan carries the
// unlimited sentinel.
func (p Plan) IsUnlimited() bool {
	if len(p.Features) == 0 {
		return false
	}
	for _, fl := range p.Features {
		if fl.Limit != Unlimited {
			return false
		}
	}
	return true
}

var catalog = map[string]Plan{
	TierFree: {
		Tier: TierFree,
		Features: map[string]FeatureLimit{
			FeatureJobSearches:     {Limit: 5, ResetPeriod: ResetMonthly},
			FeatureResumeTailoring: {Limit: 3, ResetPeriod: ResetMonthly},
			FeatureCoverLetters:    {Limit: 0, ResetPeriod: ResetMonthly},
			FeatureAutoApplies:     {Limit: 0, ResetPeriod: ResetMonthly},
			FeaturePersonas:        {Limit: 1, ResetPeriod: ResetNever},
		},
	},
	TierPro: {
		Tier: TierPro,
		Features: map[string]FeatureLimit{
			FeatureJobSearches:     {Limit: 100, ResetPeriod: ResetMonthly},
			FeatureResumeTailoring: {Limit: 50, ResetPeriod: ResetMonthly},
			FeatureCoverLetters:    {Limit: 25, ResetPeriod: ResetMonthly},
			FeatureAutoApplies:     {Limit: 10, ResetPeriod: ResetMonthly},
			FeaturePersonas:        {Limit: 3, ResetPeriod: ResetNever},
		},
	},
	TierEnterprise: {
		Tier: TierEnterprise,
		Features: map[string]FeatureLimit{
			FeatureJobSearches:     {Limit: Unlimited, ResetPeriod: ResetMonthly},
			FeatureResumeTailoring: {Limit: Unlimited, ResetPeriod: ResetMonthly},
			FeatureCoverLetters:    {Limit: Unlimited, ResetPeriod: ResetMonthly},
			FeatureAutoApplies:     {Limit: Unlimited, ResetPeriod: ResetMonthly},
			FeaturePersonas:        {Limit: Unlimited, ResetPeriod: ResetNever},
		},
	},
}

// GetPlan returns the static plan for a tier.
func GetPlan(tier string) (Plan, bool) {
	p, ok := catalog[tier]
	return p, ok
}

// Tiers returns the known tier identifiers.
func Tiers() []string {
	return []string{TierFree, TierPro, TierEnterprise}
}
