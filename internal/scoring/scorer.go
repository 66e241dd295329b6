package scoring

import (
	"math"
	"strings"

	"jobhunter/pkg/models"
)

// Weighting of the five sub-scores into the overall score. Fixed by contract;
// callers that want different weights must compose sub-scores themselves.
const (
	weightSkill        = 0.35
	weightCulture      = 0.25
	weightGrowth       = 0.15
	weightCompensation = 0.15
	weightLocation     = 0.10
)

// Expected salary estimates by title tier, annual USD.
const (
	salaryBase   = 120000
	salarySenior = 160000
	salaryStaff  = 220000
)

// Sub-score defaults for the "no data" branches.
const (
	skillScoreUnknown        = 75
	compensationUnknown      = 75
	cultureBaseline          = 50
	growthBaseline           = 50
	locationOnsite           = 50
	locationHybrid           = 80
	locationRemote           = 100
)

// industryKeywords are coarse alignment cues checked against both the job and
// the profile text. A placeholder heuristic, not a validated model.
var industryKeywords = []string{"fintech", "healthcare", "e-commerce", "education", "security", "developer tools"}

// Analyze computes the full compatibility report for a (profile, job) pair.
// Pure and deterministic: no randomness, no external calls.
func Analyze(profile *models.Profile, job *models.JobListing) *models.CompatibilityAnalysis {
	profileText := profileSearchText(profile)

	skill := skillMatchScore(profileText, job.Technologies)
	culture := culturalFitScore(profileText, job)
	growth := growthPotentialScore(profileText, job, skill)
	compensation := compensationFitScore(profile, job)
	location := locationSuitabilityScore(job)

	overall := overallScore(skill, culture, growth, compensation, location)

	return &models.CompatibilityAnalysis{
		SkillMatch:          skill,
		CulturalFit:         culture,
		GrowthPotential:     growth,
		CompensationFit:     compensation,
		LocationSuitability: location,
		OverallScore:        overall,
		Recommendation:      recommendationFor(overall),
		SkillGaps:           extractSkillGaps(profileText, job.Requirements),
		Strengths:           findStrengths(profileText, profile, job),
		Concerns:            findConcerns(profileText, job),
	}
}

// profileSearchText flattens the profile into one lowercase haystack for
// keyword containment checks.
func profileSearchText(p *models.Profile) string {
	var b strings.Builder
	b.WriteString(p.Title)
	b.WriteString(" ")
	b.WriteString(p.Summary)
	for _, s := range p.Skills {
		b.WriteString(" ")
		b.WriteString(s.Name)
	}
	for _, t := range p.ExperienceTitles {
		b.WriteString(" ")
		b.WriteString(t)
	}
	return strings.ToLower(b.String())
}

// skillMatchScore scores the fraction of the job's declared technologies found
// in the profile text. Without a technology list the fit is unknown and
// defaults to moderate.
func skillMatchScore(profileText string, technologies []string) int {
	if len(technologies) == 0 {
		return skillScoreUnknown
	}

	matched := 0
	for _, tech := range technologies {
		if strings.Contains(profileText, strings.ToLower(tech)) {
			matched++
		}
	}

	ratio := float64(matched) / float64(len(technologies))
	score := int(math.Round(ratio * 100))
	if ratio >= 0.7 {
		score += 15
	} else if ratio >= 0.5 {
		score += 5
	}
	return capScore(score)
}

// culturalFitScore is a baseline plus keyword alignment bumps between the job
// and profile text.
func culturalFitScore(profileText string, job *models.JobListing) int {
	jobText := strings.ToLower(job.Company + " " + job.Description)
	score := cultureBaseline

	if strings.Contains(jobText, "startup") && strings.Contains(profileText, "startup") {
		score += 15
	}
	if strings.Contains(jobText, "enterprise") && strings.Contains(profileText, "enterprise") {
		score += 10
	}
	if job.RemoteMode == models.RemoteModeRemote {
		score += 10
	}
	for _, kw := range industryKeywords {
		if strings.Contains(jobText, kw) && strings.Contains(profileText, kw) {
			score += 15
			break
		}
	}
	return capScore(score)
}

// growthPotentialScore rewards senior roles, stretch skill matches and jobs
// that would expose the candidate to unfamiliar technologies.
func growthPotentialScore(profileText string, job *models.JobListing, skillMatch int) int {
	score := growthBaseline

	title := strings.ToLower(job.Title)
	if strings.Contains(title, "senior") || strings.Contains(title, "lead") || strings.Contains(title, "staff") {
		score += 20
	}
	if skillMatch >= 50 && skillMatch < 80 {
		score += 15
	}
	for _, tech := range job.Technologies {
		if !strings.Contains(profileText, strings.ToLower(tech)) {
			score += 10
			break
		}
	}
	return capScore(score)
}

// compensationFitScore compares an expected salary by title tier against the
// advertised midpoint. Without a salary range the fit is undeterminable.
func compensationFitScore(profile *models.Profile, job *models.JobListing) int {
	if job.Salary == nil {
		return compensationUnknown
	}

	estimate := expectedSalary(profile.Title)
	midpoint := job.Salary.Midpoint()
	if midpoint <= 0 {
		return compensationUnknown
	}

	deviation := math.Abs(float64(estimate-midpoint)) / float64(midpoint) * 100
	score := int(math.Round(100 - deviation))
	if score < 0 {
		score = 0
	}
	return score
}

func expectedSalary(title string) int {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "staff") || strings.Contains(t, "director") || strings.Contains(t, "principal"):
		return salaryStaff
	case strings.Contains(t, "senior") || strings.Contains(t, "lead"):
		return salarySenior
	default:
		return salaryBase
	}
}

func locationSuitabilityScore(job *models.JobListing) int {
	switch job.RemoteMode {
	case models.RemoteModeRemote:
		return locationRemote
	case models.RemoteModeHybrid:
		return locationHybrid
	default:
		return locationOnsite
	}
}

// overallScore composes the five sub-scores with the fixed weighting table.
func overallScore(skill, culture, growth, compensation, location int) int {
	weighted := weightSkill*float64(skill) +
		weightCulture*float64(culture) +
		weightGrowth*float64(growth) +
		weightCompensation*float64(compensation) +
		weightLocation*float64(location)
	return int(math.Round(weighted))
}

// recommendationFor maps an overall score onto the action tiers.
func recommendationFor(overall int) models.Recommendation {
	switch {
	case overall >= 80:
		return models.RecommendApplyNow
	case overall >= 70:
		return models.RecommendStrongCandidate
	case overall >= 60:
		return models.RecommendModerateFit
	case overall >= 40:
		return models.RecommendStretchGoal
	default:
		return models.RecommendSkip
	}
}

func capScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
