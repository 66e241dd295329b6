package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"jobhunter/pkg/models"
)

const maxSkillGaps = 5
const maxStrengths = 5

// seniorExperienceRe matches requirement phrases demanding more than ten
// years of experience.
var seniorExperienceRe = regexp.MustCompile(`(1[1-9]|[2-9][0-9])\+?\s*years`)

// extractSkillGaps tokenizes the requirements text and keeps tokens absent
// from the profile, classified by severity cue words. At most five gaps are
// returned, in requirement-text order.
func extractSkillGaps(profileText, requirements string) []models.SkillGap {
	gaps := make([]models.SkillGap, 0, maxSkillGaps)

	for _, token := range requirementTokens(requirements) {
		if strings.Contains(profileText, strings.ToLower(token)) {
			continue
		}

		gaps = append(gaps, models.SkillGap{
			Skill:     token,
			Severity:  gapSeverity(token),
			Learnable: !strings.Contains(strings.ToLower(token), "years"),
		})
		if len(gaps) == maxSkillGaps {
			break
		}
	}
	return gaps
}

// requirementTokens splits the requirements text on commas and periods,
// dropping short fragments.
func requirementTokens(requirements string) []string {
	raw := strings.FieldsFunc(requirements, func(r rune) bool {
		return r == ',' || r == '.'
	})

	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if len(t) <= 3 {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// gapSeverity classifies a missing requirement by cue words in the token.
func gapSeverity(token string) models.GapSeverity {
	t := strings.ToLower(token)
	switch {
	case strings.Contains(t, "require") || strings.Contains(t, "must") || strings.Contains(t, "essential"):
		return models.SeverityCritical
	case strings.Contains(t, "strong") || strings.Contains(t, "advanced"):
		return models.SeverityHigh
	case strings.Contains(t, "prefer") || strings.Contains(t, "nice"):
		return models.SeverityLow
	default:
		return models.SeverityMedium
	}
}

// findStrengths lists technologies shared between the job and the profile,
// plus coarse title and company-size alignment signals. Capped at five.
func findStrengths(profileText string, profile *models.Profile, job *models.JobListing) []string {
	strengths := make([]string, 0, maxStrengths)

	for _, tech := range job.Technologies {
		if strings.Contains(profileText, strings.ToLower(tech)) {
			strengths = append(strengths, fmt.Sprintf("Hands-on experience with %s", tech))
			if len(strengths) == maxStrengths {
				return strengths
			}
		}
	}

	jobTitle := strings.ToLower(job.Title)
	profileTitle := strings.ToLower(profile.Title)
	for _, level := range []string{"senior", "lead", "staff", "principal"} {
		if strings.Contains(jobTitle, level) && strings.Contains(profileTitle, level) {
			strengths = append(strengths, fmt.Sprintf("Seniority matches the %s level of the role", level))
			break
		}
	}
	if len(strengths) == maxStrengths {
		return strengths
	}

	jobText := strings.ToLower(job.Company + " " + job.Description)
	if strings.Contains(jobText, "startup") && strings.Contains(profileText, "startup") {
		strengths = append(strengths, "Prior startup environment experience")
	}

	if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}
	return strengths
}

// findConcerns rolls critical gaps into a single entry and flags a senior
// experience bar and onsite relocation risk.
func findConcerns(profileText string, job *models.JobListing) []string {
	var concerns []string

	var critical []string
	for _, gap := range extractSkillGaps(profileText, job.Requirements) {
		if gap.Severity == models.SeverityCritical {
			critical = append(critical, gap.Skill)
		}
	}
	if len(critical) > 0 {
		concerns = append(concerns, "Missing required skills: "+strings.Join(critical, "; "))
	}

	if seniorExperienceRe.MatchString(strings.ToLower(job.Requirements)) {
		concerns = append(concerns, "Role demands more than ten years of experience")
	}

	if job.RemoteMode == models.RemoteModeOnsite && job.Location != "" &&
		!strings.Contains(profileText, strings.ToLower(job.Location)) {
		concerns = append(concerns, fmt.Sprintf("Onsite role in %s may require relocation", job.Location))
	}

	return concerns
}
