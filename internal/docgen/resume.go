package docgen

import (
	"fmt"
	"strings"

	"jobhunter/pkg/models"
)

const maxGapSuggestions = 3

// ResumeOptions control resume synthesis.
type ResumeOptions struct {
	Persona       PersonaID
	HighlightGaps bool
	Format        string // text or markdown
}

// GenerateResume synthesizes a persona-voiced resume tailored to the job.
// Output is byte-identical for identical inputs: no timestamps, no randomness.
func GenerateResume(profile *models.Profile, job *models.JobListing, opts ResumeOptions) *models.TailoredDocument {
	persona := ResolvePersona(opts.Persona, profile.Title)
	keywords := ExtractJobKeywords(job)
	matched, missing := MatchKeywords(keywords, profile)

	format := opts.Format
	if format == "" {
		format = "text"
	}

	var b strings.Builder
	writeHeading(&b, format, profile.Name)
	fmt.Fprintf(&b, "%s\n\n", profile.Title)

	writeSection(&b, format, "Summary")
	fmt.Fprintf(&b, "%s %s\n\n", persona.Summary, targetedSummaryLine(job, matched))

	writeSection(&b, format, "Skills")
	for _, skill := range mergedSkills(persona, profile) {
		fmt.Fprintf(&b, "- %s\n", skill)
	}
	b.WriteString("\n")

	if len(profile.ExperienceTitles) > 0 {
		writeSection(&b, format, "Experience")
		for _, title := range profile.ExperienceTitles {
			fmt.Fprintf(&b, "- %s\n", title)
		}
		b.WriteString("\n")
	}

	writeSection(&b, format, "Focus for this role")
	for _, point := range persona.Emphasize {
		fmt.Fprintf(&b, "- %s\n", point)
	}

	return &models.TailoredDocument{
		Content:               b.String(),
		Format:                format,
		Confidence:            Confidence(len(matched), len(keywords)),
		KeywordMatches:        matched,
		SuggestedImprovements: resumeSuggestions(opts.HighlightGaps, missing),
	}
}

func targetedSummaryLine(job *models.JobListing, matched []string) string {
	if len(matched) == 0 {
		return fmt.Sprintf("Targeting the %s role at %s.", job.Title, job.Company)
	}
	return fmt.Sprintf("Targeting the %s role at %s with direct experience in %s.",
		job.Title, job.Company, strings.Join(matched, ", "))
}

// mergedSkills combines persona skills with profile skills, persona first,
// deduplicated case-insensitively.
func mergedSkills(persona Persona, profile *models.Profile) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range persona.Skills {
		key := strings.ToLower(s)
		if !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	for _, s := range profile.Skills {
		key := strings.ToLower(s.Name)
		if !seen[key] {
			seen[key] = true
			out = append(out, s.Name)
		}
	}
	return out
}

// resumeSuggestions emits gap-highlighting hints when requested, otherwise a
// generic quantification hint.
func resumeSuggestions(highlightGaps bool, missing []string) []string {
	if highlightGaps && len(missing) > 0 {
		n := len(missing)
		if n > maxGapSuggestions {
			n = maxGapSuggestions
		}
		suggestions := make([]string, 0, n)
		for _, kw := range missing[:n] {
			suggestions = append(suggestions, fmt.Sprintf("Mention %s in an accomplishment bullet", kw))
		}
		return suggestions
	}
	return []string{"Quantify outcomes with concrete metrics in each experience bullet"}
}

func writeHeading(b *strings.Builder, format, text string) {
	if format == "markdown" {
		fmt.Fprintf(b, "# %s\n", text)
		return
	}
	fmt.Fprintf(b, "%s\n%s\n", text, strings.Repeat("=", len(text)))
}

func writeSection(b *strings.Builder, format, title string) {
	if format == "markdown" {
		fmt.Fprintf(b, "## %s\n", title)
		return
	}
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("-", len(title)))
}
