package docgen

import (
	"strings"
	"unicode"

	"jobhunter/pkg/models"
)

const maxKeywords = 12
const minKeywordLength = 4

// defaultKeywords is the fallback set when a job yields no usable tokens.
var defaultKeywords = []string{"impact", "scale", "leadership"}

// ExtractJobKeywords tokenizes the job's visible text into lowercase alnum
// keywords of length >= 4, deduplicated in first-seen order and capped at 12.
func ExtractJobKeywords(job *models.JobListing) []string {
	source := strings.Join([]string{
		job.Title,
		job.Company,
		job.Description,
		job.Requirements,
		strings.Join(job.Technologies, " "),
		job.Location,
	}, " ")

	tokens := strings.FieldsFunc(strings.ToLower(source), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(tokens))
	keywords := make([]string, 0, maxKeywords)
	for _, tok := range tokens {
		if len(tok) < minKeywordLength || seen[tok] {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}

	if len(keywords) == 0 {
		return append([]string(nil), defaultKeywords...)
	}
	return keywords
}

// MatchKeywords splits keywords into those present in the profile's summary,
// experience titles and skill names, and those missing.
func MatchKeywords(keywords []string, profile *models.Profile) (matched, missing []string) {
	var b strings.Builder
	b.WriteString(profile.Summary)
	for _, t := range profile.ExperienceTitles {
		b.WriteString(" ")
		b.WriteString(t)
	}
	for _, s := range profile.Skills {
		b.WriteString(" ")
		b.WriteString(s.Name)
	}
	haystack := strings.ToLower(b.String())

	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return matched, missing
}

// Confidence scores keyword coverage into [0, 1]. An empty keyword set gives
// the neutral 0.5.
func Confidence(matched, total int) float64 {
	if total == 0 {
		return 0.5
	}

	c := 0.4 + float64(matched)/float64(total)*0.6
	if c > 1 {
		return 1
	}
	if c < 0 {
		return 0
	}
	return c
}
