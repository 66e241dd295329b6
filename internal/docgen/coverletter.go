package docgen

import (
	"fmt"
	"strings"

	"jobhunter/pkg/models"
)

// Template selects the fixed wrapper around the letter body.
type Template string

const (
	TemplateProfessional Template = "professional"
	TemplateCreative     Template = "creative"
	TemplateDirect       Template = "direct"
	TemplateAcademic     Template = "academic"
)

// CoverLetterOptions control cover letter synthesis.
type CoverLetterOptions struct {
	Persona         PersonaID
	Tone            models.Tone // empty means derive from job attributes
	Template        Template
	StripSalutation bool
	StripSignature  bool
}

// techIndustryCues mark jobs in the broader software industry, which lean
// toward an enthusiastic voice.
var techIndustryCues = []string{"software", "saas", "platform", "technology", "tech "}

// ToneForJob derives the letter tone from job attributes: startups read
// conversational, the tech industry enthusiastic, everything else formal.
func ToneForJob(job *models.JobListing) models.Tone {
	jobText := strings.ToLower(job.Company + " " + job.Description)
	if strings.Contains(jobText, "startup") {
		return models.ToneConversational
	}
	for _, cue := range techIndustryCues {
		if strings.Contains(jobText, cue) {
			return models.ToneEnthusiastic
		}
	}
	return models.ToneFormal
}

// GenerateCoverLetter synthesizes a persona-voiced cover letter. Output is
// byte-identical for identical inputs; the caller attaches timestamps.
func GenerateCoverLetter(profile *models.Profile, job *models.JobListing, opts CoverLetterOptions) *models.CoverLetterDocument {
	persona := ResolvePersona(opts.Persona, profile.Title)
	keywords := ExtractJobKeywords(job)
	matched, missing := MatchKeywords(keywords, profile)

	tone := opts.Tone
	if tone == "" {
		tone = ToneForJob(job)
	}
	template := opts.Template
	if template == "" {
		template = TemplateProfessional
	}

	paragraphs := []string{
		salutation(job, tone),
		openingParagraph(profile, job, tone),
		bodyParagraph(persona, matched),
		closingParagraph(job, tone),
		signature(profile),
	}

	if opts.StripSalutation {
		paragraphs = paragraphs[1:]
	}

	content := strings.Join(paragraphs, "\n\n")
	if opts.StripSignature {
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			content = strings.Join(lines[:len(lines)-2], "\n")
			content = strings.TrimRight(content, "\n")
		}
	}

	prefix, suffix := templateWrapper(template)
	content = prefix + content + suffix

	return &models.CoverLetterDocument{
		TailoredDocument: models.TailoredDocument{
			Content:               content,
			Format:                "text",
			Confidence:            Confidence(len(matched), len(keywords)),
			KeywordMatches:        matched,
			SuggestedImprovements: letterSuggestions(missing),
		},
		Tone: tone,
	}
}

func salutation(job *models.JobListing, tone models.Tone) string {
	if tone == models.ToneConversational {
		return fmt.Sprintf("Hi %s team,", job.Company)
	}
	return fmt.Sprintf("Dear %s Hiring Team,", job.Company)
}

func openingParagraph(profile *models.Profile, job *models.JobListing, tone models.Tone) string {
	switch tone {
	case models.ToneConversational:
		return fmt.Sprintf("I came across the %s opening and it immediately felt like a fit. I'm %s, %s, and the way %s works is exactly the kind of environment I do my best work in.",
			job.Title, profile.Name, strings.ToLower(profile.Title), job.Company)
	case models.ToneEnthusiastic:
		return fmt.Sprintf("I am excited to apply for the %s position at %s. As %s, I have been following the problems your team is solving and would love to contribute.",
			job.Title, job.Company, strings.ToLower(profile.Title))
	default:
		return fmt.Sprintf("I am writing to apply for the %s position at %s. My background as %s aligns closely with the responsibilities described in the posting.",
			job.Title, job.Company, strings.ToLower(profile.Title))
	}
}

func bodyParagraph(persona Persona, matched []string) string {
	if len(matched) == 0 {
		return persona.Summary + " I focus on " + strings.Join(persona.Emphasize, ", ") + "."
	}
	return fmt.Sprintf("%s In previous roles I have worked directly with %s, and I focus on %s.",
		persona.Summary, strings.Join(matched, ", "), strings.Join(persona.Emphasize, ", "))
}

func closingParagraph(job *models.JobListing, tone models.Tone) string {
	if tone == models.ToneConversational {
		return fmt.Sprintf("I'd love to chat about how I can help %s. Thanks for reading!", job.Company)
	}
	return fmt.Sprintf("I would welcome the opportunity to discuss how my experience can support %s. Thank you for your consideration.", job.Company)
}

func signature(profile *models.Profile) string {
	return "Sincerely,\n" + profile.Name
}

// templateWrapper returns the fixed prefix and suffix per template choice.
func templateWrapper(t Template) (string, string) {
	switch t {
	case TemplateCreative:
		return "~ ~ ~\n\n", "\n\n~ ~ ~"
	case TemplateDirect:
		return "", "\n\n(References available on request.)"
	case TemplateAcademic:
		return "To the Selection Committee:\n\n", "\n\nEnclosures: curriculum vitae"
	default:
		return "", ""
	}
}

func letterSuggestions(missing []string) []string {
	if len(missing) == 0 {
		return []string{"Tighten the opening to a single sentence naming the role"}
	}
	n := len(missing)
	if n > maxGapSuggestions {
		n = maxGapSuggestions
	}
	suggestions := make([]string, 0, n)
	for _, kw := range missing[:n] {
		suggestions = append(suggestions, fmt.Sprintf("Work %s into the body paragraph", kw))
	}
	return suggestions
}
