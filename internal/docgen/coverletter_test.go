package docgen

import (
	"strings"
	"testing"

	"jobhunter/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneForJob(t *testing.T) {
	tests := []struct {
		name string
		job  *models.JobListing
		want models.Tone
	}{
		{
			"startup reads conversational",
			&models.JobListing{Company: "Acme", Description: "Early stage startup."},
			models.ToneConversational,
		},
		{
			"software industry reads enthusiastic",
			&models.JobListing{Company: "Initech", Description: "Enterprise software vendor."},
			models.ToneEnthusiastic,
		},
		{
			"everything else reads formal",
			&models.JobListing{Company: "First National Bank", Description: "Regional retail banking."},
			models.ToneFormal,
		},
		{
			"startup wins over software",
			&models.JobListing{Company: "Acme", Description: "Software startup."},
			models.ToneConversational,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToneForJob(tt.job))
		})
	}
}

func TestGenerateCoverLetterIsByteIdentical(t *testing.T) {
	profile := resumeProfile()
	job := resumeJob()
	opts := CoverLetterOptions{Persona: PersonaEngineer, Template: TemplateCreative}

	first := GenerateCoverLetter(profile, job, opts)
	second := GenerateCoverLetter(profile, job, opts)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first, second)
	assert.True(t, first.GeneratedAt.IsZero())
}

func TestGenerateCoverLetterStructure(t *testing.T) {
	profile := resumeProfile()
	job := resumeJob()

	letter := GenerateCoverLetter(profile, job, CoverLetterOptions{Tone: models.ToneFormal})

	assert.True(t, strings.HasPrefix(letter.Content, "Dear Acme Hiring Team,"))
	assert.Contains(t, letter.Content, "I am writing to apply for the Senior Go Developer position at Acme.")
	assert.True(t, strings.HasSuffix(letter.Content, "Sincerely,\nDana Whitfield"))
	assert.Equal(t, models.ToneFormal, letter.Tone)
	assert.Equal(t, "text", letter.Format)
}

func TestGenerateCoverLetterDerivesTone(t *testing.T) {
	profile := resumeProfile()
	job := resumeJob()
	job.Description = "Fast-moving startup."

	letter := GenerateCoverLetter(profile, job, CoverLetterOptions{})

	assert.Equal(t, models.ToneConversational, letter.Tone)
	assert.True(t, strings.HasPrefix(letter.Content, "Hi Acme team,"))
	assert.Contains(t, letter.Content, "Thanks for reading!")
}

func TestGenerateCoverLetterStripSalutation(t *testing.T) {
	profile := resumeProfile()
	job := resumeJob()

	letter := GenerateCoverLetter(profile, job, CoverLetterOptions{
		Tone:            models.ToneFormal,
		StripSalutation: true,
	})

	assert.False(t, strings.Contains(letter.Content, "Dear Acme Hiring Team,"))
	assert.True(t, strings.HasPrefix(letter.Content, "I am writing to apply"))
}

func TestGenerateCoverLetterStripSignature(t *testing.T) {
	profile := resumeProfile()
	job := resumeJob()

	letter := GenerateCoverLetter(profile, job, CoverLetterOptions{
		Tone:           models.ToneFormal,
		StripSignature: true,
	})

	assert.False(t, strings.Contains(letter.Content, "Sincerely,"))
	assert.False(t, strings.Contains(letter.Content, "Dana Whitfield\n"))
	assert.False(t, strings.HasSuffix(letter.Content, "\n"))
}

func TestGenerateCoverLetterTemplates(t *testing.T) {
	profile := resumeProfile()
	job := resumeJob()

	creative := GenerateCoverLetter(profile, job, CoverLetterOptions{Template: TemplateCreative})
	assert.True(t, strings.HasPrefix(creative.Content, "~ ~ ~\n\n"))
	assert.True(t, strings.HasSuffix(creative.Content, "\n\n~ ~ ~"))

	direct := GenerateCoverLetter(profile, job, CoverLetterOptions{Template: TemplateDirect})
	assert.True(t, strings.HasSuffix(direct.Content, "(References available on request.)"))

	academic := GenerateCoverLetter(profile, job, CoverLetterOptions{Template: TemplateAcademic})
	assert.True(t, strings.HasPrefix(academic.Content, "To the Selection Committee:\n\n"))
	assert.True(t, strings.HasSuffix(academic.Content, "Enclosures: curriculum vitae"))

	professional := GenerateCoverLetter(profile, job, CoverLetterOptions{Template: TemplateProfessional})
	defaulted := GenerateCoverLetter(profile, job, CoverLetterOptions{})
	assert.Equal(t, professional.Content, defaulted.Content)
}

func TestGenerateCoverLetterPersonaBody(t *testing.T) {
	profile := resumeProfile()
	job := resumeJob()

	letter := GenerateCoverLetter(profile, job, CoverLetterOptions{Persona: PersonaTechnician})
	assert.Contains(t, letter.Content, technicianPersona.Summary)
	assert.Contains(t, letter.Content, "operational excellence")
}

func TestLetterSuggestions(t *testing.T) {
	require.Equal(t,
		[]string{"Tighten the opening to a single sentence naming the role"},
		letterSuggestions(nil))

	many := letterSuggestions([]string{"kafka", "terraform", "haskell", "ocaml"})
	require.Len(t, many, maxGapSuggestions)
	assert.Equal(t, "Work kafka into the body paragraph", many[0])
}
