package docgen

import (
	"strings"
	"testing"

	"jobhunter/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resumeProfile() *models.Profile {
	return &models.Profile{
		ID:      "profile-1",
		Name:    "Dana Whitfield",
		Title:   "Software Engineer",
		Summary: "Backend engineer building Go services.",
		Skills: []models.Skill{
			{Name: "Go", Category: "language", Level: "advanced"},
			{Name: "PostgreSQL", Category: "database", Level: "intermediate"},
		},
		ExperienceTitles: []string{"Software Engineer", "Junior Developer"},
	}
}

func resumeJob() *models.JobListing {
	return &models.JobListing{
		ID:           "job-1",
		Title:        "Senior Go Developer",
		Company:      "Acme",
		Location:     "Berlin",
		RemoteMode:   models.RemoteModeRemote,
		Technologies: []string{"Go", "Kubernetes"},
		Description:  "Platform team building internal services.",
		Requirements: "Strong Go experience",
	}
}

func TestGenerateResumeIsByteIdentical(t *testing.T) {
	profile := resumeProfile()
	job := resumeJob()
	opts := ResumeOptions{Persona: PersonaEngineer, HighlightGaps: true}

	first := GenerateResume(profile, job, opts)
	second := GenerateResume(profile, job, opts)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first, second)
	// No timestamp sneaks into the generated content.
	assert.True(t, first.GeneratedAt.IsZero())
}

func TestGenerateResumeTextFormat(t *testing.T) {
	doc := GenerateResume(resumeProfile(), resumeJob(), ResumeOptions{})

	assert.Equal(t, "text", doc.Format)
	assert.True(t, strings.HasPrefix(doc.Content, "Dana Whitfield\n==============\n"))
	assert.Contains(t, doc.Content, "Summary\n-------\n")
	assert.Contains(t, doc.Content, "Skills\n------\n")
	assert.Contains(t, doc.Content, "Experience\n----------\n")
	assert.Contains(t, doc.Content, "Focus for this role\n-------------------\n")
	assert.Contains(t, doc.Content, "Targeting the Senior Go Developer role at Acme")
}

func TestGenerateResumeMarkdownFormat(t *testing.T) {
	doc := GenerateResume(resumeProfile(), resumeJob(), ResumeOptions{Format: "markdown"})

	assert.Equal(t, "markdown", doc.Format)
	assert.True(t, strings.HasPrefix(doc.Content, "# Dana Whitfield\n"))
	assert.Contains(t, doc.Content, "## Summary\n")
	assert.Contains(t, doc.Content, "## Skills\n")
}

func TestGenerateResumePersonaVoice(t *testing.T) {
	profile := resumeProfile()
	job := resumeJob()

	engineer := GenerateResume(profile, job, ResumeOptions{Persona: PersonaEngineer})
	architect := GenerateResume(profile, job, ResumeOptions{Persona: PersonaArchitect})

	assert.NotEqual(t, engineer.Content, architect.Content)
	assert.Contains(t, engineer.Content, engineerPersona.Summary)
	assert.Contains(t, architect.Content, architectPersona.Summary)
	for _, point := range architectPersona.Emphasize {
		assert.Contains(t, architect.Content, point)
	}
}

func TestGenerateResumeMergesSkillsWithoutDuplicates(t *testing.T) {
	profile := resumeProfile()
	profile.Skills = append(profile.Skills, models.Skill{Name: "system design"})

	doc := GenerateResume(profile, resumeJob(), ResumeOptions{Persona: PersonaArchitect})

	// The architect persona already lists system design; the profile copy
	// must not repeat it.
	assert.Equal(t, 1, strings.Count(doc.Content, "system design"))
	assert.Contains(t, doc.Content, "- Go\n")
	assert.Contains(t, doc.Content, "- PostgreSQL\n")
}

func TestGenerateResumeSuggestions(t *testing.T) {
	profile := resumeProfile()
	job := resumeJob()

	plain := GenerateResume(profile, job, ResumeOptions{})
	require.Len(t, plain.SuggestedImprovements, 1)
	assert.Contains(t, plain.SuggestedImprovements[0], "Quantify outcomes")

	gaps := GenerateResume(profile, job, ResumeOptions{HighlightGaps: true})
	require.NotEmpty(t, gaps.SuggestedImprovements)
	assert.LessOrEqual(t, len(gaps.SuggestedImprovements), maxGapSuggestions)
	for _, s := range gaps.SuggestedImprovements {
		assert.Contains(t, s, "accomplishment bullet")
	}
}

func TestMergedSkillsOrder(t *testing.T) {
	profile := &models.Profile{
		Skills: []models.Skill{{Name: "Terraform"}, {Name: "TESTING"}},
	}

	merged := mergedSkills(engineerPersona, profile)

	// Persona skills lead, profile extras follow, dedup is case-insensitive.
	require.Len(t, merged, 5)
	assert.Equal(t, engineerPersona.Skills, merged[:4])
	assert.Equal(t, "Terraform", merged[4])
}
