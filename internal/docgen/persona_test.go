package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonaCatalogIsClosed(t *testing.T) {
	personas := Personas()
	require.Len(t, personas, 6)

	ids := make(map[PersonaID]bool)
	for _, p := range personas {
		ids[p.ID] = true
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Summary)
		assert.NotEmpty(t, p.Skills)
		assert.NotEmpty(t, p.Emphasize)
	}
	assert.Len(t, ids, 6)
}

func TestPersonaByID(t *testing.T) {
	p, ok := PersonaByID(PersonaArchitect)
	require.True(t, ok)
	assert.Equal(t, "Architect", p.Name)

	_, ok = PersonaByID("visionary")
	assert.False(t, ok)
}

func TestResolvePersona(t *testing.T) {
	tests := []struct {
		name     string
		explicit PersonaID
		title    string
		want     PersonaID
	}{
		{"explicit id wins", PersonaAnalyst, "Staff Architect", PersonaAnalyst},
		{"unknown id falls back to title", "visionary", "Solutions Architect", PersonaArchitect},
		{"lead title maps to engineer", "", "Tech Lead", PersonaEngineer},
		{"plain title maps to generalist", "", "Software Engineer", PersonaGeneralist},
		{"empty everything", "", "", PersonaGeneralist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePersona(tt.explicit, tt.title).ID)
		})
	}
}
