package models

// Profile represents a candidate profile. It is a read-only input to
// scoring and document generation.
type Profile struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Title            string  `json:"title"`
	Summary          string  `json:"summary"`
	Tier             string  `json:"tier"`
	Skills           []Skill `json:"skills"`
	ExperienceTitles []string `json:"experience_titles"`
}

// Skill represents a single profile skill
type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    string `json:"level"`
}

// SkillNames returns the names of all profile skills.
func (p *Profile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}
