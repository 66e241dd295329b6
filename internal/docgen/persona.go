package docgen

import "strings"

// PersonaID identifies one of the six fixed professional-voice templates.
type PersonaID string

const (
	PersonaArchitect  PersonaID = "architect"
	PersonaEngineer   PersonaID = "engineer"
	PersonaTechnician PersonaID = "technician"
	PersonaAnalyst    PersonaID = "analyst"
	PersonaSynthesist PersonaID = "synthesist"
	PersonaGeneralist PersonaID = "generalist"
)

// Persona is a fixed professional-voice template used to bias document
// generation. The catalog is closed: only the six values below exist.
type Persona struct {
	ID          PersonaID
	Name        string
	Summary     string
	Skills      []string
	Emphasize   []string
	Deemphasize []string
}

var architectPersona = Persona{
	ID:      PersonaArchitect,
	Name:    "Architect",
	Summary: "Systems architect focused on durable platform design and pragmatic technology choices.",
	Skills:  []string{"system design", "distributed systems", "API design", "capacity planning"},
	Emphasize: []string{
		"cross-team technical leadership",
		"long-horizon platform decisions",
		"trade-off analysis",
	},
	Deemphasize: []string{"individual feature delivery"},
}

var engineerPersona = Persona{
	ID:      PersonaEngineer,
	Name:    "Engineer",
	Summary: "Hands-on engineer who ships reliable software and mentors the people around them.",
	Skills:  []string{"backend development", "code review", "testing", "incident response"},
	Emphasize: []string{
		"delivery track record",
		"production ownership",
		"mentorship",
	},
	Deemphasize: []string{"pure research work"},
}

var technicianPersona = Persona{
	ID:      PersonaTechnician,
	Name:    "Technician",
	Summary: "Operations-minded practitioner who keeps systems healthy and automates the toil away.",
	Skills:  []string{"infrastructure", "automation", "monitoring", "troubleshooting"},
	Emphasize: []string{
		"operational excellence",
		"tooling and automation wins",
		"root-cause discipline",
	},
	Deemphasize: []string{"greenfield product design"},
}

var analystPersona = Persona{
	ID:      PersonaAnalyst,
	Name:    "Analyst",
	Summary: "Data-driven analyst who turns ambiguous questions into measurable answers.",
	Skills:  []string{"data analysis", "SQL", "reporting", "experimentation"},
	Emphasize: []string{
		"quantified business impact",
		"stakeholder communication",
		"rigorous methodology",
	},
	Deemphasize: []string{"low-level systems work"},
}

var synthesistPersona = Persona{
	ID:      PersonaSynthesist,
	Name:    "Synthesist",
	Summary: "Generalist connector who bridges product, design and engineering into coherent outcomes.",
	Skills:  []string{"product thinking", "prototyping", "facilitation", "technical writing"},
	Emphasize: []string{
		"cross-functional collaboration",
		"ambiguity tolerance",
		"narrative clarity",
	},
	Deemphasize: []string{"deep single-domain specialization"},
}

var generalistPersona = Persona{
	ID:      PersonaGeneralist,
	Name:    "Generalist",
	Summary: "Versatile software professional comfortable across the stack and the lifecycle.",
	Skills:  []string{"full-stack development", "problem solving", "collaboration", "continuous learning"},
	Emphasize: []string{
		"breadth of experience",
		"adaptability",
		"steady delivery",
	},
	Deemphasize: nil,
}

// PersonaByID returns the persona for a known identifier.
func PersonaByID(id PersonaID) (Persona, bool) {
	switch id {
	case PersonaArchitect:
		return architectPersona, true
	case PersonaEngineer:
		return engineerPersona, true
	case PersonaTechnician:
		return technicianPersona, true
	case PersonaAnalyst:
		return analystPersona, true
	case PersonaSynthesist:
		return synthesistPersona, true
	case PersonaGeneralist:
		return generalistPersona, true
	default:
		return Persona{}, false
	}
}

// Personas returns the full closed catalog.
func Personas() []Persona {
	return []Persona{
		architectPersona,
		engineerPersona,
		technicianPersona,
		analystPersona,
		synthesistPersona,
		generalistPersona,
	}
}

// ResolvePersona picks the persona for a generation request. An explicit,
// known ID wins; otherwise the persona is derived from the profile title.
func ResolvePersona(explicit PersonaID, profileTitle string) Persona {
	if p, ok := PersonaByID(explicit); ok {
		return p
	}

	title := strings.ToLower(profileTitle)
	switch {
	case strings.Contains(title, "architect"):
		return architectPersona
	case strings.Contains(title, "lead"):
		return engineerPersona
	default:
		return generalistPersona
	}
}
