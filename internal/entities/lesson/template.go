package lesson

import (
	"slices"
	"strings"
)

// TemplateMetadata is the flat record persisted next to each template file
type TemplateMetadata struct {
	Name                  string            `json:"name"`
	Version               string            `json:"version"`
	Subject               string            `json:"subject"`
	MinGrade              int               `json:"min_grade"`
	MaxGrade              int               `json:"max_grade"`
	SupportedDifficulties []int             `json:"supported_difficulties"`
	Description           string            `json:"description"`
	LastUpdated           string            `json:"last_updated"`
	Author                string            `json:"author"`
	Tags                  []string          `json:"tags"`
	Dependencies          []string          `json:"dependencies"`
	InjectionPoints       map[string]string `json:"injection_points,omitempty"`
}

// Template is a skeleton Lua script plus its compatibility metadata.
// Templates are never mutated in place; updates are written back to storage
// and reloaded.
type Template struct {
	// Name is the file stem the store looks the template up by
	Name     string
	Metadata TemplateMetadata
	Subject  Subject
	Content  string
	Path     string
}

// Key identifies a template as subject/name. The name is the file stem,
// whatever the metadata declares.
func (t *Template) Key() string {
	name := t.Name
	if name == "" {
		name = t.Metadata.Name
	}
	return TemplateKey(t.Subject, name)
}

// TemplateKey builds the subject/name key
func TemplateKey(subject Subject, name string) string {
	return string(subject) + "/" + strings.TrimSuffix(name, ".lua")
}

// SupportsGrade reports min_grade <= grade <= max_grade
func (t *Template) SupportsGrade(grade int) bool {
	return t.Metadata.MinGrade <= grade && grade <= t.Metadata.MaxGrade
}

// SupportsDifficulty reports whether difficulty is a supported level
func (t *Template) SupportsDifficulty(difficulty int) bool {
	return slices.Contains(t.Metadata.SupportedDifficulties, difficulty)
}

// IsCompatible reports whether the template fits the grade and difficulty
func (t *Template) IsCompatible(grade, difficulty int) bool {
	return t.SupportsGrade(grade) && t.SupportsDifficulty(difficulty)
}
