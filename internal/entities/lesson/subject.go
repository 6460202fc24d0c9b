// Package lesson holds the entities shared by the template store, the
// content pipeline and the generation orchestrator.
package lesson

import (
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

// Subject is a curriculum domain
type Subject string

// Supported subjects
const (
	SubjectMathematics  Subject = "mathematics"
	SubjectScience      Subject = "science"
	SubjectHistory      Subject = "history"
	SubjectLanguageArts Subject = "language_arts"
)

// Difficulty levels
const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

// Grade bounds
const (
	MinGrade = 1
	MaxGrade = 12
)

// AllSubjects returns the supported subjects in their canonical order
func AllSubjects() []Subject {
	return []Subject{SubjectMathematics, SubjectScience, SubjectHistory, SubjectLanguageArts}
}

// String returns the canonical subject name
func (s Subject) String() string {
	return string(s)
}

// DirName is the directory spelling used under the templates and output
// roots, e.g. "LanguageArts".
func (s Subject) DirName() string {
	parts := strings.Split(string(s), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

// ParseSubject accepts the canonical name, the directory spelling and
// spaced or hyphenated forms, case-insensitively.
func ParseSubject(raw string) (Subject, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)

	for _, s := range AllSubjects() {
		if strings.ReplaceAll(string(s), "_", "") == key {
			return s, nil
		}
	}
	if key == "math" || key == "maths" {
		return SubjectMathematics, nil
	}

	return "", errors.Configurationf("unsupported subject: %q", raw)
}
