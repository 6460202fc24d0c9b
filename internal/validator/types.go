package validator

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
)

// ErrorType is the stage a finding came from
type ErrorType string

// Finding types
const (
	TypeSyntax     ErrorType = "syntax"
	TypeContent    ErrorType = "content"
	TypeStructure  ErrorType = "structure"
	TypeGradeLevel ErrorType = "grade_level"
	TypeDifficulty ErrorType = "difficulty"
	TypeSubject    ErrorType = "subject"
	TypeSafety     ErrorType = "safety"
)

// Severity of a finding. Only SeverityError makes a result invalid.
type Severity string

// Severities
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidationError is one finding of one stage
type ValidationError struct {
	Type       ErrorType `json:"error_type"`
	Message    string    `json:"message"`
	LineNumber *int      `json:"line_number,omitempty"`
	Severity   Severity  `json:"severity"`
}

func (e ValidationError) String() string {
	line := ""
	if e.LineNumber != nil {
		line = fmt.Sprintf(" (line %d)", *e.LineNumber)
	}
	return fmt.Sprintf("[%s]%s: %s", e.Type, line, e.Message)
}

func finding(t ErrorType, severity Severity, message string) ValidationError {
	return ValidationError{Type: t, Message: message, Severity: severity}
}

func findingAt(t ErrorType, severity Severity, line int, message string) ValidationError {
	return ValidationError{Type: t, Message: message, Severity: severity, LineNumber: &line}
}

// ValidationResult aggregates the findings of every stage that ran
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

// NewResult returns an empty, valid result
func NewResult() *ValidationResult {
	return &ValidationResult{IsValid: true}
}

// Add files a finding under its severity. An error makes the result
// invalid.
func (r *ValidationResult) Add(e ValidationError) {
	switch e.Severity {
	case SeverityError:
		r.Errors = append(r.Errors, e)
		r.IsValid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, e)
	default:
		r.Info = append(r.Info, e)
	}
}

func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Findings returns every finding, errors first
func (r *ValidationResult) Findings() []ValidationError {
	all := make([]ValidationError, 0, len(r.Errors)+len(r.Warnings)+len(r.Info))
	all = append(all, r.Errors...)
	all = append(all, r.Warnings...)
	return append(all, r.Info...)
}

func (r *ValidationResult) String() string {
	var lines []string
	section := func(title string, findings []ValidationError) {
		if len(findings) == 0 {
			return
		}
		lines = append(lines, title+":")
		for _, f := range findings {
			lines = append(lines, "  - "+f.String())
		}
	}

	section("Errors", r.Errors)
	section("Warnings", r.Warnings)
	section("Info", r.Info)
	return strings.Join(lines, "\n")
}

// Context is what a script is validated against
type Context struct {
	Subject    lesson.Subject
	GradeLevel int
	Difficulty int
}
