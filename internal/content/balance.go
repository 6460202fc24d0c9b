package content

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

// Approximate block balance, not a parser. Braces inside string literals
// count, and so do keywords inside comments.
var (
	markerPattern      = regexp.MustCompile(`--\s*\[INJECT_[A-Z0-9_]+\]`)
	functionDefPattern = regexp.MustCompile(`function\s+\w+[:.]?\w*\s*\([^)]*\)`)
	ifPattern          = regexp.MustCompile(`\bif\s+.+\s+then`)
	endPattern         = regexp.MustCompile(`\bend\b`)
)

// HasMarkers reports whether text still carries an -- [INJECT_*] marker
func HasMarkers(text string) bool {
	return markerPattern.MatchString(text)
}

// CheckBalance requires balanced braces and parentheses. When no marker is
// left it also requires at least as many `end` terminators as function
// definitions, and enough left over to close the if blocks.
func CheckBalance(text string) error {
	if strings.Count(text, "{") != strings.Count(text, "}") {
		return errors.Injection("mismatched curly braces")
	}
	if strings.Count(text, "(") != strings.Count(text, ")") {
		return errors.Injection("mismatched parentheses")
	}

	if HasMarkers(text) {
		return nil
	}

	functions := len(functionDefPattern.FindAllStringIndex(text, -1))
	ends := countTerminators(text)
	ifs := len(ifPattern.FindAllStringIndex(text, -1))

	if functions > ends {
		return errors.Injection("missing 'end' for function definition").
			WithMeta("functions", functions).
			WithMeta("ends", ends)
	}
	if ifs > ends-functions {
		return errors.Injection("missing 'end' for if statement").
			WithMeta("ifs", ifs).
			WithMeta("ends", ends-functions)
	}
	return nil
}

// countTerminators counts `end` words followed by another word or by the
// end of the text.
func countTerminators(text string) int {
	count := 0
	for _, loc := range endPattern.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		trimmed := strings.TrimLeft(rest, " \t\r\n\f\v")
		switch {
		case trimmed == "":
			count++
		case len(trimmed) < len(rest) && isIdentPart(trimmed[0]):
			count++
		}
	}
	return count
}
