package content

import (
	"regexp"
	"sort"
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

// InjectInput describes one injection pass over a template
type InjectInput struct {
	// Points maps injection point names to their markers
	Points map[string]string
	// Fragments maps injection point names to rendered Lua. A point with no
	// fragment has its marker removed.
	Fragments map[string]string
	// FunctionHeaders marks points whose fragment replaces an existing
	// function wholesale when the header is found in the template.
	FunctionHeaders map[string]*regexp.Regexp
}

// Inject splices fragments into a template. The template must carry every
// marker exactly once, and the result must carry none and pass CheckBalance.
func Inject(template string, input *InjectInput) (string, error) {
	if input == nil {
		return "", errors.InvalidArgument("inject input is required")
	}
	if err := ValidateTemplate(template, input.Points); err != nil {
		return "", err
	}

	out := template
	for _, name := range sortedKeys(input.Points) {
		marker := input.Points[name]
		fragment, hasFragment := input.Fragments[name]

		if header := input.FunctionHeaders[name]; header != nil && hasFragment {
			if start, end, ok := FindFunction(out, header); ok {
				out = out[:start] + strings.TrimRight(fragment, "\n") + out[end:]
				out = strings.Replace(out, marker, "", 1)
				continue
			}
		}

		out = strings.Replace(out, marker, fragment, 1)
	}

	if err := ValidateGeneratedScript(out, input.Points); err != nil {
		return "", err
	}
	return out, nil
}

// ValidateTemplate checks that every marker appears exactly once
func ValidateTemplate(template string, points map[string]string) error {
	for _, name := range sortedKeys(points) {
		marker := points[name]
		switch n := strings.Count(template, marker); {
		case n == 0:
			return errors.Injectionf("missing injection point: %s", marker).
				WithMeta("point", name)
		case n > 1:
			return errors.Injectionf("injection point %s appears %d times", marker, n).
				WithMeta("point", name)
		}
	}
	return nil
}

// ValidateGeneratedScript checks that no marker survived injection and that
// the result passes the balance check.
func ValidateGeneratedScript(script string, points map[string]string) error {
	for _, name := range sortedKeys(points) {
		marker := points[name]
		if strings.Contains(script, marker) {
			return errors.Injectionf("unfilled injection point found: %s", marker).
				WithMeta("point", name)
		}
	}
	return CheckBalance(script)
}

// FindFunction locates the function whose header matches and returns the
// span from the header to its matching `end`.
func FindFunction(src string, header *regexp.Regexp) (int, int, bool) {
	loc := header.FindStringIndex(src)
	if loc == nil {
		return 0, 0, false
	}
	end, ok := blockEnd(src, loc[0])
	if !ok {
		return 0, 0, false
	}
	return loc[0], end, true
}

// blockEnd scans Lua keywords from `from` and returns the offset just past
// the `end` that closes the first block opened. Strings and comments are
// skipped.
func blockEnd(src string, from int) (int, bool) {
	depth := 0
	i := from
	for i < len(src) {
		c := src[i]
		switch {
		case c == '-' && strings.HasPrefix(src[i:], "--"):
			i = skipComment(src, i)
		case c == '"' || c == '\'':
			i = skipQuoted(src, i)
		case c == '[' && longBracketLevel(src, i) >= 0:
			i = skipLongBracket(src, i)
		case isIdentStart(c):
			j := i
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			switch src[i:j] {
			case "function", "if", "do", "repeat":
				depth++
			case "end", "until":
				depth--
				if depth == 0 {
					return j, true
				}
			}
			i = j
		case c >= '0' && c <= '9':
			for i < len(src) && (isIdentPart(src[i]) || src[i] == '.') {
				i++
			}
		default:
			i++
		}
	}
	return 0, false
}

func skipComment(src string, i int) int {
	i += 2
	if i < len(src) && src[i] == '[' && longBracketLevel(src, i) >= 0 {
		return skipLongBracket(src, i)
	}
	if nl := strings.IndexByte(src[i:], '\n'); nl >= 0 {
		return i + nl + 1
	}
	return len(src)
}

func skipQuoted(src string, i int) int {
	quote := src[i]
	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case quote, '\n':
			return i + 1
		}
		i++
	}
	return len(src)
}

// longBracketLevel returns the level of a [[ or [==[ opener at i, or -1
func longBracketLevel(src string, i int) int {
	j := i + 1
	for j < len(src) && src[j] == '=' {
		j++
	}
	if j < len(src) && src[j] == '[' {
		return j - i - 1
	}
	return -1
}

func skipLongBracket(src string, i int) int {
	level := longBracketLevel(src, i)
	closer := "]" + strings.Repeat("=", level) + "]"
	start := i + level + 2
	if idx := strings.Index(src[start:], closer); idx >= 0 {
		return start + idx + len(closer)
	}
	return len(src)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
