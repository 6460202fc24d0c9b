package content

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

var (
	titlePattern       = regexp.MustCompile(`title\s*=\s*["']([^"']+)["']`)
	descriptionPattern = regexp.MustCompile(`description\s*=\s*["']([^"']+)["']`)
	topicsPattern      = regexp.MustCompile(`topics\s*=\s*\{([^}]+)\}`)
	difficultyPattern  = regexp.MustCompile(`difficulty\s*=\s*(\d+)`)
)

// ItemBuilder turns the submatches of one extraction-pattern match into an
// item. match[0] is the whole match.
type ItemBuilder func(match []string) (Item, error)

// ExtractCommon pulls title, description, topics and difficulty out of text.
// Each field is matched independently; missing fields are left empty.
func ExtractCommon(text string) CommonFields {
	var fields CommonFields

	if m := titlePattern.FindStringSubmatch(text); m != nil {
		fields.Title = m[1]
	}
	if m := descriptionPattern.FindStringSubmatch(text); m != nil {
		fields.Description = m[1]
	}
	if m := topicsPattern.FindStringSubmatch(text); m != nil {
		fields.Topics = SplitList(m[1])
	}
	if m := difficultyPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			fields.Difficulty = &n
		}
	}

	return fields
}

// DetermineSubject finds the subject named in a path. Each subject matches
// on its canonical name or any of its aliases, case-insensitively. A path
// naming no subject, or more than one, is an AmbiguousSubject error.
func DetermineSubject(path string, aliases map[lesson.Subject][]string) (lesson.Subject, error) {
	lower := strings.ToLower(path)

	subjects := make([]lesson.Subject, 0, len(aliases))
	for s := range aliases {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i] < subjects[j] })

	var matches []string
	for _, subject := range subjects {
		names := append([]string{string(subject)}, aliases[subject]...)
		for _, name := range names {
			if name != "" && strings.Contains(lower, strings.ToLower(name)) {
				matches = append(matches, string(subject))
				break
			}
		}
	}

	if len(matches) != 1 {
		return "", errors.AmbiguousSubject(path, matches)
	}
	return lesson.Subject(matches[0]), nil
}

// ExtractSubjectContent applies pattern globally, building one item per
// match, then looks for each of the other sections as a standalone
// `name = { ... }` list.
func ExtractSubjectContent(text, contentType string, pattern *regexp.Regexp, build ItemBuilder, sections []string) (*ExtractedContent, error) {
	extracted := &ExtractedContent{
		ContentType: contentType,
		Items:       []Item{},
		Sections:    make(map[string][]string),
	}

	for _, match := range pattern.FindAllStringSubmatch(text, -1) {
		item, err := build(match)
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeExtraction, "failed to parse %s entry", contentType).
				WithMeta("match", match[0])
		}
		extracted.Items = append(extracted.Items, item)
	}

	for _, section := range sections {
		if section == contentType {
			continue
		}
		if values, ok := ExtractSection(text, section); ok {
			extracted.Sections[section] = values
		}
	}

	return extracted, nil
}

// ExtractSection finds the first `name = { a, b }` assignment
func ExtractSection(text, name string) ([]string, bool) {
	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\s*=\s*\{([^}]+)\}`)
	if err != nil {
		return nil, false
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return SplitList(m[1]), true
}

// SplitList splits a comma-separated list, trimming whitespace and quotes
// from each entry and dropping empty ones.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Atoi parses a captured integer group
func Atoi(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Extractionf("%s is not a number: %q", field, raw)
	}
	return n, nil
}
