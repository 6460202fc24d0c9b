package content

import (
	"regexp"
	"strings"
)

var (
	topicPattern     = regexp.MustCompile(`topic\s*=\s*["'](\w+)["']`)
	topicListPattern = regexp.MustCompile(`topics\s*=\s*\{([^}]+)\}`)
)

// KeywordLevel maps a keyword to the difficulty it implies
type KeywordLevel struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Level   int    `yaml:"level" json:"level"`
}

// DefaultDifficultyKeywords is the compiled-in keyword table
func DefaultDifficultyKeywords() []KeywordLevel {
	return []KeywordLevel{
		{Keyword: "basic", Level: 1},
		{Keyword: "simple", Level: 1},
		{Keyword: "elementary", Level: 1},
		{Keyword: "intermediate", Level: 2},
		{Keyword: "multiplication", Level: 2},
		{Keyword: "division", Level: 2},
		{Keyword: "advanced", Level: 3},
		{Keyword: "complex", Level: 3},
		{Keyword: "algebra", Level: 3},
		{Keyword: "calculus", Level: 3},
	}
}

// DifficultyScorer scores text by the keywords it contains
type DifficultyScorer struct {
	keywords []KeywordLevel
}

// NewDifficultyScorer uses the default table when keywords is empty
func NewDifficultyScorer(keywords []KeywordLevel) *DifficultyScorer {
	if len(keywords) == 0 {
		keywords = DefaultDifficultyKeywords()
	}
	return &DifficultyScorer{keywords: keywords}
}

// Calculate returns the highest level of any keyword present in text, or 1
// when none is.
func (d *DifficultyScorer) Calculate(text string) int {
	lower := strings.ToLower(text)
	level := 1
	for _, kw := range d.keywords {
		if strings.Contains(lower, kw.Keyword) && kw.Level > level {
			level = kw.Level
		}
	}
	return level
}

// ExtractTopics collects topic names from `topic = "x"` and
// `topics = { ... }` assignments, de-duplicated in first-seen order.
// fallback is returned when nothing is found.
func ExtractTopics(text, fallback string) []string {
	seen := make(map[string]bool)
	var topics []string
	add := func(t string) {
		t = strings.TrimSpace(strings.Trim(strings.TrimSpace(t), `"'`))
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		topics = append(topics, t)
	}

	for _, m := range topicPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range topicListPattern.FindAllStringSubmatch(text, -1) {
		for _, t := range SplitList(m[1]) {
			add(t)
		}
	}

	if len(topics) == 0 && fallback != "" {
		return []string{fallback}
	}
	return topics
}

// ContainsAny reports whether lower-cased text contains any of the words
func ContainsAny(text string, words ...string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
