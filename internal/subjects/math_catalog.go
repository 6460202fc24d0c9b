package subjects

import (
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/content"
)

type problemPattern struct {
	template string
	rng      content.NumberRange
}

// mathTopics fixes the order problems are generated in
var mathTopics = []string{"addition", "subtraction", "multiplication", "division"}

func levelPatterns(rng content.NumberRange, templates ...string) []problemPattern {
	patterns := make([]problemPattern, len(templates))
	for i, tmpl := range templates {
		patterns[i] = problemPattern{template: tmpl, rng: rng}
	}
	return patterns
}

func problemCatalog() map[string]map[int][]problemPattern {
	small := content.NumberRange{Min: 1, Max: 10}
	medium := content.NumberRange{Min: 10, Max: 50}
	large := content.NumberRange{Min: 50, Max: 100}
	tables := content.NumberRange{Min: 1, Max: 5}
	fullTables := content.NumberRange{Min: 5, Max: 12}
	teens := content.NumberRange{Min: 10, Max: 20}

	return map[string]map[int][]problemPattern{
		"addition": {
			1: levelPatterns(small, "{a} + {b} = ?", "? + {b} = {result}"),
			2: levelPatterns(medium, "{a} + {b} + {c} = ?", "{a} + ? = {result}"),
			3: levelPatterns(large, "{a} + {b} + {c} + {d} = ?", "? + {b} + {c} = {result}"),
		},
		"subtraction": {
			1: levelPatterns(small, "{a} - {b} = ?", "{a} - ? = {result}"),
			2: levelPatterns(medium, "{a} - {b} - {c} = ?", "{a} - ? = {result}"),
			3: levelPatterns(large, "{a} - {b} - {c} = ?", "{a} - ? - {c} = {result}"),
		},
		"multiplication": {
			1: levelPatterns(tables, "{a} × {b} = ?", "? × {b} = {result}"),
			2: levelPatterns(fullTables, "{a} × {b} = ?", "{a} × ? = {result}"),
			3: levelPatterns(teens, "({a} × {b}) + {c} = ?", "{a} × ? + {c} = {result}"),
		},
		"division": {
			1: levelPatterns(tables, "{result} ÷ {b} = ?", "{result} ÷ ? = {a}"),
			2: levelPatterns(fullTables, "{result} ÷ {b} = ?", "{result} ÷ ? = {a}"),
			3: levelPatterns(teens, "({result} ÷ {b}) + {c} = ?", "{result} ÷ ? + {c} = {a}"),
		},
	}
}

func wordProblemCatalog() map[string][]string {
	return map[string][]string{
		"addition": {
			"There are {a} apples and {b} oranges in the basket. How many fruits are there in total?",
			"{name} has {a} marbles. If they get {b} more, how many marbles will they have?",
		},
		"subtraction": {
			"{name} has {a} cookies. If they give {b} to their friend, how many cookies will they have left?",
			"There are {a} birds in a tree. {b} birds fly away. How many birds are left?",
		},
		"multiplication": {
			"Each bag has {a} candies. If there are {b} bags, how many candies are there in total?",
			"{name} needs {a} pencils for each student. If there are {b} students, how many pencils are needed?",
		},
		"division": {
			"{name} has {result} stickers to share equally among {b} friends. How many stickers will each friend get?",
			"There are {result} cookies that need to be put into {b} boxes equally. How many cookies should go in each box?",
		},
	}
}

// DefaultMathProblem is emitted when no topic keyword is found
func DefaultMathProblem() content.MathProblem {
	return content.MathProblem{
		Type:     "basic",
		Template: "{a} + {b} = ?",
		Range:    content.NumberRange{Min: 1, Max: 10},
	}
}

// GenerateProblems builds problems for every topic keyword in text at the
// given difficulty. Unknown difficulties use level 1. When the text
// mentions "word" or "story", word problems for the same topics follow the
// plain ones, using the range of the topic's level.
func GenerateProblems(text string, difficulty int) []content.MathProblem {
	lower := strings.ToLower(text)
	catalog := problemCatalog()

	var problems []content.MathProblem
	levelRange := make(map[string]content.NumberRange, len(mathTopics))
	for _, topic := range mathTopics {
		if !strings.Contains(lower, topic) {
			continue
		}

		patterns, ok := catalog[topic][difficulty]
		if !ok {
			patterns = catalog[topic][1]
		}
		for _, p := range patterns {
			problems = append(problems, content.MathProblem{Type: topic, Template: p.template, Range: p.rng})
		}
		levelRange[topic] = patterns[0].rng
	}

	if strings.Contains(lower, "word") || strings.Contains(lower, "story") {
		words := wordProblemCatalog()
		for _, topic := range mathTopics {
			rng, ok := levelRange[topic]
			if !ok {
				continue
			}
			for _, tmpl := range words[topic] {
				problems = append(problems, content.MathProblem{
					Type:     topic + "_word",
					Template: tmpl,
					Range:    rng,
				})
			}
		}
	}

	if len(problems) == 0 {
		problems = append(problems, DefaultMathProblem())
	}
	return problems
}
