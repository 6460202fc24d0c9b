package subjects

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/content"
)

// LanguageGameData is the language arts bundle
type LanguageGameData struct {
	Title      string
	Difficulty int
	Topics     []string
	Exercises  []content.Exercise
	Skills     []string
	Resources  []string
}

var _ GameData = (*LanguageGameData)(nil)

type languagePlugin struct {
	*base
}

func newLanguagePlugin(cfg Config, scorer *content.DifficultyScorer) (Plugin, error) {
	b, err := newBase(cfg, scorer, buildExercise)
	if err != nil {
		return nil, err
	}
	return &languagePlugin{base: b}, nil
}

func buildExercise(match []string) (content.Item, error) {
	return content.Exercise{
		Type:       match[1],
		Template:   match[2],
		Skills:     content.SplitList(match[3]),
		Activities: content.SplitList(match[4]),
	}, nil
}

func (p *languagePlugin) Transform(input *TransformInput) (GameData, error) {
	if input == nil {
		input = &TransformInput{}
	}

	difficulty := p.score(input)
	data := &LanguageGameData{
		Title:      input.Common.Title,
		Difficulty: difficulty,
		Topics:     topicsOrFallback(input, "reading"),
	}

	for _, item := range input.items() {
		if ex, ok := item.(content.Exercise); ok {
			data.Exercises = append(data.Exercises, ex)
		}
	}
	if len(data.Exercises) == 0 {
		data.Exercises = []content.Exercise{FallbackExercise(input.scoreText())}
	}

	// skills default to the union of the exercises' skills
	seen := make(map[string]bool)
	var skills []string
	for _, ex := range data.Exercises {
		for _, s := range ex.Skills {
			if !seen[s] {
				seen[s] = true
				skills = append(skills, s)
			}
		}
	}
	data.Skills = sectionOr(input, "skills", skills)

	resources := []string{"Dictionary", "Word Wall"}
	if difficulty > 2 {
		resources = append(resources, "Thesaurus", "Style Guide")
	}
	data.Resources = sectionOr(input, "resources", resources)

	return data, nil
}

// FallbackExercise picks an exercise by the first matching skill keyword
func FallbackExercise(text string) content.Exercise {
	switch {
	case content.ContainsAny(text, "grammar"):
		return content.Exercise{
			Type:       "grammar_fix",
			Template:   "Fix the grammar in: {sentence}",
			Skills:     []string{"grammar", "punctuation"},
			Activities: []string{"sentence_repair"},
		}
	case content.ContainsAny(text, "vocabulary"):
		return content.Exercise{
			Type:       "vocabulary_match",
			Template:   "Match {word} to its meaning",
			Skills:     []string{"vocabulary"},
			Activities: []string{"matching"},
		}
	case content.ContainsAny(text, "spelling"):
		return content.Exercise{
			Type:       "spelling_bee",
			Template:   "Spell the word you hear: {word}",
			Skills:     []string{"spelling"},
			Activities: []string{"dictation"},
		}
	case content.ContainsAny(text, "writing"):
		return content.Exercise{
			Type:       "creative_writing",
			Template:   "Write a short story about {prompt}",
			Skills:     []string{"writing", "creativity"},
			Activities: []string{"story_writing"},
		}
	default:
		return content.Exercise{
			Type:       "reading_comprehension",
			Template:   "Read {passage} and answer {question}",
			Skills:     []string{"reading", "comprehension"},
			Activities: []string{"reading_quiz"},
		}
	}
}

func (d *LanguageGameData) Items() []content.Item {
	items := make([]content.Item, len(d.Exercises))
	for i, e := range d.Exercises {
		items[i] = e
	}
	return items
}

func (d *LanguageGameData) Fragments() map[string]string {
	var exercises strings.Builder
	for _, e := range d.Exercises {
		fmt.Fprintf(&exercises, "        { type = %s, template = %s, skills = %s, activities = %s },\n",
			content.LuaString(e.Type), content.LuaString(e.Template),
			content.LuaStringList(e.Skills), content.LuaStringList(e.Activities))
	}

	return map[string]string{
		"exercises": exercises.String(),
		"skills":    luaLines(d.Skills, "        "),
		"resources": luaLines(d.Resources, "        "),
	}
}
