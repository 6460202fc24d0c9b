package subjects

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/content"
)

// HistoryGameData is the history bundle
type HistoryGameData struct {
	Title      string
	Difficulty int
	Topics     []string
	Scenarios  []content.Scenario
	Artifacts  []string
	Activities []string
}

var _ GameData = (*HistoryGameData)(nil)

type historyPlugin struct {
	*base
}

func newHistoryPlugin(cfg Config, scorer *content.DifficultyScorer) (Plugin, error) {
	b, err := newBase(cfg, scorer, buildScenario)
	if err != nil {
		return nil, err
	}
	return &historyPlugin{base: b}, nil
}

func buildScenario(match []string) (content.Item, error) {
	return content.Scenario{
		Type:     match[1],
		Template: match[2],
		Period:   match[3],
		Figures:  content.SplitList(match[4]),
	}, nil
}

func (p *historyPlugin) Transform(input *TransformInput) (GameData, error) {
	if input == nil {
		input = &TransformInput{}
	}

	data := &HistoryGameData{
		Title:      input.Common.Title,
		Difficulty: p.score(input),
		Topics:     topicsOrFallback(input, "world_history"),
		Artifacts:  sectionOr(input, "artifacts", []string{"Map", "Letter", "Coin"}),
		Activities: sectionOr(input, "activities", []string{"timeline_sort", "quiz"}),
	}

	for _, item := range input.items() {
		if sc, ok := item.(content.Scenario); ok {
			data.Scenarios = append(data.Scenarios, sc)
		}
	}
	if len(data.Scenarios) == 0 {
		data.Scenarios = []content.Scenario{FallbackScenario(input.scoreText())}
	}

	return data, nil
}

// FallbackScenario picks a scenario by the first matching era keyword
func FallbackScenario(text string) content.Scenario {
	switch {
	case content.ContainsAny(text, "ancient"):
		return content.Scenario{
			Type:     "ancient_civilization",
			Template: "Walk through {city} as a {role} in ancient times",
			Period:   "Ancient",
			Figures:  []string{"Cleopatra", "Julius Caesar"},
		}
	case content.ContainsAny(text, "revolution"):
		return content.Scenario{
			Type:     "revolution",
			Template: "Debate the causes of the {event} with {figure}",
			Period:   "Age of Revolutions",
			Figures:  []string{"George Washington", "Marie Antoinette"},
		}
	case content.ContainsAny(text, "war"):
		return content.Scenario{
			Type:     "conflict",
			Template: "Plan supplies for {army} during the {campaign}",
			Period:   "Modern",
			Figures:  []string{"Winston Churchill", "Franklin D. Roosevelt"},
		}
	case content.ContainsAny(text, "exploration"):
		return content.Scenario{
			Type:     "exploration",
			Template: "Chart a route from {origin} to {destination}",
			Period:   "Age of Exploration",
			Figures:  []string{"Ferdinand Magellan", "Zheng He"},
		}
	default:
		return content.Scenario{
			Type:     "timeline",
			Template: "Place {event} on the timeline between {before} and {after}",
			Period:   "Various",
			Figures:  []string{"Historian"},
		}
	}
}

func (d *HistoryGameData) Items() []content.Item {
	items := make([]content.Item, len(d.Scenarios))
	for i, s := range d.Scenarios {
		items[i] = s
	}
	return items
}

func (d *HistoryGameData) Fragments() map[string]string {
	var scenarios strings.Builder
	for _, s := range d.Scenarios {
		fmt.Fprintf(&scenarios, "        { type = %s, template = %s, period = %s, figures = %s },\n",
			content.LuaString(s.Type), content.LuaString(s.Template),
			content.LuaString(s.Period), content.LuaStringList(s.Figures))
	}

	return map[string]string{
		"scenarios":  scenarios.String(),
		"artifacts":  luaLines(d.Artifacts, "        "),
		"activities": luaLines(d.Activities, "        "),
	}
}
