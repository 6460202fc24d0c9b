package subjects

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/content"
)

// Safety levels
const (
	SafetyBasic    = "Basic"
	SafetyAdvanced = "Advanced"
)

func basicEquipment() []string {
	return []string{"Microscope", "Test Tubes", "Beakers", "Safety Goggles"}
}

func advancedEquipment() []string {
	return []string{"Centrifuge", "Spectrophotometer", "Bunsen Burner"}
}

func safetyGuidelines(level string) []string {
	guidelines := []string{"Wear safety goggles", "Wash hands after the experiment"}
	if level == SafetyAdvanced {
		guidelines = append(guidelines, "Work under teacher supervision", "Know where the eye wash station is")
	}
	return guidelines
}

// ScienceGameData is the science bundle
type ScienceGameData struct {
	ExperimentName   string
	DisplayName      string
	Difficulty       int
	Topics           []string
	Equipment        []string
	SafetyLevel      string
	SafetyGuidelines []string
	Experiments      []content.Experiment
}

var _ GameData = (*ScienceGameData)(nil)

type sciencePlugin struct {
	*base
}

func newSciencePlugin(cfg Config, scorer *content.DifficultyScorer) (Plugin, error) {
	b, err := newBase(cfg, scorer, buildExperiment)
	if err != nil {
		return nil, err
	}
	return &sciencePlugin{base: b}, nil
}

func buildExperiment(match []string) (content.Item, error) {
	return content.Experiment{
		Type:      match[1],
		Template:  match[2],
		Equipment: content.SplitList(match[3]),
		Safety:    content.SplitList(match[4]),
	}, nil
}

func (p *sciencePlugin) Transform(input *TransformInput) (GameData, error) {
	if input == nil {
		input = &TransformInput{}
	}

	title := input.Common.Title
	if title == "" {
		title = "Science Lab"
	}
	difficulty := p.score(input)

	equipment := basicEquipment()
	if difficulty > 2 {
		equipment = append(equipment, advancedEquipment()...)
	}
	level := SafetyBasic
	if difficulty > 2 {
		level = SafetyAdvanced
	}

	data := &ScienceGameData{
		ExperimentName:   content.CleanName(title),
		DisplayName:      title,
		Difficulty:       difficulty,
		Topics:           topicsOrFallback(input, "basic_science"),
		Equipment:        sectionOr(input, "equipment", equipment),
		SafetyLevel:      level,
		SafetyGuidelines: sectionOr(input, "safety_guidelines", safetyGuidelines(level)),
	}

	for _, item := range input.items() {
		if exp, ok := item.(content.Experiment); ok {
			data.Experiments = append(data.Experiments, exp)
		}
	}
	if len(data.Experiments) == 0 {
		data.Experiments = GenerateExperiments(input.scoreText())
	}

	return data, nil
}

// GenerateExperiments picks experiments by keyword, falling back to a
// plain observation.
func GenerateExperiments(text string) []content.Experiment {
	var experiments []content.Experiment

	if content.ContainsAny(text, "microscope", "cell") {
		experiments = append(experiments, content.Experiment{
			Type:      "microscopy",
			Template:  "Observe {specimen} under the microscope at {magnification}x magnification",
			Equipment: []string{"Microscope", "Slides", "Cover Slips"},
			Safety:    []string{"Handle glass slides carefully", "Clean lenses after use"},
		})
	}
	if content.ContainsAny(text, "chemical", "reaction") {
		experiments = append(experiments, content.Experiment{
			Type:      "chemical_reaction",
			Template:  "Mix {reactant_a} with {reactant_b} and record what changes",
			Equipment: []string{"Test Tubes", "Beakers", "Safety Goggles"},
			Safety:    []string{"Wear safety goggles", "Never taste chemicals"},
		})
	}
	if content.ContainsAny(text, "dna", "genetics") {
		experiments = append(experiments, content.Experiment{
			Type:      "dna_extraction",
			Template:  "Extract DNA from {sample} using dish soap and salt",
			Equipment: []string{"Test Tubes", "Pipettes", "Ice Bath"},
			Safety:    []string{"Wear gloves", "Dispose of samples properly"},
		})
	}

	if len(experiments) == 0 {
		experiments = append(experiments, content.Experiment{
			Type:      "observation",
			Template:  "Observe {subject} and record {observations}",
			Equipment: []string{"Magnifying Glass", "Notebook"},
			Safety:    []string{"Wash hands after the experiment"},
		})
	}
	return experiments
}

func (d *ScienceGameData) Items() []content.Item {
	items := make([]content.Item, len(d.Experiments))
	for i, e := range d.Experiments {
		items[i] = e
	}
	return items
}

func (d *ScienceGameData) Fragments() map[string]string {
	return map[string]string{
		"experiments": d.renderExperiments(),
		"equipment":   d.renderEquipment(),
		"generator":   d.renderGenerator(),
	}
}

func (d *ScienceGameData) renderExperiments() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "        [%s] = {\n", content.LuaString(d.ExperimentName))
	fmt.Fprintf(&sb, "            name = %s,\n", content.LuaString(d.DisplayName))
	fmt.Fprintf(&sb, "            difficulty = %d,\n", d.Difficulty)
	fmt.Fprintf(&sb, "            safetyLevel = %s,\n", content.LuaString(d.SafetyLevel))
	fmt.Fprintf(&sb, "            topics = %s,\n", content.LuaStringList(d.Topics))
	sb.WriteString("            procedures = {\n")
	for _, e := range d.Experiments {
		fmt.Fprintf(&sb, "                { type = %s, template = %s, equipment = %s, safety = %s },\n",
			content.LuaString(e.Type), content.LuaString(e.Template),
			content.LuaStringList(e.Equipment), content.LuaStringList(e.Safety))
	}
	sb.WriteString("            },\n")
	sb.WriteString("        },\n")
	return sb.String()
}

func (d *ScienceGameData) renderEquipment() string {
	var sb strings.Builder
	sb.WriteString("BioLabSimulator.equipmentSetup = {\n")
	fmt.Fprintf(&sb, "    equipment = %s,\n", content.LuaStringList(d.Equipment))
	fmt.Fprintf(&sb, "    safetyLevel = %s,\n", content.LuaString(d.SafetyLevel))
	fmt.Fprintf(&sb, "    safety_guidelines = %s,\n", content.LuaStringList(d.SafetyGuidelines))
	sb.WriteString("}\n")
	return sb.String()
}

func (d *ScienceGameData) renderGenerator() string {
	fallback := "observation"
	if len(d.Experiments) > 0 {
		fallback = d.Experiments[0].Type
	}

	var sb strings.Builder
	sb.WriteString("function BioLabSimulator:generateExperiment(topic)\n")
	sb.WriteString("    local experiments = {\n")
	for _, e := range d.Experiments {
		fmt.Fprintf(&sb, "        [%s] = {\n", content.LuaString(e.Type))
		fmt.Fprintf(&sb, "            instructions = %s,\n", content.LuaString(e.Template))
		fmt.Fprintf(&sb, "            equipment = %s,\n", content.LuaStringList(e.Equipment))
		fmt.Fprintf(&sb, "            safety = %s,\n", content.LuaStringList(e.Safety))
		sb.WriteString("        },\n")
	}
	sb.WriteString("    }\n")
	sb.WriteString("    local experiment = experiments[topic]\n")
	sb.WriteString("    if experiment == nil then\n")
	fmt.Fprintf(&sb, "        experiment = experiments[%s]\n", content.LuaString(fallback))
	sb.WriteString("    end\n")
	fmt.Fprintf(&sb, "    experiment.difficulty = %d\n", d.Difficulty)
	sb.WriteString("    return experiment\n")
	sb.WriteString("end\n")
	return sb.String()
}
