package subjects

import (
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/lesson-forge/internal/content"
	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

// Config is the static per-subject configuration
type Config struct {
	Subject           lesson.Subject    `yaml:"subject"`
	TemplateFile      string            `yaml:"template_file"`
	InjectionPoints   map[string]string `yaml:"injection_points"`
	FunctionHeaders   map[string]string `yaml:"function_headers,omitempty"`
	ContentType       string            `yaml:"content_type"`
	RequiredSections  []string          `yaml:"required_sections"`
	ExtractionPattern string            `yaml:"extraction_pattern"`
	PathAliases       []string          `yaml:"path_aliases,omitempty"`
	RequiredSymbols   []string          `yaml:"required_symbols"`
}

// Validate checks the config is complete and its patterns compile
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Subject == "" {
		vb.RequiredField("subject")
	}
	errors.ValidateRequired("template_file", c.TemplateFile, vb)
	errors.ValidateRequired("content_type", c.ContentType, vb)
	if len(c.InjectionPoints) == 0 {
		vb.RequiredField("injection_points")
	}
	for name, marker := range c.InjectionPoints {
		if !content.HasMarkers(marker) {
			vb.Fieldf("injection_points", "%s marker %q is not of the form -- [INJECT_NAME]", name, marker)
		}
	}
	if _, err := regexp.Compile(c.ExtractionPattern); err != nil || c.ExtractionPattern == "" {
		vb.InvalidField("extraction_pattern", "must be a valid regular expression")
	}
	for name, header := range c.FunctionHeaders {
		if _, ok := c.InjectionPoints[name]; !ok {
			vb.Fieldf("function_headers", "%s is not an injection point", name)
		}
		if _, err := regexp.Compile(header); err != nil {
			vb.Fieldf("function_headers", "%s is not a valid regular expression", name)
		}
	}

	return vb.Build()
}

// TemplateName is the template file name without its extension
func (c Config) TemplateName() string {
	return strings.TrimSuffix(c.TemplateFile, ".lua")
}

// DefaultConfigs returns the compiled-in configuration of every subject
func DefaultConfigs() []Config {
	return []Config{
		{
			Subject:      lesson.SubjectMathematics,
			TemplateFile: "MathQuest.lua",
			InjectionPoints: map[string]string{
				"dungeons": "-- [INJECT_DUNGEONS]",
				"problems": "-- [INJECT_PROBLEMS]",
			},
			FunctionHeaders: map[string]string{
				"problems": `function\s+MathQuestArena:generateProblem\s*\(`,
			},
			ContentType:       "problems",
			RequiredSections:  []string{"problems"},
			ExtractionPattern: `\{\s*type\s*=\s*["']([^"']+)["'],\s*template\s*=\s*["']([^"']+)["'],\s*range\s*=\s*\{\s*min\s*=\s*(\d+),\s*max\s*=\s*(\d+)\s*\}`,
			PathAliases:       []string{"maths"},
			RequiredSymbols:   []string{"generateProblem", "checkAnswer", "difficulty"},
		},
		{
			Subject:      lesson.SubjectScience,
			TemplateFile: "BioLabSimulator.lua",
			InjectionPoints: map[string]string{
				"experiments": "-- [INJECT_EXPERIMENTS]",
				"equipment":   "-- [INJECT_EQUIPMENT_SETUP]",
				"generator":   "-- [INJECT_EXPERIMENT_GENERATOR]",
			},
			FunctionHeaders: map[string]string{
				"generator": `function\s+BioLabSimulator:generateExperiment\s*\(`,
			},
			ContentType:       "experiments",
			RequiredSections:  []string{"experiments", "equipment", "safety_guidelines"},
			ExtractionPattern: `\{\s*type\s*=\s*["']([^"']+)["'],\s*template\s*=\s*["']([^"']+)["'],\s*equipment\s*=\s*\{([^}]+)\},\s*safety\s*=\s*\{([^}]+)\}`,
			RequiredSymbols:   []string{"setupExperiment", "checkResults", "safetyChecks"},
		},
		{
			Subject:      lesson.SubjectHistory,
			TemplateFile: "HistoryQuest.lua",
			InjectionPoints: map[string]string{
				"scenarios":  "-- [INJECT_SCENARIOS]",
				"artifacts":  "-- [INJECT_ARTIFACTS]",
				"activities": "-- [INJECT_ACTIVITIES]",
			},
			ContentType:       "scenarios",
			RequiredSections:  []string{"scenarios", "artifacts", "activities"},
			ExtractionPattern: `\{\s*type\s*=\s*["']([^"']+)["'],\s*template\s*=\s*["']([^"']+)["'],\s*period\s*=\s*["']([^"']+)["'],\s*figures\s*=\s*\{([^}]+)\}`,
			RequiredSymbols:   []string{"loadHistoricalData", "displayTimeline", "checkHistoricalAccuracy"},
		},
		{
			Subject:      lesson.SubjectLanguageArts,
			TemplateFile: "LanguageQuest.lua",
			InjectionPoints: map[string]string{
				"exercises": "-- [INJECT_EXERCISES]",
				"skills":    "-- [INJECT_SKILLS]",
				"resources": "-- [INJECT_RESOURCES]",
			},
			ContentType:       "exercises",
			RequiredSections:  []string{"exercises", "skills", "resources"},
			ExtractionPattern: `\{\s*type\s*=\s*["']([^"']+)["'],\s*template\s*=\s*["']([^"']+)["'],\s*skills\s*=\s*\{([^}]+)\},\s*activities\s*=\s*\{([^}]+)\}`,
			PathAliases:       []string{"languagearts", "language-arts", "language arts"},
			RequiredSymbols:   []string{"processText", "checkGrammar", "vocabularyCheck"},
		},
	}
}

// File is the YAML layout of a subjects override file
type File struct {
	DifficultyKeywords []content.KeywordLevel `yaml:"difficulty_keywords"`
	Subjects           []Config               `yaml:"subjects"`
}

// LoadFile reads an override file and merges it over the defaults. Each
// subject entry only replaces the fields it sets.
func LoadFile(path string) (*RegistryConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "failed to read subjects file").
			WithPath(path)
	}

	var file File
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "failed to parse subjects file").
			WithPath(path)
	}

	return MergeConfigs(DefaultConfigs(), &file), nil
}

// MergeConfigs overlays file on the given base configs
func MergeConfigs(base []Config, file *File) *RegistryConfig {
	merged := make([]Config, len(base))
	copy(merged, base)

	for _, override := range file.Subjects {
		idx := -1
		for i := range merged {
			if merged[i].Subject == override.Subject {
				idx = i
				break
			}
		}
		if idx < 0 {
			merged = append(merged, override)
			continue
		}
		merged[idx] = mergeConfig(merged[idx], override)
	}

	return &RegistryConfig{
		Configs:            merged,
		DifficultyKeywords: file.DifficultyKeywords,
	}
}

func mergeConfig(base, override Config) Config {
	if override.TemplateFile != "" {
		base.TemplateFile = override.TemplateFile
	}
	if len(override.InjectionPoints) > 0 {
		base.InjectionPoints = override.InjectionPoints
	}
	if len(override.FunctionHeaders) > 0 {
		base.FunctionHeaders = override.FunctionHeaders
	}
	if override.ContentType != "" {
		base.ContentType = override.ContentType
	}
	if len(override.RequiredSections) > 0 {
		base.RequiredSections = override.RequiredSections
	}
	if override.ExtractionPattern != "" {
		base.ExtractionPattern = override.ExtractionPattern
	}
	if len(override.PathAliases) > 0 {
		base.PathAliases = override.PathAliases
	}
	if len(override.RequiredSymbols) > 0 {
		base.RequiredSymbols = override.RequiredSymbols
	}
	return base
}
