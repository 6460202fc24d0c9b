package subjects

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/content"
	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

// Plugin is the subject-specific half of the content pipeline
type Plugin interface {
	Subject() lesson.Subject
	Config() Config
	// Extract pulls the subject's items and required sections out of text
	Extract(text string) (*content.ExtractedContent, error)
	// Transform builds injectable game data from extracted content. When the
	// input carries no items the plugin generates them from RawText.
	Transform(input *TransformInput) (GameData, error)
	// Inject splices data into template text at the configured points
	Inject(templateContent string, data GameData) (string, error)
	// InjectWith is Inject with an explicit point set, used when template
	// metadata declares its own markers.
	InjectWith(templateContent string, points map[string]string, data GameData) (string, error)
	RequiredSymbols() []string
	// Validate checks the common fields and required sections are present
	Validate(extracted *content.ExtractedContent, common content.CommonFields) error
}

// GameData is a subject's structured bundle ready for injection
type GameData interface {
	// Fragments maps injection point names to rendered Lua
	Fragments() map[string]string
	// Items are the content items the fragments were built from
	Items() []content.Item
}

// TransformInput is the input to Plugin.Transform
type TransformInput struct {
	// Content is the extracted content, nil when generating from text alone
	Content *content.ExtractedContent
	Common  content.CommonFields
	RawText string
	// ScoreText is scored for difficulty and feeds the generated fallback
	// items. RawText is used when it is empty.
	ScoreText string
}

func (t *TransformInput) scoreText() string {
	if t.ScoreText != "" {
		return t.ScoreText
	}
	return t.RawText
}

func (t *TransformInput) items() []content.Item {
	if t.Content == nil {
		return nil
	}
	return t.Content.Items
}

func (t *TransformInput) section(name string) []string {
	if t.Content == nil {
		return nil
	}
	return t.Content.Section(name)
}

// base carries the config-driven behavior every plugin shares
type base struct {
	cfg     Config
	pattern *regexp.Regexp
	headers map[string]*regexp.Regexp
	scorer  *content.DifficultyScorer
	build   content.ItemBuilder
}

func newBase(cfg Config, scorer *content.DifficultyScorer, build content.ItemBuilder) (*base, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeConfiguration, "invalid %s config", cfg.Subject)
	}

	headers := make(map[string]*regexp.Regexp, len(cfg.FunctionHeaders))
	for name, raw := range cfg.FunctionHeaders {
		headers[name] = regexp.MustCompile(raw)
	}

	if scorer == nil {
		scorer = content.NewDifficultyScorer(nil)
	}

	return &base{
		cfg:     cfg,
		pattern: regexp.MustCompile(cfg.ExtractionPattern),
		headers: headers,
		scorer:  scorer,
		build:   build,
	}, nil
}

func (b *base) Subject() lesson.Subject {
	return b.cfg.Subject
}

func (b *base) Config() Config {
	return b.cfg
}

func (b *base) RequiredSymbols() []string {
	return b.cfg.RequiredSymbols
}

func (b *base) Extract(text string) (*content.ExtractedContent, error) {
	return content.ExtractSubjectContent(text, b.cfg.ContentType, b.pattern, b.build, b.cfg.RequiredSections)
}

func (b *base) Inject(templateContent string, data GameData) (string, error) {
	return b.InjectWith(templateContent, b.cfg.InjectionPoints, data)
}

func (b *base) InjectWith(templateContent string, points map[string]string, data GameData) (string, error) {
	if data == nil {
		return "", errors.InvalidArgument("game data is required")
	}
	if len(points) == 0 {
		points = b.cfg.InjectionPoints
	}

	return content.Inject(templateContent, &content.InjectInput{
		Points:          points,
		Fragments:       data.Fragments(),
		FunctionHeaders: b.headers,
	})
}

func (b *base) Validate(extracted *content.ExtractedContent, common content.CommonFields) error {
	if missing := common.Missing(); len(missing) > 0 {
		return errors.Extractionf("missing required fields: %s", strings.Join(missing, ", ")).
			WithMeta("subject", string(b.cfg.Subject))
	}
	if extracted == nil {
		return errors.Extraction("no extracted content")
	}
	if missing := extracted.Missing(b.cfg.RequiredSections); len(missing) > 0 {
		return errors.Extractionf("missing required sections: %s", strings.Join(missing, ", ")).
			WithMeta("subject", string(b.cfg.Subject))
	}
	return nil
}

func (b *base) score(input *TransformInput) int {
	return b.scorer.Calculate(input.scoreText())
}

func topicsOrFallback(input *TransformInput, fallback string) []string {
	if topics := content.ExtractTopics(input.RawText, ""); len(topics) > 0 {
		return topics
	}
	if len(input.Common.Topics) > 0 {
		return input.Common.Topics
	}
	return []string{fallback}
}

// emptyGameData has no fragments; injecting it only consumes markers
type emptyGameData struct{}

func (emptyGameData) Fragments() map[string]string { return map[string]string{} }
func (emptyGameData) Items() []content.Item        { return nil }

// EmptyGameData returns data with no fragments and no items
func EmptyGameData() GameData {
	return emptyGameData{}
}

// sectionOr returns the extracted section when present and non-empty
func sectionOr(input *TransformInput, name string, fallback []string) []string {
	if values := input.section(name); len(values) > 0 {
		return values
	}
	return fallback
}

func luaLines(values []string, indent string) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(indent)
		sb.WriteString(content.LuaString(v))
		sb.WriteString(",\n")
	}
	return sb.String()
}
