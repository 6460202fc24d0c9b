// Package generation runs the lesson pipeline: template selection, content
// generation or extraction, injection, validation and output.
package generation

//go:generate mockgen -destination=mock/mock_service.go -package=generationmock github.com/KirkDiggler/lesson-forge/internal/orchestrators/generation Service

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/clients/llm"
	"github.com/KirkDiggler/lesson-forge/internal/content"
	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/metrics"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/clock"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/idgen"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/output"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/templates"
	"github.com/KirkDiggler/lesson-forge/internal/subjects"
	"github.com/KirkDiggler/lesson-forge/internal/validator"
)

// DefaultSampleCount is how many example problems are rendered when the
// caller does not ask for a number
const DefaultSampleCount = 3

// Service defines the interface for lesson generation
type Service interface {
	// GenerateScript produces a validated script for a teacher's request
	GenerateScript(ctx context.Context, input *GenerateScriptInput) (*GenerateScriptOutput, error)
	// TransformFromFile injects the content of an existing source file into
	// its subject's template
	TransformFromFile(ctx context.Context, input *TransformFromFileInput) (*TransformFromFileOutput, error)
	ValidateScript(ctx context.Context, input *ValidateScriptInput) (*ValidateScriptOutput, error)

	ListTemplates(ctx context.Context, input *ListTemplatesInput) (*ListTemplatesOutput, error)
	ListCompatibleTemplates(ctx context.Context, input *ListCompatibleTemplatesInput) (*ListCompatibleTemplatesOutput, error)
	UpdateTemplateMetadata(ctx context.Context, input *UpdateTemplateMetadataInput) (*UpdateTemplateMetadataOutput, error)

	// PreviewContent shows what a text would produce without a template
	PreviewContent(ctx context.Context, input *PreviewContentInput) (*PreviewContentOutput, error)
}

// Config holds the dependencies for the generation orchestrator
type Config struct {
	TemplateRepo templates.Repository
	OutputRepo   output.Repository
	Registry     *subjects.Registry
	Validator    validator.Validator
	IDGenerator  idgen.Generator
	OutputDir    string

	// LLMClient is only needed by GenerateScript
	LLMClient   llm.Client
	Clock       clock.Clock
	Roller      dice.Roller
	Metrics     metrics.Recorder
	Logger      *zap.Logger
	SampleCount int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.TemplateRepo == nil {
		vb.RequiredField("TemplateRepo")
	}
	if c.OutputRepo == nil {
		vb.RequiredField("OutputRepo")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Validator == nil {
		vb.RequiredField("Validator")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	errors.ValidateRequired("OutputDir", c.OutputDir, vb)
	if c.SampleCount < 0 {
		vb.InvalidField("SampleCount", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	templateRepo templates.Repository
	outputRepo   output.Repository
	registry     *subjects.Registry
	validator    validator.Validator
	idGen        idgen.Generator
	outputDir    string
	llmClient    llm.Client
	clock        clock.Clock
	roller       dice.Roller
	metrics      metrics.Recorder
	logger       *zap.Logger
	sampleCount  int
}

// NewOrchestrator creates a new generation orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		templateRepo: cfg.TemplateRepo,
		outputRepo:   cfg.OutputRepo,
		registry:     cfg.Registry,
		validator:    cfg.Validator,
		idGen:        cfg.IDGenerator,
		outputDir:    cfg.OutputDir,
		llmClient:    cfg.LLMClient,
		clock:        cfg.Clock,
		roller:       cfg.Roller,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
		sampleCount:  cfg.SampleCount,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.roller == nil {
		o.roller = dice.DefaultRoller
	}
	if o.metrics == nil {
		o.metrics = metrics.Noop{}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.sampleCount == 0 {
		o.sampleCount = DefaultSampleCount
	}

	return o, nil
}

func (o *orchestrator) ValidateScript(_ context.Context, input *ValidateScriptInput) (*ValidateScriptOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	target := validator.Context{GradeLevel: input.GradeLevel, Difficulty: input.Difficulty}
	if strings.TrimSpace(input.Subject) != "" {
		subject, err := lesson.ParseSubject(input.Subject)
		if err != nil {
			return nil, err
		}
		target.Subject = subject
	}

	result := o.validate(input.Script, target)

	o.logger.Info("validated script",
		zap.String("subject", string(target.Subject)),
		zap.Bool("valid", result.IsValid),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)),
	)

	return &ValidateScriptOutput{Result: result}, nil
}

// validate runs the validator and counts its findings
func (o *orchestrator) validate(script string, target validator.Context) *validator.ValidationResult {
	result := o.validator.Validate(script, target)
	for _, f := range result.Findings() {
		o.metrics.ValidationFinding(string(f.Type), string(f.Severity))
	}
	return result
}

func (o *orchestrator) ListTemplates(ctx context.Context, input *ListTemplatesInput) (*ListTemplatesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	subject, err := lesson.ParseSubject(input.Subject)
	if err != nil {
		return nil, err
	}

	out, err := o.templateRepo.ListForSubject(ctx, &templates.ListForSubjectInput{Subject: subject})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s templates", subject)
	}
	return &ListTemplatesOutput{Templates: out.Templates}, nil
}

func (o *orchestrator) ListCompatibleTemplates(ctx context.Context, input *ListCompatibleTemplatesInput) (*ListCompatibleTemplatesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	subject, err := lesson.ParseSubject(input.Subject)
	if err != nil {
		return nil, err
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("grade_level", input.GradeLevel, lesson.MinGrade, lesson.MaxGrade, vb)
	errors.ValidateRange("difficulty", input.Difficulty, lesson.DifficultyEasy, lesson.DifficultyHard, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.templateRepo.ListCompatible(ctx, &templates.ListCompatibleInput{
		Subject:    subject,
		GradeLevel: input.GradeLevel,
		Difficulty: input.Difficulty,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list compatible %s templates", subject)
	}
	return &ListCompatibleTemplatesOutput{Templates: out.Templates}, nil
}

func (o *orchestrator) UpdateTemplateMetadata(ctx context.Context, input *UpdateTemplateMetadataInput) (*UpdateTemplateMetadataOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	subject, err := lesson.ParseSubject(input.Subject)
	if err != nil {
		return nil, err
	}
	if len(input.Updates) == 0 {
		return nil, errors.InvalidArgument("no metadata updates given")
	}

	out, err := o.templateRepo.UpdateMetadata(ctx, &templates.UpdateMetadataInput{
		Subject: subject,
		Name:    input.Name,
		Updates: input.Updates,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update template %s", lesson.TemplateKey(subject, input.Name))
	}

	o.logger.Info("updated template", zap.String("template", out.Template.Key()))
	return &UpdateTemplateMetadataOutput{Template: out.Template}, nil
}

func (o *orchestrator) PreviewContent(_ context.Context, input *PreviewContentInput) (*PreviewContentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Samples < 0 {
		return nil, errors.InvalidArgument("samples cannot be negative")
	}

	subject, err := lesson.ParseSubject(input.Subject)
	if err != nil {
		return nil, err
	}
	plugin, err := o.registry.Get(subject)
	if err != nil {
		return nil, err
	}

	common := content.ExtractCommon(input.Text)
	extracted, err := plugin.Extract(input.Text)
	if err != nil {
		return nil, err
	}

	data, err := plugin.Transform(&subjects.TransformInput{
		Content: extracted,
		Common:  common,
		RawText: input.Text,
	})
	if err != nil {
		return nil, err
	}

	count := input.Samples
	if count == 0 {
		count = o.sampleCount
	}
	samples, err := o.renderSamples(data.Items(), count)
	if err != nil {
		return nil, err
	}

	return &PreviewContentOutput{
		Subject:   subject,
		Common:    common,
		Items:     data.Items(),
		Fragments: data.Fragments(),
		Samples:   samples,
	}, nil
}

// renderSamples rolls count samples, cycling through items
func (o *orchestrator) renderSamples(items []content.Item, count int) ([]string, error) {
	if len(items) == 0 {
		return nil, nil
	}

	samples := make([]string, 0, count)
	for i := 0; i < count; i++ {
		s, err := content.RenderSample(items[i%len(items)], o.roller)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}
