package generation

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/clients/llm"
	"github.com/KirkDiggler/lesson-forge/internal/content"
	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/metrics"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/output"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/templates"
	"github.com/KirkDiggler/lesson-forge/internal/subjects"
	"github.com/KirkDiggler/lesson-forge/internal/validator"
)

const outputTimeFormat = "20060102_150405"

func (o *orchestrator) GenerateScript(ctx context.Context, input *GenerateScriptInput) (*GenerateScriptOutput, error) {
	if err := o.validateGenerateInput(input); err != nil {
		return nil, err
	}
	if o.llmClient == nil {
		return nil, errors.FailedPrecondition("no llm client configured")
	}

	subject, _ := lesson.ParseSubject(string(input.Request.Subject))
	gameRequest := input.Request
	gameRequest.Subject = subject
	teacher := input.Teacher
	if teacher.GradeLevel == 0 {
		teacher.GradeLevel = gameRequest.GradeLevel
	}

	req := &lesson.GenerationRequest{
		ID:        o.idGen.Generate(),
		Teacher:   teacher,
		Request:   gameRequest,
		Timestamp: o.clock.Now(),
	}
	log := o.logger.With(
		zap.String("request_id", req.ID),
		zap.String("subject", string(subject)),
	)

	if _, err := o.outputRepo.WriteRequestSnapshot(ctx, &output.WriteRequestSnapshotInput{
		Dir:     o.outputDir,
		Request: req,
	}); err != nil {
		o.metrics.ScriptGenerated(string(subject), metrics.OutcomeError)
		return nil, errors.Wrap(err, "failed to write request snapshot")
	}

	compatible, err := o.templateRepo.ListCompatible(ctx, &templates.ListCompatibleInput{
		Subject:    subject,
		GradeLevel: gameRequest.GradeLevel,
		Difficulty: gameRequest.Difficulty,
	})
	if err != nil {
		o.metrics.ScriptGenerated(string(subject), metrics.OutcomeError)
		return nil, errors.Wrap(err, "failed to list compatible templates")
	}
	if len(compatible.Templates) == 0 {
		o.metrics.ScriptGenerated(string(subject), metrics.OutcomeError)
		return nil, errors.NotFoundf("no %s template supports grade %d at difficulty %d",
			subject, gameRequest.GradeLevel, gameRequest.Difficulty)
	}
	tmpl := compatible.Templates[0]
	log = log.With(zap.String("template", tmpl.Key()))

	examples, err := o.examplesFor(subject, &gameRequest)
	if err != nil {
		// examples only enrich the prompt
		log.Warn("failed to render example problems", zap.Error(err))
	}

	generated, err := o.llmClient.GenerateScript(ctx, &llm.GenerateInput{
		Request:         req,
		TemplateContent: tmpl.Content,
		Examples:        examples,
	})
	if err != nil {
		o.metrics.ScriptGenerated(string(subject), metrics.OutcomeError)
		return nil, errors.Wrap(err, "failed to generate script")
	}

	result := o.validate(generated.Script, validator.Context{
		Subject:    subject,
		GradeLevel: gameRequest.GradeLevel,
		Difficulty: gameRequest.Difficulty,
	})

	out := &GenerateScriptOutput{
		RequestID: req.ID,
		Template:  tmpl,
		Script:    generated.Script,
		Result:    result,
		Cached:    generated.Cached,
	}

	if result.HasErrors() {
		o.metrics.ScriptGenerated(string(subject), metrics.OutcomeRejected)
		log.Warn("generated script failed validation",
			zap.Int("errors", len(result.Errors)),
			zap.Bool("cached", generated.Cached),
		)
		return out, nil
	}

	path := input.OutputPath
	if path == "" {
		owner := teacher.ID
		if owner == "" {
			owner = teacher.Name
		}
		path = filepath.Join(o.outputDir, subject.DirName(), fmt.Sprintf("%s_%s_%s.lua",
			content.CleanName(owner),
			content.CleanName(gameRequest.Topic),
			req.Timestamp.Format(outputTimeFormat),
		))
	}

	written, err := o.outputRepo.WriteScript(ctx, &output.WriteScriptInput{
		Path:    path,
		Content: generated.Script,
	})
	if err != nil {
		o.metrics.ScriptGenerated(string(subject), metrics.OutcomeError)
		return nil, errors.Wrap(err, "failed to write script")
	}

	out.Accepted = true
	out.Path = written.Path
	o.metrics.ScriptGenerated(string(subject), metrics.OutcomeAccepted)
	log.Info("generated script",
		zap.String("path", written.Path),
		zap.Int("warnings", len(result.Warnings)),
		zap.Bool("cached", generated.Cached),
	)

	return out, nil
}

func (o *orchestrator) validateGenerateInput(input *GenerateScriptInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	if _, err := lesson.ParseSubject(string(input.Request.Subject)); err != nil {
		return err
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("teacher.name", input.Teacher.Name, vb)
	errors.ValidateRequired("request.topic", strings.TrimSpace(input.Request.Topic), vb)
	errors.ValidateRange("request.grade_level", input.Request.GradeLevel, lesson.MinGrade, lesson.MaxGrade, vb)
	errors.ValidateRange("request.difficulty", input.Request.Difficulty, lesson.DifficultyEasy, lesson.DifficultyHard, vb)

	return vb.Build()
}

// examplesFor runs the request's own text through the subject plugin and
// renders a few sample problems for the prompt
func (o *orchestrator) examplesFor(subject lesson.Subject, req *lesson.GameRequest) ([]string, error) {
	plugin, err := o.registry.Get(subject)
	if err != nil {
		return nil, err
	}

	parts := append([]string{req.Topic}, req.LearningObjectives...)
	if req.CustomContent != "" {
		parts = append(parts, req.CustomContent)
	}
	raw := strings.Join(parts, "\n")

	difficulty := req.Difficulty
	data, err := plugin.Transform(&subjects.TransformInput{
		Common: content.CommonFields{
			Title:       req.Topic,
			Description: req.CustomContent,
			Topics:      []string{req.Topic},
			Difficulty:  &difficulty,
		},
		RawText: raw,
	})
	if err != nil {
		return nil, err
	}

	return o.renderSamples(data.Items(), o.sampleCount)
}
