package generation

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/content"
	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/metrics"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/output"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/templates"
	"github.com/KirkDiggler/lesson-forge/internal/subjects"
)

func (o *orchestrator) TransformFromFile(ctx context.Context, input *TransformFromFileInput) (*TransformFromFileOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SourcePath == "" {
		return nil, errors.InvalidArgument("source path is required")
	}

	raw, err := os.ReadFile(input.SourcePath)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeExtraction, "failed to read source").
			WithPath(input.SourcePath)
	}
	text := string(raw)

	subject, err := o.resolveSubject(input)
	if err != nil {
		return nil, err
	}
	log := o.logger.With(
		zap.String("source", input.SourcePath),
		zap.String("subject", string(subject)),
	)

	out, err := o.transform(ctx, subject, text, input)
	if err != nil {
		o.metrics.Transform(string(subject), metrics.OutcomeError)
		log.Error("transform failed", zap.Error(err))
		return nil, err
	}

	o.metrics.Transform(string(subject), metrics.OutcomeSuccess)
	log.Info("transformed source",
		zap.String("template", out.Template.Key()),
		zap.Int("items", out.Items),
		zap.String("path", out.Path),
	)
	return out, nil
}

func (o *orchestrator) resolveSubject(input *TransformFromFileInput) (lesson.Subject, error) {
	if strings.TrimSpace(input.Subject) != "" {
		return lesson.ParseSubject(input.Subject)
	}
	return o.registry.DetermineSubject(input.SourcePath)
}

func (o *orchestrator) transform(ctx context.Context, subject lesson.Subject, text string, input *TransformFromFileInput) (*TransformFromFileOutput, error) {
	plugin, err := o.registry.Get(subject)
	if err != nil {
		return nil, err
	}
	cfg := plugin.Config()

	common := content.ExtractCommon(text)
	extracted, err := plugin.Extract(text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract content").WithPath(input.SourcePath)
	}
	if err := plugin.Validate(extracted, common); err != nil {
		return nil, errors.Wrap(err, "invalid source content").WithPath(input.SourcePath)
	}

	got, err := o.templateRepo.Get(ctx, &templates.GetInput{
		Subject: subject,
		Name:    cfg.TemplateName(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s template", subject)
	}
	tmpl := got.Template

	points := tmpl.Metadata.InjectionPoints
	if len(points) == 0 {
		points = cfg.InjectionPoints
	}
	if err := content.ValidateTemplate(tmpl.Content, points); err != nil {
		return nil, errors.Wrap(err, "template is not injectable").WithPath(tmpl.Path)
	}

	data, err := plugin.Transform(&subjects.TransformInput{
		Content:   extracted,
		Common:    common,
		RawText:   text,
		ScoreText: common.Title,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to transform content")
	}

	script, err := plugin.InjectWith(tmpl.Content, points, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to inject content")
	}
	if err := content.ValidateGeneratedScript(script, points); err != nil {
		return nil, errors.Wrap(err, "generated script is incomplete")
	}

	dir := input.OutputDir
	if dir == "" {
		dir = o.outputDir
	}
	name := common.Title
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(input.SourcePath), filepath.Ext(input.SourcePath))
	}

	written, err := o.outputRepo.WriteScript(ctx, &output.WriteScriptInput{
		Path:    filepath.Join(dir, subject.DirName(), content.CleanName(name)+".lua"),
		Content: script,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to write script")
	}

	return &TransformFromFileOutput{
		Subject:  subject,
		Template: tmpl,
		Script:   script,
		Items:    len(data.Items()),
		Path:     written.Path,
	}, nil
}
