package templates

import (
	"context"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/clock"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/schema"
)

//go:embed schema/metadata.schema.json
var metadataSchemaJSON []byte

const (
	templateExt = ".lua"
	metadataExt = ".json"

	defaultVersion = "1.0.0"
	defaultAuthor  = "System"
)

// FilesystemConfig configures the filesystem template store
type FilesystemConfig struct {
	// Root holds one directory per subject, e.g. Root/Mathematics/MathQuest.lua
	Root   string
	Clock  clock.Clock
	Logger *zap.Logger
}

// Validate validates the config
func (cfg *FilesystemConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("root", cfg.Root, vb)
	return vb.Build()
}

type filesystemRepository struct {
	root   string
	clock  clock.Clock
	logger *zap.Logger
	schema *schema.Schema

	mu        sync.RWMutex
	templates map[string]*lesson.Template
}

var _ Repository = (*filesystemRepository)(nil)

// NewFilesystem creates a template store over a directory tree. Call Load
// before reading.
func NewFilesystem(cfg *FilesystemConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &filesystemRepository{
		root:      cfg.Root,
		clock:     c,
		logger:    logger,
		schema:    schema.MustCompile("template metadata", metadataSchemaJSON),
		templates: make(map[string]*lesson.Template),
	}, nil
}

func (r *filesystemRepository) Load(_ context.Context) (*LoadOutput, error) {
	loaded, skipped, err := r.read()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.templates = loaded
	r.mu.Unlock()

	r.logger.Info("loaded templates",
		zap.String("root", r.root),
		zap.Int("loaded", len(loaded)),
		zap.Int("skipped", len(skipped)),
	)

	return &LoadOutput{Loaded: len(loaded), Skipped: skipped}, nil
}

func (r *filesystemRepository) read() (map[string]*lesson.Template, []string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to read templates root").
			WithPath(r.root)
	}

	loaded := make(map[string]*lesson.Template)
	var skipped []string

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		subject, err := lesson.ParseSubject(entry.Name())
		if err != nil {
			r.logger.Warn("skipping unknown subject directory", zap.String("dir", entry.Name()))
			skipped = append(skipped, entry.Name())
			continue
		}

		dir := filepath.Join(r.root, entry.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			r.logger.Warn("skipping unreadable subject directory", zap.String("dir", dir), zap.Error(err))
			skipped = append(skipped, entry.Name())
			continue
		}

		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != templateExt {
				continue
			}

			name := strings.TrimSuffix(f.Name(), templateExt)
			tmpl, err := r.readTemplate(subject, dir, name)
			if err != nil {
				r.logger.Warn("skipping template",
					zap.String("subject", string(subject)),
					zap.String("template", name),
					zap.Error(err),
				)
				skipped = append(skipped, lesson.TemplateKey(subject, name))
				continue
			}
			loaded[lesson.TemplateKey(subject, name)] = tmpl
		}
	}

	return loaded, skipped, nil
}

func (r *filesystemRepository) readTemplate(subject lesson.Subject, dir, name string) (*lesson.Template, error) {
	path := filepath.Join(dir, name+templateExt)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to read template").WithPath(path)
	}

	metaPath := filepath.Join(dir, name+metadataExt)
	meta, err := r.readMetadata(metaPath)
	switch {
	case errors.IsNotFound(err):
		meta = r.defaultMetadata(subject, name)
		if err := writeMetadata(metaPath, meta); err != nil {
			return nil, err
		}
		r.logger.Info("created default metadata", zap.String("path", metaPath))
	case err != nil:
		return nil, err
	}

	if meta.Name == "" {
		meta.Name = name
	}

	return &lesson.Template{
		Name:     name,
		Metadata: *meta,
		Subject:  subject,
		Content:  string(content),
		Path:     path,
	}, nil
}

func (r *filesystemRepository) readMetadata(path string) (*lesson.TemplateMetadata, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("metadata not found").WithPath(path)
		}
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to read metadata").WithPath(path)
	}

	return r.decodeMetadata(b)
}

func (r *filesystemRepository) decodeMetadata(b []byte) (*lesson.TemplateMetadata, error) {
	if err := r.schema.ValidateBytes(b); err != nil {
		return nil, err
	}

	var meta lesson.TemplateMetadata
	if err := json.Unmarshal(b, &meta); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode metadata")
	}
	if meta.MinGrade > meta.MaxGrade {
		return nil, errors.InvalidArgumentf("min_grade %d is above max_grade %d", meta.MinGrade, meta.MaxGrade)
	}

	return &meta, nil
}

func (r *filesystemRepository) defaultMetadata(subject lesson.Subject, name string) *lesson.TemplateMetadata {
	return &lesson.TemplateMetadata{
		Name:                  name,
		Version:               defaultVersion,
		Subject:               string(subject),
		MinGrade:              lesson.MinGrade,
		MaxGrade:              lesson.MaxGrade,
		SupportedDifficulties: []int{lesson.DifficultyEasy, lesson.DifficultyMedium, lesson.DifficultyHard},
		Description:           "Default template for " + string(subject),
		LastUpdated:           r.clock.Now().UTC().Format(time.RFC3339),
		Author:                defaultAuthor,
		Tags:                  []string{string(subject)},
		Dependencies:          []string{},
	}
}

func writeMetadata(path string, meta *lesson.TemplateMetadata) error {
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	if meta.Dependencies == nil {
		meta.Dependencies = []string{}
	}

	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal metadata")
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to write metadata").WithPath(path)
	}
	return nil
}

func (r *filesystemRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("subject", string(input.Subject), vb)
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	key := lesson.TemplateKey(input.Subject, input.Name)

	r.mu.RLock()
	tmpl, ok := r.templates[key]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.NotFoundf("template %s not found", key)
	}
	return &GetOutput{Template: tmpl}, nil
}

func (r *filesystemRepository) ListForSubject(_ context.Context, input *ListForSubjectInput) (*ListForSubjectOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return &ListForSubjectOutput{
		Templates: r.filter(func(t *lesson.Template) bool {
			return t.Subject == input.Subject
		}),
	}, nil
}

func (r *filesystemRepository) ListCompatible(_ context.Context, input *ListCompatibleInput) (*ListCompatibleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return &ListCompatibleOutput{
		Templates: r.filter(func(t *lesson.Template) bool {
			return t.Subject == input.Subject && t.IsCompatible(input.GradeLevel, input.Difficulty)
		}),
	}, nil
}

func (r *filesystemRepository) filter(keep func(*lesson.Template) bool) []*lesson.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*lesson.Template
	for _, t := range r.templates {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Metadata.Name != out[j].Metadata.Name {
			return out[i].Metadata.Name < out[j].Metadata.Name
		}
		return out[i].Path < out[j].Path
	})
	return out
}

func (r *filesystemRepository) UpdateMetadata(ctx context.Context, input *UpdateMetadataInput) (*UpdateMetadataOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	got, err := r.Get(ctx, &GetInput{Subject: input.Subject, Name: input.Name})
	if err != nil {
		return nil, err
	}
	tmpl := got.Template

	// merge at the JSON level so updates use the persisted field names
	raw, err := json.Marshal(tmpl.Metadata)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal metadata")
	}
	doc := make(map[string]any)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode metadata")
	}
	// nil slices marshal as null
	for k, v := range doc {
		if v == nil {
			delete(doc, k)
		}
	}
	for k, v := range input.Updates {
		// a nil update clears the field
		if v == nil {
			delete(doc, k)
			continue
		}
		doc[k] = v
	}
	doc["last_updated"] = r.clock.Now().UTC().Format(time.RFC3339)

	merged, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to encode updated metadata")
	}
	meta, err := r.decodeMetadata(merged)
	if err != nil {
		return nil, err
	}

	metaPath := strings.TrimSuffix(tmpl.Path, templateExt) + metadataExt
	if err := writeMetadata(metaPath, meta); err != nil {
		return nil, err
	}

	r.logger.Info("updated template metadata",
		zap.String("template", tmpl.Key()),
		zap.Strings("fields", sortedKeys(input.Updates)),
	)

	if _, err := r.Load(ctx); err != nil {
		return nil, err
	}

	reloaded, err := r.Get(ctx, &GetInput{Subject: input.Subject, Name: input.Name})
	if err != nil {
		return nil, err
	}
	return &UpdateMetadataOutput{Template: reloaded.Template}, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
