package output

import (
	"context"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/schema"
)

//go:embed schema/request.schema.json
var requestSchemaJSON []byte

const requestsDir = "requests"

// Config configures the filesystem sink
type Config struct {
	Logger *zap.Logger
}

type filesystemRepository struct {
	logger *zap.Logger
	schema *schema.Schema
}

var _ Repository = (*filesystemRepository)(nil)

// NewFilesystem creates the filesystem output sink
func NewFilesystem(cfg *Config) Repository {
	logger := zap.NewNop()
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	}

	return &filesystemRepository{
		logger: logger,
		schema: schema.MustCompile("generation request", requestSchemaJSON),
	}
}

func (r *filesystemRepository) WriteScript(_ context.Context, input *WriteScriptInput) (*WriteScriptOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", input.Path, vb)
	errors.ValidateRequired("content", input.Content, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if err := writeFile(input.Path, []byte(input.Content)); err != nil {
		return nil, err
	}

	r.logger.Info("wrote script", zap.String("path", input.Path), zap.Int("bytes", len(input.Content)))
	return &WriteScriptOutput{Path: input.Path}, nil
}

func (r *filesystemRepository) WriteRequestSnapshot(_ context.Context, input *WriteRequestSnapshotInput) (*WriteRequestSnapshotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("dir", input.Dir, vb)
	if input.Request == nil {
		vb.RequiredField("request")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if err := r.schema.Validate(input.Request); err != nil {
		return nil, err
	}

	b, err := json.MarshalIndent(input.Request, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request snapshot")
	}

	path := filepath.Join(input.Dir, requestsDir, input.Request.ID+".json")
	if err := writeFile(path, append(b, '\n')); err != nil {
		return nil, err
	}

	r.logger.Debug("wrote request snapshot", zap.String("path", path), zap.String("request_id", input.Request.ID))
	return &WriteRequestSnapshotOutput{Path: path}, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to create directory").WithPath(path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to write file").WithPath(path)
	}
	return nil
}
