// Package output writes finished scripts and request snapshots to disk
package output

//go:generate mockgen -destination=mock/mock_repository.go -package=outputmock github.com/KirkDiggler/lesson-forge/internal/repositories/output Repository

import (
	"context"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
)

// Repository defines the output sink
type Repository interface {
	// WriteScript writes a script, creating parent directories
	// Returns errors.Internal with the path for filesystem failures
	WriteScript(ctx context.Context, input *WriteScriptInput) (*WriteScriptOutput, error)

	// WriteRequestSnapshot validates the request and writes it as
	// <dir>/requests/<id>.json
	// Returns errors.InvalidArgument if the snapshot fails the schema
	WriteRequestSnapshot(ctx context.Context, input *WriteRequestSnapshotInput) (*WriteRequestSnapshotOutput, error)
}

// WriteScriptInput holds the script to write
type WriteScriptInput struct {
	Path    string
	Content string
}

// WriteScriptOutput reports where the script went
type WriteScriptOutput struct {
	Path string
}

// WriteRequestSnapshotInput holds the snapshot to write
type WriteRequestSnapshotInput struct {
	Dir     string
	Request *lesson.GenerationRequest
}

// WriteRequestSnapshotOutput reports where the snapshot went
type WriteRequestSnapshotOutput struct {
	Path string
}
