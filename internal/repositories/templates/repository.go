// Package templates provides the template store: Lua skeleton scripts
// paired with JSON metadata, kept per subject.
package templates

//go:generate mockgen -destination=mock/mock_repository.go -package=templatesmock github.com/KirkDiggler/lesson-forge/internal/repositories/templates Repository

import (
	"context"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
)

// Repository defines the template store
type Repository interface {
	// Load rebuilds the in-memory set from storage. Unreadable metadata is
	// logged and skipped.
	// Returns errors.Internal when the root cannot be read
	Load(ctx context.Context) (*LoadOutput, error)

	// Get retrieves a template by subject and name
	// Returns errors.InvalidArgument for an empty subject or name
	// Returns errors.NotFound if the template doesn't exist
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// ListForSubject returns a subject's templates sorted by name
	ListForSubject(ctx context.Context, input *ListForSubjectInput) (*ListForSubjectOutput, error)

	// ListCompatible returns a subject's templates that support the grade
	// and difficulty, sorted by name
	ListCompatible(ctx context.Context, input *ListCompatibleInput) (*ListCompatibleOutput, error)

	// UpdateMetadata merges fields into a template's metadata, persists it
	// and reloads
	// Returns errors.NotFound if the template doesn't exist
	// Returns errors.InvalidArgument if the merged metadata is invalid
	// Returns errors.Internal for storage failures
	UpdateMetadata(ctx context.Context, input *UpdateMetadataInput) (*UpdateMetadataOutput, error)
}

// LoadOutput reports what a load found
type LoadOutput struct {
	Loaded  int
	Skipped []string
}

// GetInput identifies a template
type GetInput struct {
	Subject lesson.Subject
	Name    string
}

// GetOutput holds the template
type GetOutput struct {
	Template *lesson.Template
}

// ListForSubjectInput selects a subject
type ListForSubjectInput struct {
	Subject lesson.Subject
}

// ListForSubjectOutput holds the subject's templates
type ListForSubjectOutput struct {
	Templates []*lesson.Template
}

// ListCompatibleInput selects templates by subject, grade and difficulty
type ListCompatibleInput struct {
	Subject    lesson.Subject
	GradeLevel int
	Difficulty int
}

// ListCompatibleOutput holds the compatible templates
type ListCompatibleOutput struct {
	Templates []*lesson.Template
}

// UpdateMetadataInput holds the fields to merge, keyed by their JSON names
type UpdateMetadataInput struct {
	Subject lesson.Subject
	Name    string
	Updates map[string]any
}

// UpdateMetadataOutput holds the reloaded template
type UpdateMetadataOutput struct {
	Template *lesson.Template
}
