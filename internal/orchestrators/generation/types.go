package generation

import (
	"github.com/KirkDiggler/lesson-forge/internal/content"
	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/validator"
)

// GenerateScriptInput defines the request for generating a script
type GenerateScriptInput struct {
	Teacher lesson.TeacherProfile
	Request lesson.GameRequest
	// OutputPath overrides the generated output location
	OutputPath string
}

// GenerateScriptOutput defines the response for generating a script.
// Accepted is false when the script failed validation; Result explains why
// and nothing was written.
type GenerateScriptOutput struct {
	RequestID string
	Template  *lesson.Template
	Script    string
	Result    *validator.ValidationResult
	Accepted  bool
	Cached    bool
	Path      string
}

// TransformFromFileInput defines the request for transforming a source file
type TransformFromFileInput struct {
	SourcePath string
	// Subject overrides detection from the path
	Subject string
	// OutputDir overrides the configured output directory
	OutputDir string
}

// TransformFromFileOutput defines the response for transforming a source file
type TransformFromFileOutput struct {
	Subject  lesson.Subject
	Template *lesson.Template
	Script   string
	Items    int
	Path     string
}

// ValidateScriptInput defines the request for validating a script
type ValidateScriptInput struct {
	Script     string
	Subject    string
	GradeLevel int
	Difficulty int
}

// ValidateScriptOutput defines the response for validating a script
type ValidateScriptOutput struct {
	Result *validator.ValidationResult
}

// ListTemplatesInput defines the request for listing a subject's templates
type ListTemplatesInput struct {
	Subject string
}

// ListTemplatesOutput defines the response for listing templates
type ListTemplatesOutput struct {
	Templates []*lesson.Template
}

// ListCompatibleTemplatesInput defines the request for listing compatible templates
type ListCompatibleTemplatesInput struct {
	Subject    string
	GradeLevel int
	Difficulty int
}

// ListCompatibleTemplatesOutput defines the response for listing compatible templates
type ListCompatibleTemplatesOutput struct {
	Templates []*lesson.Template
}

// UpdateTemplateMetadataInput defines the request for updating template metadata
type UpdateTemplateMetadataInput struct {
	Subject string
	Name    string
	Updates map[string]any
}

// UpdateTemplateMetadataOutput defines the response for updating template metadata
type UpdateTemplateMetadataOutput struct {
	Template *lesson.Template
}

// PreviewContentInput defines the request for previewing content
type PreviewContentInput struct {
	Subject string
	Text    string
	// Samples is how many rendered samples to return; zero uses the default
	Samples int
}

// PreviewContentOutput defines the response for previewing content
type PreviewContentOutput struct {
	Subject   lesson.Subject
	Common    content.CommonFields
	Items     []content.Item
	Fragments map[string]string
	Samples   []string
}
