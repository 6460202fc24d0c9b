// Package llm turns a generation request and a template into Lua script text
// through an OpenAI-compatible chat-completions endpoint
package llm

//go:generate mockgen -destination=mock/mock_client.go -package=llmmock github.com/KirkDiggler/lesson-forge/internal/clients/llm Client

import (
	"context"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
)

// Client generates scripts
type Client interface {
	// GenerateScript asks the model for a script personalized from the template
	// Returns errors.Unavailable when the model is unreachable or answers
	// with nothing
	GenerateScript(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}

// GenerateInput is the request context plus the template to follow
type GenerateInput struct {
	Request         *lesson.GenerationRequest
	TemplateContent string
	// Examples are rendered sample problems included in the prompt
	Examples []string
}

// GenerateOutput holds the script text
type GenerateOutput struct {
	Script string
	// Cached is set when the script came from the script cache
	Cached bool
}
