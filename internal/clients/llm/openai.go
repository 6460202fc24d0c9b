package llm

import (
	"context"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

// Providers
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

const (
	// DefaultOllamaBaseURL is Ollama's OpenAI-compatible endpoint
	DefaultOllamaBaseURL = "http://localhost:11434/v1"

	defaultMaxRetries = 2
	ollamaAPIKey      = "ollama"
)

// Config configures the chat-completions client
type Config struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
	Logger      *zap.Logger
}

// Validate validates the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("provider", cfg.Provider, []string{ProviderOpenAI, ProviderOllama}, vb)
	errors.ValidateRequired("model", cfg.Model, vb)
	if cfg.Provider == ProviderOpenAI {
		errors.ValidateRequired("api_key", cfg.APIKey, vb)
	}
	if cfg.MaxTokens < 0 {
		vb.InvalidField("max_tokens", "cannot be negative")
	}
	return vb.Build()
}

type openAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

var _ Client = (*openAIClient)(nil)

// NewOpenAI creates a client for OpenAI, or for Ollama through its
// OpenAI-compatible API
func NewOpenAI(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// zero keeps the default, negative disables retries
	retries := cfg.MaxRetries
	switch {
	case retries == 0:
		retries = defaultMaxRetries
	case retries < 0:
		retries = 0
	}

	opts := []option.RequestOption{option.WithMaxRetries(retries)}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	baseURL := cfg.BaseURL
	apiKey := cfg.APIKey
	if cfg.Provider == ProviderOllama {
		baseURL = ollamaBaseURL(baseURL)
		if apiKey == "" {
			apiKey = ollamaAPIKey
		}
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, option.WithAPIKey(apiKey))

	return &openAIClient{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger.With(zap.String("provider", cfg.Provider), zap.String("model", cfg.Model)),
	}, nil
}

// ollamaBaseURL accepts the bare server address as well as the /v1 path
func ollamaBaseURL(raw string) string {
	if raw == "" {
		return DefaultOllamaBaseURL
	}
	raw = strings.TrimSuffix(raw, "/")
	if !strings.HasSuffix(raw, "/v1") {
		raw += "/v1"
	}
	return raw + "/"
}

func (c *openAIClient) GenerateScript(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil || input.Request == nil {
		return nil, errors.InvalidArgument("request is required")
	}
	if strings.TrimSpace(input.TemplateContent) == "" {
		return nil, errors.InvalidArgument("template content is required")
	}

	system, user := BuildPrompt(input)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "chat completion failed").
			WithMeta("request_id", input.Request.ID)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.Unavailable("model returned no choices")
	}
	script := ExtractScript(resp.Choices[0].Message.Content)
	if script == "" {
		return nil, errors.Unavailable("model returned an empty script")
	}

	c.logger.Info("generated script",
		zap.String("request_id", input.Request.ID),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return &GenerateOutput{Script: script}, nil
}
