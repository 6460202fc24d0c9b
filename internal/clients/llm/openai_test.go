package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/KirkDiggler/lesson-forge/internal/clients/llm"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

type OpenAITestSuite struct {
	suite.Suite
	ctx      context.Context
	server   *httptest.Server
	status   int
	content  string
	lastPath string
	lastAuth string
	lastBody map[string]any
}

func (s *OpenAITestSuite) SetupTest() {
	s.ctx = context.Background()
	s.status = http.StatusOK
	s.content = "```lua\nlocal Game = {}\nreturn Game\n```"
	s.lastBody = nil

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastPath = r.URL.Path
		s.lastAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&s.lastBody)

		w.Header().Set("Content-Type", "application/json")
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"not found"}}`))
			return
		}
		if s.status != http.StatusOK {
			w.WriteHeader(s.status)
			_, _ = w.Write([]byte(`{"error":{"message":"bad request","type":"invalid_request_error"}}`))
			return
		}

		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1714550400,
			"model":   "llama2",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": s.content},
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func (s *OpenAITestSuite) TearDownTest() {
	s.server.Close()
}

func (s *OpenAITestSuite) newClient(provider string) llm.Client {
	client, err := llm.NewOpenAI(&llm.Config{
		Provider:    provider,
		BaseURL:     s.server.URL,
		APIKey:      map[string]string{llm.ProviderOpenAI: "sk-test"}[provider],
		Model:       "llama2",
		Temperature: 0.3,
		MaxTokens:   256,
		MaxRetries:  -1,
		Logger:      zaptest.NewLogger(s.T()),
	})
	s.Require().NoError(err)
	return client
}

func (s *OpenAITestSuite) input() *llm.GenerateInput {
	return &llm.GenerateInput{Request: testRequest(), TemplateContent: "local Game = {}\nreturn Game\n"}
}

func (s *OpenAITestSuite) TestNewOpenAIValidation() {
	testCases := []struct {
		name    string
		config  *llm.Config
		wantMsg string
	}{
		{name: "nil config", config: nil, wantMsg: "config cannot be nil"},
		{name: "unknown provider", config: &llm.Config{Provider: "bard", Model: "x"}, wantMsg: "provider"},
		{name: "missing model", config: &llm.Config{Provider: llm.ProviderOllama}, wantMsg: "model"},
		{name: "openai needs a key", config: &llm.Config{Provider: llm.ProviderOpenAI, Model: "gpt-4"}, wantMsg: "api_key"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			client, err := llm.NewOpenAI(tc.config)
			s.Require().Error(err)
			s.Assert().Contains(err.Error(), tc.wantMsg)
			s.Assert().Nil(client)
		})
	}
}

func (s *OpenAITestSuite) TestOllamaGeneratesScript() {
	out, err := s.newClient(llm.ProviderOllama).GenerateScript(s.ctx, s.input())
	s.Require().NoError(err)

	s.Assert().Equal("local Game = {}\nreturn Game\n", out.Script)
	s.Assert().False(out.Cached)
	s.Assert().Equal("/v1/chat/completions", s.lastPath)
	s.Assert().Equal("Bearer ollama", s.lastAuth)

	s.Require().NotNil(s.lastBody)
	s.Assert().Equal("llama2", s.lastBody["model"])
	s.Assert().InDelta(0.3, s.lastBody["temperature"], 1e-9)
	s.Assert().EqualValues(256, s.lastBody["max_tokens"])

	messages, ok := s.lastBody["messages"].([]any)
	s.Require().True(ok)
	s.Require().Len(messages, 2)
	user := messages[1].(map[string]any)
	s.Assert().Equal("user", user["role"])
	s.Assert().Contains(user["content"], "- Topic: nouns")
}

func (s *OpenAITestSuite) TestOpenAIUsesBaseURLAndKey() {
	_, err := s.newClient(llm.ProviderOpenAI).GenerateScript(s.ctx, s.input())
	s.Require().NoError(err)
	s.Assert().Equal("/chat/completions", s.lastPath)
	s.Assert().Equal("Bearer sk-test", s.lastAuth)
}

func (s *OpenAITestSuite) TestFailures() {
	testCases := []struct {
		name    string
		status  int
		content string
		input   *llm.GenerateInput
		check   func(error) bool
	}{
		{name: "empty completion", status: http.StatusOK, content: "   ", input: s.input(), check: errors.IsUnavailable},
		{name: "api error", status: http.StatusBadRequest, input: s.input(), check: errors.IsUnavailable},
		{name: "missing request", status: http.StatusOK, input: &llm.GenerateInput{TemplateContent: "x"}, check: errors.IsInvalidArgument},
		{name: "missing template", status: http.StatusOK, input: &llm.GenerateInput{Request: testRequest()}, check: errors.IsInvalidArgument},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.status = tc.status
			s.content = tc.content

			_, err := s.newClient(llm.ProviderOllama).GenerateScript(s.ctx, tc.input)
			s.Require().Error(err)
			s.Assert().True(tc.check(err), "unexpected error: %v", err)
		})
	}
}

func TestOpenAITestSuite(t *testing.T) {
	suite.Run(t, new(OpenAITestSuite))
}
