package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/REDFOX1899/gpt-cmd/internal/config"
)

// OpenAI provider implementation (chat completions API)
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	http    *httpClient
	logger  *slog.Logger
}

// OpenAI API request/response types
type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *openAIError `json:"error,omitempty"`
}

type openAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// NewOpenAI creates a new OpenAI provider
func NewOpenAI(cfg *config.Config, logger *slog.Logger) *OpenAI {
	return &OpenAI{
		apiKey:  cfg.OpenAIAPIKey,
		model:   cfg.ModelFor(config.ProviderOpenAI),
		baseURL: strings.TrimRight(cfg.OpenAIBaseURL, "/"),
		http:    newHTTPClient(cfg.RequestTimeout(), logger),
		logger:  logger,
	}
}

// Name returns the provider name
func (o *OpenAI) Name() string {
	return config.ProviderOpenAI
}

// Model returns the model requests are sent to
func (o *OpenAI) Model() string {
	return o.model
}

// Complete sends prompt as a single user message and returns the first
// choice's content.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrAuth, config.APIKeyEnv)
	}

	reqBody := openAIRequest{
		Model: o.model,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+o.apiKey)

	var result openAIResponse
	err := o.http.postJSON(ctx, o.baseURL+"/chat/completions", header, reqBody, &result, func() string {
		if result.Error != nil {
			return result.Error.Message
		}
		return ""
	})
	if err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrAPIFailure, result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := result.Choices[0].Message.Content
	o.logger.Debug("completion received", "provider", o.Name(), "model", o.model, "chars", len(content))
	return content, nil
}
