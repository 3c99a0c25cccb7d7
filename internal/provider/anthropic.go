package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/REDFOX1899/gpt-cmd/internal/config"
)

const (
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 1024
)

// Anthropic provider implementation (messages API)
type Anthropic struct {
	apiKey  string
	model   string
	baseURL string
	http    *httpClient
	logger  *slog.Logger
}

// Anthropic API request/response types
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *anthropicError `json:"error,omitempty"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewAnthropic creates a new Anthropic provider
func NewAnthropic(cfg *config.Config, logger *slog.Logger) *Anthropic {
	return &Anthropic{
		apiKey:  cfg.AnthropicAPIKey,
		model:   cfg.ModelFor(config.ProviderAnthropic),
		baseURL: strings.TrimRight(cfg.AnthropicBaseURL, "/"),
		http:    newHTTPClient(cfg.RequestTimeout(), logger),
		logger:  logger,
	}
}

// Name returns the provider name
func (a *Anthropic) Name() string {
	return config.ProviderAnthropic
}

// Model returns the model requests are sent to
func (a *Anthropic) Model() string {
	return a.model
}

// Complete sends prompt as a single user message and joins the text blocks
// of the reply.
func (a *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrAuth)
	}

	reqBody := anthropicRequest{
		Model:     a.model,
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	header := http.Header{}
	header.Set("x-api-key", a.apiKey)
	header.Set("anthropic-version", anthropicVersion)

	var result anthropicResponse
	err := a.http.postJSON(ctx, a.baseURL+"/messages", header, reqBody, &result, func() string {
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
	if len(result.Content) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	a.logger.Debug("completion received", "provider", a.Name(), "model", a.model, "chars", b.Len())
	return b.String(), nil
}
