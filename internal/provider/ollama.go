package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/REDFOX1899/gpt-cmd/internal/config"
)

// Ollama provider implementation (local LLM)
type Ollama struct {
	model  string
	host   string
	http   *httpClient
	logger *slog.Logger
}

// Ollama API request/response types
type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaResponse struct {
	Message *ollamaMessage `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// NewOllama creates a new Ollama provider
func NewOllama(cfg *config.Config, logger *slog.Logger) *Ollama {
	return &Ollama{
		model:  cfg.ModelFor(config.ProviderOllama),
		host:   strings.TrimRight(cfg.OllamaHost, "/"),
		http:   newHTTPClient(cfg.RequestTimeout(), logger),
		logger: logger,
	}
}

// Name returns the provider name
func (o *Ollama) Name() string {
	return config.ProviderOllama
}

// Model returns the model requests are sent to
func (o *Ollama) Model() string {
	return o.model
}

// Complete sends prompt to the local chat endpoint without streaming
func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaRequest{
		Model: o.model,
		Messages: []ollamaMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}

	var result ollamaResponse
	err := o.http.postJSON(ctx, o.host+"/api/chat", nil, reqBody, &result, func() string {
		return result.Error
	})
	if err != nil {
		return "", fmt.Errorf("ollama at %s: %w", o.host, err)
	}

	if result.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrAPIFailure, result.Error)
	}
	if result.Message == nil {
		return "", ErrEmptyResponse
	}

	o.logger.Debug("completion received", "provider", o.Name(), "model", o.model, "chars", len(result.Message.Content))
	return result.Message.Content, nil
}
