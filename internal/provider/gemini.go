package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/REDFOX1899/gpt-cmd/internal/config"
)

// Gemini provider implementation (generateContent API)
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	http    *httpClient
	logger  *slog.Logger
}

// Gemini API request/response types
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *geminiError `json:"error,omitempty"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewGemini creates a new Gemini provider
func NewGemini(cfg *config.Config, logger *slog.Logger) *Gemini {
	return &Gemini{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.ModelFor(config.ProviderGemini),
		baseURL: strings.TrimRight(cfg.GeminiBaseURL, "/"),
		http:    newHTTPClient(cfg.RequestTimeout(), logger),
		logger:  logger,
	}
}

// Name returns the provider name
func (g *Gemini) Name() string {
	return config.ProviderGemini
}

// Model returns the model requests are sent to
func (g *Gemini) Model() string {
	return g.model
}

// Complete sends prompt as a single user turn and joins the parts of the
// first candidate.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrAuth)
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	header := http.Header{}
	header.Set("x-goog-api-key", g.apiKey)

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))

	var result geminiResponse
	err := g.http.postJSON(ctx, endpoint, header, reqBody, &result, func() string {
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
	if len(result.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}

	g.logger.Debug("completion received", "provider", g.Name(), "model", g.model, "chars", b.Len())
	return b.String(), nil
}
