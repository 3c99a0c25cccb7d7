package provider

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrAuth            = errors.New("authentication failed")
	ErrAPIFailure      = errors.New("API request failed")
	ErrEmptyResponse   = errors.New("empty response from API")
	ErrUnknownProvider = errors.New("unknown provider")
)

// Completer sends a prompt and returns the model's raw text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider is a Completer backed by a named remote API
type Provider interface {
	Completer

	// Name returns the provider identifier (e.g., "openai", "anthropic")
	Name() string

	// Model returns the model every request is sent to
	Model() string
}
