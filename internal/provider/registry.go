package provider

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/REDFOX1899/gpt-cmd/internal/config"
)

// Registry maps provider names to constructed providers
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a registry with every supported provider configured
// from cfg. Construction does not validate credentials.
func NewRegistry(cfg *config.Config, logger *slog.Logger) *Registry {
	r := &Registry{providers: make(map[string]Provider, 4)}
	for _, p := range []Provider{
		NewOpenAI(cfg, logger),
		NewAnthropic(cfg, logger),
		NewGemini(cfg, logger),
		NewOllama(cfg, logger),
	} {
		r.providers[p.Name()] = p
	}
	return r
}

// Get returns the provider registered under name
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownProvider, name, r.Names())
	}
	return p, nil
}

// Names returns the registered provider names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the provider selected by cfg.Provider
func New(cfg *config.Config, logger *slog.Logger) (Provider, error) {
	return NewRegistry(cfg, logger).Get(cfg.Provider)
}
