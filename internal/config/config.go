package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is built once per run and
// passed explicitly to the components that need it.
type Config struct {
	// Provider selects the completion backend
	Provider string `mapstructure:"provider"`
	// Model overrides the provider's default model
	Model string `mapstructure:"model"`

	// OpenAI settings
	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`

	// Anthropic settings
	AnthropicAPIKey  string `mapstructure:"anthropic_api_key"`
	AnthropicBaseURL string `mapstructure:"anthropic_base_url"`

	// Gemini settings
	GeminiAPIKey  string `mapstructure:"gemini_api_key"`
	GeminiBaseURL string `mapstructure:"gemini_base_url"`

	// Ollama settings
	OllamaHost string `mapstructure:"ollama_host"`

	// General settings
	Timeout        int  `mapstructure:"timeout"` // seconds, 0 keeps the transport default
	ClipboardOSC52 bool `mapstructure:"clipboard_osc52"`
	Verbose        bool `mapstructure:"verbose"`
}

// Provider names
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// Default values
const (
	DefaultProvider         = ProviderOpenAI
	DefaultOpenAIModel      = "gpt-4"
	DefaultOpenAIBaseURL    = "https://api.openai.com/v1"
	DefaultAnthropicModel   = "claude-3-5-haiku-20241022"
	DefaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	DefaultGeminiModel      = "gemini-2.0-flash"
	DefaultGeminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	DefaultOllamaModel      = "llama3.2"
	DefaultOllamaHost       = "http://localhost:11434"
)

// APIKeyEnv is the environment variable holding the OpenAI key
const APIKeyEnv = "OPENAI_GPT_CMD_API_KEY"

// envPrefix applies to every key without an explicit binding, e.g. GPT_CMD_PROVIDER
const envPrefix = "GPT_CMD"

// ModelFor returns the configured model, or the provider's default
func (c *Config) ModelFor(provider string) string {
	if c.Model != "" {
		return c.Model
	}
	switch provider {
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderGemini:
		return DefaultGeminiModel
	case ProviderOllama:
		return DefaultOllamaModel
	default:
		return DefaultOpenAIModel
	}
}

// RequestTimeout converts Timeout to a duration
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 0
	}
	return time.Duration(c.Timeout) * time.Second
}

// Manager handles configuration loading
type Manager struct {
	v *viper.Viper
}

// NewManager creates a configuration manager. An empty cfgFile searches
// $HOME/.gpt-cmd/config.yaml, which may be absent. An explicit cfgFile must
// exist.
func NewManager(cfgFile string) (*Manager, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".gpt-cmd"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// Provider credentials use their conventional names
	_ = v.BindEnv("openai_api_key", APIKeyEnv)
	_ = v.BindEnv("anthropic_api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("ollama_host", "OLLAMA_HOST")

	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("model", "")
	v.SetDefault("openai_base_url", DefaultOpenAIBaseURL)
	v.SetDefault("anthropic_base_url", DefaultAnthropicBaseURL)
	v.SetDefault("gemini_base_url", DefaultGeminiBaseURL)
	v.SetDefault("ollama_host", DefaultOllamaHost)
	v.SetDefault("timeout", 0)
	v.SetDefault("clipboard_osc52", false)
	v.SetDefault("verbose", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return &Manager{v: v}, nil
}

// Load returns the current configuration
func (m *Manager) Load() (*Config, error) {
	cfg := &Config{}
	if err := m.v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFileUsed returns the path of the file that was read, if any
func (m *Manager) ConfigFileUsed() string {
	return m.v.ConfigFileUsed()
}

// Load is a shorthand for NewManager followed by Manager.Load
func Load(cfgFile string) (*Config, error) {
	m, err := NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	return m.Load()
}
