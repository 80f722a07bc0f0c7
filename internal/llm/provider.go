package llm

import "context"

// Provider defines the interface for answer-generation models
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate answers the prompt, stopping at the configured stop
	// sequences. Empty output is a valid response the caller must handle.
	Generate(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds generation provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens bounds the answer length; questions expect short answers
	MaxTokens int

	// Stop sequences cut generation before the model drifts into a new
	// question
	Stop []string

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Model:     "",
		Timeout:   120,
		MaxTokens: 32,
		Stop:      []string{"Q:", "\n"},
	}
}
