package llm

import (
	"context"

	"github.com/notecraft/discovery/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the raw model output
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one analysis stage
type CompletionRequest struct {
	// System sets the consultant persona shared by every stage
	System string

	// Prompt is the stage-specific instruction plus injected submission data
	Prompt string

	// Stage labels the analysis stage for logging and mock routing
	// ("discovery-analyzer", "section-scorer", "agent-recommender")
	Stage string

	// MaxTokens limits the response length
	MaxTokens int
}

// CompletionResponse contains the model's output
type CompletionResponse struct {
	// Content is the raw response text, expected to be a JSON document
	Content string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "mock", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 2000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}
