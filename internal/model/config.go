package model

import "time"

// Config is the complete application configuration.
type Config struct {
	Registry    RegistryConfig    `yaml:"registry" mapstructure:"registry"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Storage     StorageConfig     `yaml:"storage" mapstructure:"storage"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// RegistryConfig controls the CNPJ registry lookups.
type RegistryConfig struct {
	// PrimaryURL is tried first; the identifier is appended to it.
	PrimaryURL string `yaml:"primary_url" mapstructure:"primary_url"`
	// BackupURLs are tried in order after the primary fails.
	BackupURLs []string `yaml:"backup_urls" mapstructure:"backup_urls"`
	// Timeout bounds each individual attempt.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// RetryDelay is the fixed pause between failed attempts.
	RetryDelay time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
	// RequestsPerSecond paces calls per registry host (free tiers are strict).
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// CacheConfig controls enrichment caching.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// TTL bounds how long an enriched record is reused.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
	// Dir enables the persistent disk layer when non-empty.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LLMConfig selects and configures the analysis provider.
type LLMConfig struct {
	// Provider: "openai", "anthropic", "mock" or "" (disabled).
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// StorageConfig points at the Supabase REST endpoint for submissions.
// Both fields empty means persistence is disabled (local mode).
type StorageConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	APIKey  string        `yaml:"-" mapstructure:"api_key"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ConcurrencyConfig controls batch enrichment fan-out.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			PrimaryURL: "https://receitaws.com.br/v1/cnpj/",
			BackupURLs: []string{
				"https://brasilapi.com.br/api/cnpj/v1/",
				"https://minhareceita.org/",
			},
			Timeout:           10 * time.Second,
			RetryDelay:        2 * time.Second,
			RequestsPerSecond: 0.5,
			UserAgent:         "Discovery-Notecraft/1.0",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 2000,
		},
		Storage: StorageConfig{
			Timeout: 15 * time.Second,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
