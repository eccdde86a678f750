package config

import "time"

// Config holds docsight configuration.
// Stored at: ~/.docsight/config.yaml
type Config struct {
	Server     ServerCfg     `mapstructure:"server" yaml:"server"`
	Extraction ExtractionCfg `mapstructure:"extraction" yaml:"extraction"`
	Grounding  GroundingCfg  `mapstructure:"grounding" yaml:"grounding"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// ExtractionCfg configures the extraction provider and scheduler.
type ExtractionCfg struct {
	Provider      string  `mapstructure:"provider" yaml:"provider"`             // "openai", "mock"
	Model         string  `mapstructure:"model" yaml:"model"`                   // Model name
	APIKey        string  `mapstructure:"api_key" yaml:"api_key"`               // API key (supports ${ENV_VAR} syntax)
	MaxConcurrent int     `mapstructure:"max_concurrent" yaml:"max_concurrent"` // In-flight call cap
	MaxRetries    int     `mapstructure:"max_retries" yaml:"max_retries"`       // Retryable failures per job
	RetryDelayMS  int     `mapstructure:"retry_delay_ms" yaml:"retry_delay_ms"` // Base backoff delay
	Temperature   float64 `mapstructure:"temperature" yaml:"temperature"`
}

// RetryDelay returns the base backoff delay as a duration.
func (c ExtractionCfg) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// GroundingCfg configures quote grounding.
type GroundingCfg struct {
	Threshold    float64 `mapstructure:"threshold" yaml:"threshold"`           // Minimum similarity score
	OCRServerURL string  `mapstructure:"ocr_server_url" yaml:"ocr_server_url"` // Remote page server; empty means local store
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "localhost",
			Port: 8417,
		},
		Extraction: ExtractionCfg{
			Provider:      "openai",
			Model:         "gpt-4o",
			APIKey:        "${OPENAI_API_KEY}",
			MaxConcurrent: 8,
			MaxRetries:    5,
			RetryDelayMS:  1000,
			Temperature:   0.0,
		},
		Grounding: GroundingCfg{
			Threshold: 0.5,
		},
	}
}
