// Package config provides configuration types and defaults for shaclgen.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/foerderfunke/shaclgen/internal/log"
)

// Config holds all configuration options for shaclgen.
type Config struct {
	// CataloguePath points at the data-field catalogue YAML.
	// Default: datafields.yaml in the current directory.
	CataloguePath string `mapstructure:"catalogue_path"`

	// DatabasePath points at the SQLite shape store.
	// Default: ~/.config/shaclgen/shaclgen.db
	DatabasePath string `mapstructure:"database_path"`

	// AutoReload watches the catalogue file and reloads it on change.
	AutoReload bool `mapstructure:"auto_reload"`

	Assistant  AssistantConfig  `mapstructure:"assistant"`
	Generation GenerationConfig `mapstructure:"generation"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// AssistantConfig holds the OpenAI-compatible chat endpoint settings.
type AssistantConfig struct {
	// BaseURL of the chat completions endpoint.
	// "https://api.openai.com/v1" for OpenAI, or a local endpoint.
	BaseURL string `mapstructure:"base_url"`

	// Model identifier, e.g. "gpt-4o-mini".
	Model string `mapstructure:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	// The key itself never lives in the config file.
	APIKeyEnv string `mapstructure:"api_key_env"`

	// TimeoutSeconds bounds a single chat call. Default: 120.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// Temperature for generation runs. Default: 0.2.
	Temperature float32 `mapstructure:"temperature"`
}

// APIKey resolves the configured API key from the environment.
func (a AssistantConfig) APIKey() string {
	if a.APIKeyEnv == "" {
		return os.Getenv("OPENAI_API_KEY")
	}
	return os.Getenv(a.APIKeyEnv)
}

// Timeout returns the chat call timeout as a duration.
func (a AssistantConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// GenerationConfig tunes the generation pipeline.
type GenerationConfig struct {
	// MaxTextLength truncates ingested documents before prompting.
	// Default: 30000 characters.
	MaxTextLength int `mapstructure:"max_text_length"`

	// CacheTTLMinutes controls how long assistant replies are reused for
	// identical prompts. Default: 10.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`
}

// CacheTTL returns the reply cache TTL as a duration.
func (g GenerationConfig) CacheTTL() time.Duration {
	if g.CacheTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(g.CacheTTLMinutes) * time.Minute
}

// TracingConfig holds tracing configuration for the generation pipeline.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/shaclgen/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultConfigDir returns ~/.config/shaclgen, or empty string if the home
// directory is unavailable.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "shaclgen")
}

// DefaultDatabasePath returns the default SQLite store location.
func DefaultDatabasePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "shaclgen.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Validate checks the whole configuration for errors. Empty values fall
// back to defaults and are not errors.
func (c Config) Validate() error {
	if err := ValidateAssistant(c.Assistant); err != nil {
		return err
	}
	if err := ValidateGeneration(c.Generation); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateAssistant checks assistant endpoint configuration for errors.
func ValidateAssistant(a AssistantConfig) error {
	if a.TimeoutSeconds < 0 {
		return fmt.Errorf("assistant.timeout_seconds must not be negative, got %d", a.TimeoutSeconds)
	}
	if a.Temperature < 0 || a.Temperature > 2 {
		return fmt.Errorf("assistant.temperature must be between 0.0 and 2.0, got %v", a.Temperature)
	}
	return nil
}

// ValidateGeneration checks generation tuning for errors.
func ValidateGeneration(g GenerationConfig) error {
	if g.MaxTextLength < 0 {
		return fmt.Errorf("generation.max_text_length must not be negative, got %d", g.MaxTextLength)
	}
	if g.CacheTTLMinutes < 0 {
		return fmt.Errorf("generation.cache_ttl_minutes must not be negative, got %d", g.CacheTTLMinutes)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		CataloguePath: "datafields.yaml",
		DatabasePath:  DefaultDatabasePath(),
		AutoReload:    false,
		Assistant: AssistantConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			APIKeyEnv:      "OPENAI_API_KEY",
			TimeoutSeconds: 120,
			Temperature:    0.2,
		},
		Generation: GenerationConfig{
			MaxTextLength:   30000,
			CacheTTLMinutes: 10,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# shaclgen Configuration

# Path to the data-field catalogue (default: datafields.yaml in the
# working directory)
catalogue_path: datafields.yaml

# Path to the SQLite shape store
# database_path: ~/.config/shaclgen/shaclgen.db

# Reload the catalogue automatically when the file changes
auto_reload: false

# Assistant endpoint settings
assistant:
  # Any OpenAI-compatible chat completions endpoint works:
  #   https://api.openai.com/v1     (OpenAI)
  #   http://localhost:11434/v1     (Ollama)
  base_url: https://api.openai.com/v1
  model: gpt-4o-mini
  # Environment variable holding the API key; the key itself never
  # lives in this file
  api_key_env: OPENAI_API_KEY
  timeout_seconds: 120
  temperature: 0.2

# Generation pipeline tuning
generation:
  # Documents longer than this are truncated before prompting
  max_text_length: 30000
  # Identical prompts reuse the previous reply for this long
  cache_ttl_minutes: 10

# Tracing for the generation pipeline
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp
#   file_path: ~/.config/shaclgen/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
