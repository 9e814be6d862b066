package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, "datafields.yaml", cfg.CataloguePath)
	require.Equal(t, "https://api.openai.com/v1", cfg.Assistant.BaseURL)
	require.Equal(t, "gpt-4o-mini", cfg.Assistant.Model)
	require.Equal(t, "OPENAI_API_KEY", cfg.Assistant.APIKeyEnv)
	require.Equal(t, 30000, cfg.Generation.MaxTextLength)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestAssistantConfig_Timeout(t *testing.T) {
	require.Equal(t, 120*time.Second, AssistantConfig{}.Timeout())
	require.Equal(t, 5*time.Second, AssistantConfig{TimeoutSeconds: 5}.Timeout())
	require.Equal(t, 120*time.Second, AssistantConfig{TimeoutSeconds: -1}.Timeout())
}

func TestAssistantConfig_APIKey(t *testing.T) {
	t.Setenv("SHACLGEN_TEST_KEY", "sk-test")
	require.Equal(t, "sk-test", AssistantConfig{APIKeyEnv: "SHACLGEN_TEST_KEY"}.APIKey())

	t.Setenv("OPENAI_API_KEY", "sk-default")
	require.Equal(t, "sk-default", AssistantConfig{}.APIKey())
}

func TestGenerationConfig_CacheTTL(t *testing.T) {
	require.Equal(t, 10*time.Minute, GenerationConfig{}.CacheTTL())
	require.Equal(t, 30*time.Minute, GenerationConfig{CacheTTLMinutes: 30}.CacheTTL())
}

func TestValidateAssistant(t *testing.T) {
	require.NoError(t, ValidateAssistant(AssistantConfig{}))
	require.Error(t, ValidateAssistant(AssistantConfig{TimeoutSeconds: -1}))
	require.Error(t, ValidateAssistant(AssistantConfig{Temperature: 3}))
	require.NoError(t, ValidateAssistant(AssistantConfig{Temperature: 0.2}))
}

func TestValidateGeneration(t *testing.T) {
	require.NoError(t, ValidateGeneration(GenerationConfig{}))
	require.Error(t, ValidateGeneration(GenerationConfig{MaxTextLength: -1}))
	require.Error(t, ValidateGeneration(GenerationConfig{CacheTTLMinutes: -1}))
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		tracing TracingConfig
		wantErr string
	}{
		{name: "zero value valid", tracing: TracingConfig{}},
		{name: "sample rate too high", tracing: TracingConfig{SampleRate: 1.5}, wantErr: "sample_rate"},
		{name: "sample rate negative", tracing: TracingConfig{SampleRate: -0.1}, wantErr: "sample_rate"},
		{name: "unknown exporter", tracing: TracingConfig{Exporter: "jaeger"}, wantErr: "exporter"},
		{name: "file exporter needs path when enabled", tracing: TracingConfig{Enabled: true, Exporter: "file"}, wantErr: "file_path"},
		{name: "otlp exporter needs endpoint when enabled", tracing: TracingConfig{Enabled: true, Exporter: "otlp"}, wantErr: "otlp_endpoint"},
		{name: "disabled file exporter without path is fine", tracing: TracingConfig{Exporter: "file"}},
		{
			name:    "enabled file exporter with path",
			tracing: TracingConfig{Enabled: true, Exporter: "file", FilePath: "/tmp/traces.jsonl", SampleRate: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.tracing)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".shaclgen", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "catalogue_path: datafields.yaml")
	require.Contains(t, string(data), "base_url: https://api.openai.com/v1")

	// The template must stay parseable YAML.
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	require.Contains(t, parsed, "assistant")
}
