package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptengine/pkg/inference"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(env(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Empty(t, cfg.ModelOverride)
	assert.Equal(t, 120*time.Second, cfg.Inference.Timeout)
	assert.Equal(t, 2, cfg.Inference.Retries)
	assert.Equal(t, inference.ProviderNone, cfg.Inference.Resolve())
}

func TestLoadValues(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		"PORT":               "9000",
		"DATA_DIR":           "/var/lib/pe",
		"DEBUG":              "true",
		"CORS_ORIGINS":       "http://localhost:3000, https://app.example.com,",
		"GEMINI_API_KEY":     "g-key",
		"OPENAI_API_KEY":     "o-key",
		"INFERENCE_PROVIDER": "OpenAI",
		"INFERENCE_TIMEOUT":  "30",
		"INFERENCE_RETRIES":  "0",
		"MODES_FILE":         "modes.yaml",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/var/lib/pe", cfg.DataDir)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, inference.ProviderOpenAI, cfg.Inference.Resolve())
	assert.Equal(t, 30*time.Second, cfg.Inference.Timeout)
	assert.Equal(t, 0, cfg.Inference.Retries)
	assert.Equal(t, "modes.yaml", cfg.ModesFile)
}

func TestLoadRaptor(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{"RAPTOR_MINI_ENABLED": "1"}))
	require.NoError(t, err)
	assert.Equal(t, DefaultRaptor, cfg.ModelOverride)

	cfg, err = LoadFrom(env(map[string]string{"RAPTOR_MINI_ENABLED": "true", "RAPTOR_MODEL_NAME": "raptor-2"}))
	require.NoError(t, err)
	assert.Equal(t, "raptor-2", cfg.ModelOverride)

	cfg, err = LoadFrom(env(map[string]string{"RAPTOR_MODEL_NAME": "raptor-2"}))
	require.NoError(t, err)
	assert.Empty(t, cfg.ModelOverride)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad port", map[string]string{"PORT": "http"}, "PORT"},
		{"port out of range", map[string]string{"PORT": "70000"}, "PORT"},
		{"bad bool", map[string]string{"DEBUG": "sometimes"}, "DEBUG"},
		{"bad duration", map[string]string{"INFERENCE_TIMEOUT": "soon"}, "INFERENCE_TIMEOUT"},
		{"bad provider", map[string]string{"INFERENCE_PROVIDER": "claude"}, "INFERENCE_PROVIDER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(env(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
