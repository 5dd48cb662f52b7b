package inference

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Config selects and tunes the inference provider.
type Config struct {
	Provider      Provider
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	Timeout       time.Duration
	Retries       int
}

// Resolve returns the provider New would use for cfg.
// Auto prefers Gemini, then OpenAI, then none.
func (cfg Config) Resolve() Provider {
	p := Provider(strings.ToLower(string(cfg.Provider)))
	switch p {
	case ProviderGemini, ProviderOpenAI, ProviderNone:
		return p
	}
	switch {
	case cfg.GeminiAPIKey != "":
		return ProviderGemini
	case cfg.OpenAIAPIKey != "", cfg.OpenAIBaseURL != "":
		return ProviderOpenAI
	default:
		return ProviderNone
	}
}

// New builds the configured Inferencer wrapped with retries and a timeout.
// It returns ErrNoInferencer when no provider is available.
func New(ctx context.Context, cfg Config) (Inferencer, error) {
	var inner Inferencer
	switch p := cfg.Resolve(); p {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY is empty", ErrNoInferencer)
		}
		g, err := NewGeminiInferencer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		inner = g
	case ProviderOpenAI:
		o := NewOpenAIInferencer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if cfg.OpenAIBaseURL != "" {
			o.ChangeBaseURL(cfg.OpenAIBaseURL)
		}
		inner = o
	default:
		return nil, ErrNoInferencer
	}

	return NewResilientInferencer(inner, ResilienceConfig{
		Attempts: cfg.Retries + 1,
		Timeout:  cfg.Timeout,
	}), nil
}
