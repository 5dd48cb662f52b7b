package inference

import (
	"cmp"
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
)

// Provider names the backend serving an Inferencer.
type Provider string

const (
	ProviderAuto   Provider = "auto"
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderNone   Provider = "none"
)

// ErrNoInferencer is returned by New when no provider is configured.
var ErrNoInferencer = errors.New("inference: no provider configured")

// Inferencer defines an interface for running model inference and verification.
type Inferencer interface {
	Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
	Verify(ctx context.Context, result string) (bool, error)
	// Model is the model used when params do not name one.
	Model() string
	Provider() Provider
}

var errEmptyResult = errors.New("inference: empty result")

func verifyNonEmpty(result string) (bool, error) {
	if strings.TrimSpace(result) == "" {
		return false, errEmptyResult
	}
	return true, nil
}

// Sampling defaults applied when the caller leaves a field unset.
const (
	defaultMaxTokens   = 2048
	defaultTemperature = 0.3
)

func cloneParams(params *openai.ChatCompletionNewParams) *openai.ChatCompletionNewParams {
	if params == nil {
		return new(openai.ChatCompletionNewParams)
	}
	p := *params
	return &p
}

// withDefaults copies params and fills the model and sampling fields the
// caller left unset.
func withDefaults(params *openai.ChatCompletionNewParams, model string) *openai.ChatCompletionNewParams {
	p := cloneParams(params)
	p.Model = cmp.Or(p.Model, model)
	if !p.MaxCompletionTokens.Valid() || p.MaxCompletionTokens.Value <= 0 {
		p.MaxCompletionTokens = openai.Int(defaultMaxTokens)
	}
	if !p.Temperature.Valid() {
		p.Temperature = openai.Float(defaultTemperature)
	}
	if !p.TopP.Valid() {
		p.TopP = openai.Float(1)
	}
	return p
}
