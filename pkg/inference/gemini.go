package inference

import (
	"cmp"
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

type GeminiInferencer struct {
	client *genai.Client
	apiKey string
	model  string
}

// NewGeminiInferencer creates a new inferencer backed by the Gemini API.
func NewGeminiInferencer(ctx context.Context, apiKey string, model string) (*GeminiInferencer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiInferencer{
		client: client,
		apiKey: apiKey,
		model:  cmp.Or(model, "gemini-2.0-flash"),
	}, nil
}

func (o *GeminiInferencer) Model() string { return o.model }

func (o *GeminiInferencer) Provider() Provider { return ProviderGemini }

// Infer maps the chat completion params onto a GenerateContent call.
// A JSON schema response format switches Gemini to JSON output.
func (o *GeminiInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	params = withDefaults(params, o.model)
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		MaxOutputTokens:   int32(params.MaxCompletionTokens.Value),
		Temperature:       genai.Ptr(float32(params.Temperature.Value)),
		TopP:              genai.Ptr(float32(params.TopP.Value)),
	}
	if rf := params.ResponseFormat.OfJSONSchema; rf != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseJsonSchema = rf.JSONSchema.Schema
	}

	result, err := o.client.Models.GenerateContent(
		ctx,
		params.Model,
		genai.Text(user),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("gemini inference error: %w", err)
	}

	return result.Text(), nil
}

// Verify checks that the result is non-empty.
func (o *GeminiInferencer) Verify(_ context.Context, result string) (bool, error) {
	return verifyNonEmpty(result)
}
