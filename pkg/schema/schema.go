package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"

	"promptengine/pkg/quality"
)

func generateSchema[T any]() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

var (
	ImagePromptSchema   = generateSchema[ImagePrompt]()
	QualityReportSchema = generateSchema[quality.Report]()
	AnalysisSchema      = generateSchema[quality.Analysis]()
)

// ImagePromptResponseFormat asks the model for an ImagePrompt JSON object.
func ImagePromptResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "image_prompt",
		Description: openai.String("A single image generation prompt and a short note for the user"),
		Schema:      ImagePromptSchema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}
