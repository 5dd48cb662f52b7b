package optimizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"promptengine/pkg/schema"
	"promptengine/pkg/utils"
)

const imageNote = "Image generation not executed locally; image_prompt prepared for model."

const imageSystem = "You write prompts for image generation models. Respond with JSON only."

// ImagePrompt prepares a prompt for the image model selected by imageMode.
// No image is generated.
func (s *Service) ImagePrompt(ctx context.Context, description, imageMode string) (schema.ImageResponse, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return schema.ImageResponse{}, ErrEmptyPrompt
	}
	kind, model := s.catalogue.ImageModel(imageMode)
	base := fmt.Sprintf("Create a %s style image: %s. Produce a concise prompt suitable for an image generation model, include desired colors, composition, and mood.", kind, description)

	resp := schema.ImageResponse{
		ImageMode:   kind,
		ModelUsed:   model,
		ImagePrompt: base,
		Note:        imageNote,
		Fallback:    true,
	}
	if s.llm == nil {
		return resp, nil
	}

	out, err := s.llm.Infer(ctx, &openai.ChatCompletionNewParams{
		Temperature:         openai.Float(0.8),
		MaxCompletionTokens: openai.Int(512),
		ResponseFormat:      schema.ImagePromptResponseFormat(),
	}, imageSystem, base)
	if err != nil {
		log.Warn("image prompt inference failed", "error", err)
		return resp, nil
	}

	var ip schema.ImagePrompt
	if err := json.Unmarshal([]byte(utils.CleanJSON(out)), &ip); err != nil || strings.TrimSpace(ip.ImagePrompt) == "" {
		log.Warn("image prompt output was not usable JSON", "error", err, "output", utils.LimitStr(out, 200))
		return resp, nil
	}
	resp.ImagePrompt = strings.TrimSpace(ip.ImagePrompt)
	if ip.Note != "" {
		resp.Note = ip.Note + " " + imageNote
	}
	resp.Fallback = false
	return resp, nil
}
