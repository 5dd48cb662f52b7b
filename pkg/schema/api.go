package schema

import (
	"time"

	"promptengine/pkg/modes"
	"promptengine/pkg/quality"
)

type ImagePrompt struct {
	ImagePrompt string `json:"image_prompt" jsonschema_description:"One-line prompt ready for an image generation model, with subject, style, composition, lighting, colors and mood"`
	Note        string `json:"note" jsonschema_description:"Short note for the user about choices made in the prompt"`
}

type OptimizeOptions struct {
	IncludeTests            bool `json:"include_tests"`
	AddDocumentation        bool `json:"add_documentation"`
	PerformanceOptimization bool `json:"performance_optimization"`
	SecurityFeatures        bool `json:"security_features"`
}

type OptimizeRequest struct {
	Prompt  string          `json:"prompt"`
	Mode    string          `json:"mode"`
	Options OptimizeOptions `json:"options"`
	// Fresh bypasses the result cache.
	Fresh bool `json:"fresh,omitempty"`
}

type Tokens struct {
	Original  int `json:"original"`
	Optimized int `json:"optimized"`
}

type OptimizeResponse struct {
	Ref             string         `json:"ref"`
	HistoryID       int64          `json:"history_id,omitempty"`
	Mode            modes.Mode     `json:"mode"`
	Model           string         `json:"model"`
	OriginalPrompt  string         `json:"original_prompt"`
	OptimizedPrompt string         `json:"optimized_prompt"`
	OriginalScores  quality.Report `json:"original_scores"`
	OptimizedScores quality.Report `json:"optimized_scores"`
	Improvement     float64        `json:"improvement"`
	Tokens          Tokens         `json:"tokens"`
	Fallback        bool           `json:"fallback"`
	DurationMS      int64          `json:"duration_ms"`
}

type TextRequest struct {
	Prompt string `json:"prompt"`
}

type AssistantRequest struct {
	Message        string `json:"message"`
	Context        string `json:"context,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type AssistantResponse struct {
	ConversationID string `json:"conversation_id"`
	Response       string `json:"response"`
	Model          string `json:"model"`
	Fallback       bool   `json:"fallback"`
}

type ImageRequest struct {
	Description string `json:"description"`
	ImageMode   string `json:"image_mode"`
}

type ImageResponse struct {
	ImageMode   string `json:"image_mode"`
	ModelUsed   string `json:"model_used"`
	ImagePrompt string `json:"image_prompt"`
	Note        string `json:"note"`
	Fallback    bool   `json:"fallback"`
}

type KeywordsResponse struct {
	DocumentID int64    `json:"document_id"`
	Filename   string   `json:"filename"`
	Keywords   []string `json:"keywords"`
}

type ModeRequest struct {
	Mode string `json:"mode"`
}

type ModeResponse struct {
	Success       bool         `json:"success"`
	Mode          modes.Mode   `json:"mode"`
	Model         string       `json:"model"`
	Configuration modes.Config `json:"configuration"`
}

type PromptRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Mode  string `json:"mode"`
}

type Health struct {
	Status    string     `json:"status"`
	Provider  string     `json:"provider"`
	Model     string     `json:"model"`
	Mode      modes.Mode `json:"mode"`
	Timestamp time.Time  `json:"timestamp"`
}
