package optimizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"promptengine/pkg/modes"
)

const assistantSystem = "You are a prompt engineering coach. Answer practically and concisely, " +
	"with concrete examples the user can copy."

var tips = map[modes.Mode][]string{
	modes.AIDev: {
		"Be specific about requirements. Instead of \"create a function\", say \"create a Python function that validates email addresses, returns a boolean and includes 3 test cases\".",
		"State constraints up front: performance targets such as 1000 requests per second, security rules such as input validation, and the APIs the code must integrate with.",
		"Ask for the deliverable explicitly: working code, error handling, configuration examples and unit tests with a named framework.",
	},
	modes.ImageGeneration: {
		"Describe the subject first, then the setting, then the style. For example: \"a red fox in a snowy birch forest, watercolor, soft morning light\".",
		"Name the camera details: angle, focal length and depth of field change the result more than adjectives do.",
		"Use negative prompts to exclude what you do not want, such as text, watermarks or extra limbs.",
	},
	modes.ContentWriting: {
		"Name the audience and the single message they should remember, then ask for a headline, sections and a call to action.",
		"Give the tone with an example sentence; \"friendly but expert\" is vaguer than a sample line.",
		"Set a length and a format, for example 800 words with H2 headings and a bullet summary.",
	},
}

var genericTips = []string{
	"Define what you want, why you want it, how it should be approached, what success looks like and which constraints apply.",
	"Use action verbs, be specific rather than general, include an example and specify the output format.",
	"Add context: who the result is for, where it will be used and what has already been tried.",
}

// Reply is an assistant answer.
type Reply struct {
	Text     string `json:"response"`
	Model    string `json:"model"`
	Fallback bool   `json:"fallback"`
}

// Assist answers a question about prompt writing. topic names the mode
// the user is working in and may be empty.
func (s *Service) Assist(ctx context.Context, message, topic string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}
	mode := modes.Normalize(topic)

	if s.llm != nil {
		out, err := s.llm.Infer(ctx, &openai.ChatCompletionNewParams{
			Temperature:         openai.Float(0.7),
			MaxCompletionTokens: openai.Int(1024),
		}, assistantSystem, assistantQuery(message, topic))
		if err == nil && strings.TrimSpace(out) != "" {
			return Reply{Text: strings.TrimSpace(out), Model: s.llm.Model()}, nil
		}
		log.Warn("assistant inference failed, using a canned tip", "error", err)
	}

	pool, ok := tips[mode]
	if !ok || strings.TrimSpace(topic) == "" {
		pool = genericTips
	}
	return Reply{Text: pool[len(message)%len(pool)], Model: RuleBased, Fallback: true}, nil
}

func assistantQuery(message, topic string) string {
	scope := "general"
	lead := "The user is optimizing prompts for AI projects."
	if topic != "" {
		scope = topic
		lead = fmt.Sprintf("The user is working on a %s prompt optimization project.", topic)
	}
	return fmt.Sprintf(`%s

USER QUESTION: %s

Answer with:
1. A direct answer to the question
2. Why it matters for prompt quality
3. A concrete example or technique
4. Common mistakes to avoid

Keep it practical and tailored to %s projects.`, lead, message, scope)
}
