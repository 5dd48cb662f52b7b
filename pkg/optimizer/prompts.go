package optimizer

import (
	"fmt"
	"strings"

	"promptengine/pkg/modes"
	"promptengine/pkg/schema"
)

// sections lists the outline the model is asked to fill for each mode.
var sections = map[modes.Mode][]string{
	modes.AIDev: {
		"Project Title", "High-Level Description", "Architecture Requirements",
		"Tech Stack Recommendation", "API Structure", "Data Models", "User Roles",
		"Expected Output", "Test Instructions",
	},
	modes.ImageGeneration: {
		"Image Title", "Scene Description", "Subject Details", "Environment & Lighting",
		"Art Style", "Camera Settings", "Composition & Mood", "Negative Prompts",
		"Aspect Ratio", "Final Image Prompt",
	},
	modes.ContentWriting: {
		"Content Goal", "Target Audience", "Key Message", "Tone & Style",
		"Structure", "SEO Keywords", "Call to Action",
	},
	modes.BusinessAnalysis: {
		"Business Context", "Objectives", "Stakeholders", "Data Sources",
		"Analysis Framework", "Risks & Assumptions", "Recommendations Format",
	},
	modes.DataAnalysis: {
		"Dataset Description", "Columns Summary", "Analysis Objectives", "Assumptions",
		"Analysis Tasks", "Modeling Steps", "Output Format",
	},
	modes.ChatbotTraining: {
		"Persona", "Domain Knowledge", "Tone", "Conversation Flows",
		"Memory Rules", "Restrictions", "Escalation", "System Prompt",
	},
	modes.ResearchAcademic: {
		"Research Question", "Background", "Methodology", "Sources & Citations",
		"Analysis Plan", "Limitations", "Expected Output",
	},
}

func outline(m modes.Mode) []string {
	if s, ok := sections[m]; ok {
		return s
	}
	return sections[modes.AIDev]
}

// systemPrompt is the mode's persona plus the output contract.
func systemPrompt(cfg modes.Config) string {
	var b strings.Builder
	b.WriteString(cfg.SystemPrompt)
	b.WriteString("\n\nRewrite the user's request into a single optimized prompt. ")
	b.WriteString("Return only the optimized prompt, not an answer to it.")
	if cfg.OutputFormat != "" {
		fmt.Fprintf(&b, "\nThe optimized prompt must ask for output as %s.", humanize(cfg.OutputFormat))
	}
	if len(cfg.RequiredFields) > 0 {
		fmt.Fprintf(&b, "\nIt must state: %s.", humanizeAll(cfg.RequiredFields))
	}
	return b.String()
}

// userQuery wraps the original request with the outline and the requested options.
func userQuery(cfg modes.Config, prompt string, opts schema.OptimizeOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ORIGINAL REQUEST: %s\n\n", prompt)
	fmt.Fprintf(&b, "MODE: %s\n\n", cfg.Title)
	b.WriteString("Write the optimized prompt using these numbered sections, each as a bold heading:\n")
	for i, s := range outline(cfg.Name) {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, s)
	}
	if extras := optionLines(opts); len(extras) > 0 {
		b.WriteString("\nThe optimized prompt must also require:\n")
		for _, e := range extras {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	if len(cfg.OptionalFields) > 0 {
		fmt.Fprintf(&b, "\nWhere relevant, cover: %s.\n", humanizeAll(cfg.OptionalFields))
	}
	return b.String()
}

func optionLines(opts schema.OptimizeOptions) []string {
	var out []string
	if opts.IncludeTests {
		out = append(out, "Unit and integration tests for every component, with edge cases")
	}
	if opts.AddDocumentation {
		out = append(out, "Documentation for every public interface, with usage examples")
	}
	if opts.PerformanceOptimization {
		out = append(out, "Performance targets such as 200 ms response time and the profiling approach")
	}
	if opts.SecurityFeatures {
		out = append(out, "Input validation, authentication and encryption of sensitive data")
	}
	return out
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func humanizeAll(fields []string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = humanize(f)
	}
	return strings.Join(out, ", ")
}
