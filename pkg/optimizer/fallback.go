package optimizer

import (
	"fmt"
	"strings"

	"promptengine/pkg/modes"
	"promptengine/pkg/schema"
)

// steps are the implementation steps of the rule-based outline.
var steps = map[modes.Mode][]string{
	modes.AIDev: {
		"Set up the project structure and dependencies",
		"Create the data models and database schema",
		"Implement the core logic and algorithms",
		"Build the API endpoints or main functions",
		"Add error handling, validation and logging",
		"Document the public API with usage examples",
	},
	modes.ImageGeneration: {
		"Describe the main subject, pose and expression",
		"Define the environment, lighting and time of day",
		"Choose the art style, medium and color palette",
		"Set the camera angle, focal length and depth of field",
		"List negative prompts for elements to exclude",
	},
	modes.ContentWriting: {
		"Identify the target audience and their needs",
		"Draft an outline with headline, sections and conclusion",
		"Write the content in the requested tone",
		"Add SEO keywords and a clear call to action",
	},
	modes.BusinessAnalysis: {
		"Define the business context and stakeholders",
		"Gather the data sources and key metrics",
		"Analyze trends, risks and opportunities",
		"Summarize findings as prioritized recommendations",
	},
	modes.DataAnalysis: {
		"Describe the dataset, columns and data types",
		"Clean and preprocess the data",
		"Explore distributions and correlations",
		"Build and validate the model",
		"Report results with charts, tables and confidence intervals",
	},
	modes.ChatbotTraining: {
		"Define the persona, expertise and tone",
		"Design the conversation flows and branching",
		"Set memory rules and context handling",
		"Specify restrictions, safety rules and escalation",
	},
	modes.ResearchAcademic: {
		"State the research question and hypothesis",
		"Review the background literature",
		"Describe the methodology and data collection",
		"Plan the analysis and discuss limitations",
	},
}

// fallback expands prompt into a structured outline without a model.
func fallback(cfg modes.Config, prompt string, opts schema.OptimizeOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "OBJECTIVE\n%s: %s\n\n", cfg.Title, strings.TrimSpace(prompt))

	b.WriteString("CONTEXT\n")
	fmt.Fprintf(&b, "This request is for %s. The audience needs a complete, practical result.\n\n", strings.ToLower(cfg.Title))

	b.WriteString("REQUIREMENTS\n")
	for _, f := range cfg.RequiredFields {
		fmt.Fprintf(&b, "- Must specify the %s\n", humanize(f))
	}
	for _, f := range cfg.OptionalFields {
		fmt.Fprintf(&b, "- Should consider the %s\n", humanize(f))
	}
	for _, l := range optionLines(opts) {
		fmt.Fprintf(&b, "- Must include: %s\n", l)
	}
	b.WriteString("\n")

	b.WriteString("STEPS\n")
	s, ok := steps[cfg.Name]
	if !ok {
		s = steps[modes.AIDev]
	}
	for i, step := range s {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\n")

	b.WriteString("DELIVERABLES\n")
	fmt.Fprintf(&b, "- Output format: %s\n", humanize(cfg.OutputFormat))
	b.WriteString("- A short summary of assumptions and constraints")

	return b.String()
}
