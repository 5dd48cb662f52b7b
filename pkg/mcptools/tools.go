package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"promptengine/pkg/modes"
	"promptengine/pkg/optimizer"
	"promptengine/pkg/quality"
	"promptengine/pkg/schema"
	"promptengine/pkg/utils"
)

// ScoreTool handles the score_prompt MCP tool.
type ScoreTool struct{}

func NewScoreTool() *ScoreTool { return &ScoreTool{} }

// Definition returns the MCP tool definition for score_prompt.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("score_prompt",
		mcp.WithDescription("Score a prompt on nine quality dimensions from 0 to 10 and return the report as JSON."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The prompt text to score"),
		),
	)
}

func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(utils.PrettyJSON(quality.Score(req.GetString("prompt", "")))), nil
}

// AnalyzeTool handles the analyze_prompt MCP tool.
type AnalyzeTool struct{}

func NewAnalyzeTool() *AnalyzeTool { return &AnalyzeTool{} }

func (t *AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_prompt",
		mcp.WithDescription("Summarize a prompt: word count, readability, action verbs, detected elements and quality report."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The prompt text to analyze"),
		),
	)
}

func (t *AnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt := req.GetString("prompt", "")
	if prompt == "" {
		return mcp.NewToolResultError("'prompt' is required"), nil
	}
	return mcp.NewToolResultText(utils.PrettyJSON(quality.Analyze(prompt))), nil
}

// ModesTool handles the list_modes MCP tool.
type ModesTool struct {
	catalogue *modes.Catalogue
}

func NewModesTool(c *modes.Catalogue) *ModesTool {
	return &ModesTool{catalogue: c}
}

func (t *ModesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_modes",
		mcp.WithDescription("List the optimization modes with their model, sampling settings and required fields."),
	)
}

func (t *ModesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(utils.PrettyJSON(t.catalogue.Summaries())), nil
}

// OptimizeTool handles the optimize_prompt MCP tool.
type OptimizeTool struct {
	svc *optimizer.Service
}

func NewOptimizeTool(svc *optimizer.Service) *OptimizeTool {
	return &OptimizeTool{svc: svc}
}

func (t *OptimizeTool) Definition() mcp.Tool {
	return mcp.NewTool("optimize_prompt",
		mcp.WithDescription("Rewrite a prompt for an optimization mode and report the scores before and after."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The prompt to optimize"),
		),
		mcp.WithString("mode",
			mcp.Description("Optimization mode, for example ai-dev, image-generation or auto (default: ai-dev)"),
		),
	)
}

func (t *OptimizeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := t.svc.Optimize(ctx, schema.OptimizeRequest{
		Prompt: req.GetString("prompt", ""),
		Mode:   req.GetString("mode", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("optimize failed: %v", err)), nil
	}
	return mcp.NewToolResultText(utils.PrettyJSON(resp)), nil
}
