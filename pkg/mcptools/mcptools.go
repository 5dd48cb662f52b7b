// Package mcptools exposes the scoring engine and mode catalogue as MCP tools
// over stdio.
package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"promptengine/pkg/optimizer"
)

const instructions = "Tools for judging and improving prompts. Use score_prompt for the nine " +
	"dimension quality report, analyze_prompt for a readable summary, list_modes to see the " +
	"optimization modes and optimize_prompt to rewrite a prompt for one of them."

// NewServer registers every tool on a new MCP server.
func NewServer(version string, svc *optimizer.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"promptengine",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	score := NewScoreTool()
	s.AddTool(score.Definition(), score.Handle)

	analyze := NewAnalyzeTool()
	s.AddTool(analyze.Definition(), analyze.Handle)

	list := NewModesTool(svc.Catalogue())
	s.AddTool(list.Definition(), list.Handle)

	optimize := NewOptimizeTool(svc)
	s.AddTool(optimize.Definition(), optimize.Handle)

	return s
}

// Serve runs the MCP server on stdin and stdout until the client disconnects.
func Serve(version string, svc *optimizer.Service) error {
	return server.ServeStdio(NewServer(version, svc))
}
