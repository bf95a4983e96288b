// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/brightops/prove/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the prove MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Prove Quality Gate Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: run_gate ---
	s.AddTool(mcp.NewTool("run_gate",
		mcp.WithDescription("Run the quality gate against the repository's current change-set and return the full report."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the server's working directory).")),
		mcp.WithString("base_ref", mcp.Description("Base Git reference to diff against (empty = working tree vs HEAD).")),
		mcp.WithBoolean("quick", mcp.Description("Run the quick profile instead of the full one.")),
	), h.handleRunGate)

	// --- 2. Tool: list_checks ---
	s.AddTool(mcp.NewTool("list_checks",
		mcp.WithDescription("List the registered checks with their class, profiles and mode restrictions."),
	), h.handleListChecks)

	// --- 3. Tool: diff_coverage ---
	s.AddTool(mcp.NewTool("diff_coverage",
		mcp.WithDescription("Compute coverage of the changed lines only, without running any check."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("base_ref", mcp.Description("Base Git reference to diff against.")),
	), h.handleDiffCoverage)

	return s
}

// StartMCPServer starts the prove MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
