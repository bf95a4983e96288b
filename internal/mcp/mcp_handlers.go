package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/brightops/prove/core"
	"github.com/brightops/prove/core/checks"
	"github.com/brightops/prove/core/cover"
	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/internal/logwriter"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// checkListing is the wire shape of one registry entry.
type checkListing struct {
	ID       string   `json:"id"`
	Class    string   `json:"class"`
	Profiles []string `json:"profiles"`
	Modes    []string `json:"modes,omitempty"`
}

func (h *toolHandler) handleRunGate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if b := request.GetString("base_ref", ""); b != "" {
		cfg.BaseRef = b
	}
	cfg.Quick = request.GetBool("quick", cfg.Quick)

	// Log lines go to a buffer, not stdio: the protocol owns stdio, and
	// the report below carries everything the caller needs.
	var buf bytes.Buffer
	log := logwriter.NewLogger(&buf, true, false)

	runner := core.NewRunner(cfg, contract.NewLocalGitClient(), contract.NewExecToolRunner(), log, checks.All())
	report, err := runner.Execute(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("gate run failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListChecks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var listings []checkListing
	for _, d := range checks.All() {
		listing := checkListing{ID: d.ID, Class: string(d.Class)}
		for _, p := range d.Profiles {
			listing.Profiles = append(listing.Profiles, string(p))
		}
		for _, m := range d.Modes {
			listing.Modes = append(listing.Modes, string(m))
		}
		listings = append(listings, listing)
	}

	jsonData, _ := json.MarshalIndent(listings, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDiffCoverage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if b := request.GetString("base_ref", ""); b != "" {
		cfg.BaseRef = b
	}

	rc, err := core.BuildContext(ctx, cfg, contract.NewLocalGitClient())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("context build failed: %v", err)), nil
	}
	if rc.Coverage == nil {
		return mcp.NewToolResultError(fmt.Sprintf("coverage report not found at %s", cfg.CoverageFile)), nil
	}

	result := cover.Analyze(rc.Coverage, rc.ChangedLines)
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
