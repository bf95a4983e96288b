package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/brightops/prove/internal/contract"
	mcp_internal "github.com/brightops/prove/internal/mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerTools(t *testing.T) {
	baseCfg := &contract.Config{
		RepoPath:     ".",
		CoverageFile: "coverage/coverage-final.json",
	}
	s := mcp_internal.NewMCPServer(baseCfg)

	ctx := context.Background()

	t.Run("list_checks returns full registry", func(t *testing.T) {
		tool := s.GetTool("list_checks")
		require.NotNil(t, tool, "Tool list_checks should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "list_checks"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var listings []map[string]any
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &listings))
		assert.Len(t, listings, 10)

		ids := make(map[string]bool)
		for _, l := range listings {
			ids[l["id"].(string)] = true
		}
		assert.True(t, ids["trunk-discipline"])
		assert.True(t, ids["coverage-diff"])
	})

	t.Run("diff_coverage without report is a tool error", func(t *testing.T) {
		tool := s.GetTool("diff_coverage")
		require.NotNil(t, tool, "Tool diff_coverage should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "diff_coverage",
				Arguments: map[string]any{
					"repo_path": t.TempDir(), // not a git repository
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
	})

	t.Run("run_gate outside a repository is a tool error", func(t *testing.T) {
		tool := s.GetTool("run_gate")
		require.NotNil(t, tool, "Tool run_gate should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "run_gate",
				Arguments: map[string]any{
					"repo_path": t.TempDir(),
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "gate run failed")
	})
}
