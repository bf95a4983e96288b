package cmd

import (
	"github.com/brightops/prove/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the prove MCP server",
	Long:  `Launch an MCP server that allows AI agents to run the quality gate and inspect diff coverage via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup runs normally, but the gate logs must not pollute stdio,
		// which carries the protocol. Handlers build their own loggers.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}
