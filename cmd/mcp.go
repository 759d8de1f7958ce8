package cmd

import (
	"github.com/lintscore/lintscore/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Lintscore MCP server",
	Long:  `Launch an MCP server that allows AI agents to run analyses, list runs and compare results via standard tools.`,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, toolRunner, resultStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
