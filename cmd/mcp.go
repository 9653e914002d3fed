package cmd

import (
	"github.com/kaihendry/setupdeps/core"
	"github.com/kaihendry/setupdeps/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the setupdeps MCP server",
	Long: `Launch an MCP server over stdio so AI agents can ask which ref would be
used and read the run history. The server never clones or syncs.`,
	Args:    cobra.NoArgs,
	PreRunE: setupWithHistory,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(core.WithQuiet(cmd.Context()), cfg, historyStore)
	},
}
