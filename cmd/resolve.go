package cmd

import (
	"github.com/kaihendry/setupdeps/core"
	"github.com/spf13/cobra"
)

// resolveCmd prints the ref without touching the filesystem.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the ref an install would use, without cloning",
	Long: `Run only the ref resolution rules and print the outcome.

Nothing is removed, cloned or synced. The only external calls are the
current-branch query and the remote branch existence check.

Examples:
  setupdeps resolve
  setupdeps resolve --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return core.ExecuteResolve(cmd.Context(), cfg)
	},
}
