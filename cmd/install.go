package cmd

import "github.com/spf13/cobra"

// installCmd is the explicit form of the root command.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Resolve the ref, clone the dependency and register it as editable",
	Long: `Resolve which ref to use, replace any existing checkout with a fresh
shallow clone and register it with the package manager.

Every external command is echoed as "+ <command>" before it runs.
Any existing directory at --path is removed first.

Examples:
  # Use the ref chosen by the resolution rules
  setupdeps install

  # Force a ref
  PYUNDERSTAND_REF=feature-x setupdeps install

  # Record the run in a local SQLite history
  setupdeps install --history-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: setupWithHistory,
	RunE:    runInstall,
}
