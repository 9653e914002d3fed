// Package cmd defines the command-line interface for setupdeps.
package cmd

import (
	"strings"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("repo", contract.DefaultRepo, "GitHub repository of the dependency in owner/name form")
	rootCmd.PersistentFlags().String("path", contract.DefaultTargetPath, "Directory to clone into, relative to the working directory")
	rootCmd.PersistentFlags().String("config-file", contract.DefaultConfigFile, "Project config file that may declare the dependency version")
	rootCmd.PersistentFlags().String("version-key", contract.DefaultVersionKey, "Top-level key in the config file that holds the version")
	rootCmd.PersistentFlags().String("ref", "", "Explicit ref to clone (same as "+contract.DefaultRefEnv+")")
	rootCmd.PersistentFlags().String("parser", string(schema.YAMLParser), "Config file parser: yaml or line")
	rootCmd.PersistentFlags().String("package-manager", contract.DefaultPackageManager, "Package manager executable used for add/sync")
	rootCmd.PersistentFlags().String("default-branches", strings.Join(contract.DefaultBranches, ","), "Comma-separated branch names never treated as a matching branch")
	rootCmd.PersistentFlags().Bool("no-sync", false, "Skip the final environment sync")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultLimit, "Number of history runs to display")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql, or the file path for sqlite")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
