package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/kaihendry/setupdeps/core"
	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/internal/history"
	"github.com/kaihendry/setupdeps/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// historyStore is opened lazily by the commands that record or read runs.
var historyStore *history.Store

// rootCmd resolves, clones and registers the dependency when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "setupdeps",
	Short: "Clone a git dependency at the right ref and register it as editable.",
	Long: `setupdeps decides which ref of a GitHub repository to use, makes a fresh
shallow clone of it and registers the clone as an editable dependency with uv.

The ref is chosen by the first rule that applies:
  1. PYUNDERSTAND_REF (or --ref) when set
  2. the current branch, when it is not main/master and exists on the remote
  3. the version key of config.yaml
  4. the remote default branch`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Args:               cobra.NoArgs,
	PreRunE:            setupWithHistory,
	RunE:               runInstall,
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("SETUPDEPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// The override keeps its historical name.
	if err := viper.BindEnv("ref", contract.DefaultRefEnv); err != nil {
		contract.LogFatal("Error binding ref env", err)
	}

	// Set defaults in Viper
	viper.SetDefault("repo", contract.DefaultRepo)
	viper.SetDefault("path", contract.DefaultTargetPath)
	viper.SetDefault("config-file", contract.DefaultConfigFile)
	viper.SetDefault("version-key", contract.DefaultVersionKey)
	viper.SetDefault("parser", schema.YAMLParser)
	viper.SetDefault("package-manager", contract.DefaultPackageManager)
	viper.SetDefault("default-branches", strings.Join(contract.DefaultBranches, ","))
	viper.SetDefault("limit", contract.DefaultLimit)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("target-version", -1)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".setupdeps") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	// The override is reported as source env, so it may only come from the
	// environment or --ref.
	if viper.InConfig("ref") {
		return fmt.Errorf("ref cannot be set in %s; use %s or --ref", viper.ConfigFileUsed(), contract.DefaultRefEnv)
	}
	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and parsing into the global cfg.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	color.NoColor = color.NoColor || !cfg.UseColors
	return nil
}

// setupWithHistory runs sharedSetup and opens the configured history store.
func setupWithHistory(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(cmd, args); err != nil {
		return err
	}
	store, err := history.NewHistoryStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}
	historyStore = store
	return nil
}

// runInstall is shared by the root and install commands.
func runInstall(cmd *cobra.Command, _ []string) error {
	return core.ExecuteInstall(cmd.Context(), cfg, historyStore)
}

// closeHistory releases the history store if one was opened.
func closeHistory() {
	if historyStore != nil {
		if err := historyStore.Close(); err != nil {
			contract.LogWarn("could not close run history", err)
		}
		historyStore = nil
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer closeHistory()
	return rootCmd.ExecuteContext(ctx)
}
