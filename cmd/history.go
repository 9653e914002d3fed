package cmd

import (
	"fmt"
	"os"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/internal/history"
	"github.com/kaihendry/setupdeps/internal/outwriter"
	"github.com/kaihendry/setupdeps/schema"
	"github.com/spf13/cobra"
)

// historyDBPath returns the SQLite file to operate on.
func historyDBPath() string {
	if cfg.HistoryDBConnect != "" {
		return cfg.HistoryDBConnect
	}
	return contract.GetHistoryDBFilePath()
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the run history",
	Long: `Manage the optional record of setup runs.

When --history-backend is not none, every install records when it ran,
which ref it used, why that ref was chosen and whether it succeeded.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  list    - Show recent runs
  status  - Show history statistics and connection info
  clear   - Remove all recorded runs
  export  - Export runs to Parquet
  migrate - Run database schema migrations`,
}

// historyListCmd lists recent runs.
var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the most recent runs",
	Args:    cobra.NoArgs,
	PreRunE: setupWithHistory,
	RunE: func(_ *cobra.Command, _ []string) error {
		runs, err := historyStore.ListRuns(cfg.Limit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		return outwriter.WriteRuns(cfg, runs)
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	Args:    cobra.NoArgs,
	PreRunE: setupWithHistory,
	RunE: func(_ *cobra.Command, _ []string) error {
		status, err := historyStore.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get history status: %w", err)
		}
		return outwriter.WriteHistoryStatus(cfg, status)
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all recorded runs from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history and migration tables

WARNING: This action cannot be undone. Consider exporting data first.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := history.ClearHistory(cfg.HistoryBackend, historyDBPath(), cfg.HistoryDBConnect); err != nil {
			return fmt.Errorf("failed to clear run history: %w", err)
		}
		fmt.Println("Run history cleared successfully.")
		return nil
	},
}

// historyExportCmd exports runs to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to a Parquet file",
	Long: `Write every recorded run to <output-file>.runs.parquet.

The Parquet file can be read with DuckDB, pandas (via pyarrow), Spark or
any other Parquet-compatible tool.

Examples:
  setupdeps history export --history-backend sqlite --output-file runs`,
	Args:    cobra.NoArgs,
	PreRunE: setupWithHistory,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := history.ExportRuns(historyStore, cfg.OutputFile, os.Stdout)
		return err
	},
}

// historyMigrateCmd runs schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations for the history store",
	Long: `Migrate the history schema to a given version.

The store applies pending migrations whenever it is opened, so this is
mainly useful for rolling back.

Examples:
  # Migrate to the latest version
  setupdeps history migrate --history-backend sqlite

  # Roll back everything
  setupdeps history migrate --history-backend sqlite --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		connStr := cfg.HistoryDBConnect
		if cfg.HistoryBackend == schema.SQLiteBackend {
			connStr = historyDBPath()
		}
		return history.MigrateHistory(cfg.HistoryBackend, connStr, cfg.TargetVersion, os.Stdout)
	},
}
