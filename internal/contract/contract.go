// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/kaihendry/setupdeps/schema"
)

// CommandRunner executes external programs.
// This allows resolution and install logic to be tested without spawning processes.
type CommandRunner interface {
	// Run executes name with args and captures its output.
	// A non-zero exit is only an error when check is true.
	Run(ctx context.Context, check bool, name string, args ...string) (CommandResult, error)
}

// GitClient defines the git operations needed to pick and fetch a dependency.
type GitClient interface {
	// CurrentBranch returns the checked-out branch of the working directory.
	// Detached HEAD yields an empty string.
	CurrentBranch(ctx context.Context) (string, error)

	// RemoteBranchExists asks the remote whether refs/heads/<branch> exists.
	RemoteBranchExists(ctx context.Context, repoURL string, branch string) (bool, error)

	// Clone makes a depth 1 clone of repoURL at dest, pinned to ref when ref is non-empty.
	Clone(ctx context.Context, repoURL string, dest string, ref string) error
}

// PackageManager registers local packages and syncs the environment.
type PackageManager interface {
	// AddEditable registers path as an editable dependency.
	AddEditable(ctx context.Context, path string) error

	// Sync brings the environment in line with the lock file.
	Sync(ctx context.Context) error
}

// ConfigParser extracts a single top-level key from raw config bytes.
type ConfigParser interface {
	Lookup(data []byte, key string) (string, bool, error)
}

// ConfigReader reads a key from the dependency config file.
type ConfigReader interface {
	// Lookup returns the value for key. A missing file or key is not an error.
	Lookup(key string) (string, bool, error)
}

// HistoryStore defines the interface for recording setup runs.
type HistoryStore interface {
	// RecordRun stores a finished run and returns its ID.
	RecordRun(record schema.RunRecord) (int64, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
