// Package core has the ref resolution and dependency install logic.
package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kaihendry/setupdeps/internal/configfile"
	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/internal/outwriter"
	"github.com/kaihendry/setupdeps/schema"
)

// NewLocalDeps wires the real git, package manager and config file reader.
// Command echoes and decision lines go to log (stdout when nil).
func NewLocalDeps(cfg *contract.Config, log io.Writer, history contract.HistoryStore) (Deps, error) {
	parser, err := configfile.NewParser(cfg.Parser)
	if err != nil {
		return Deps{}, err
	}
	runner := contract.NewLocalRunner(log)
	return Deps{
		Git:     contract.NewLocalGitClient(runner),
		PM:      contract.NewUVClient(runner, cfg.PackageManager),
		Config:  configfile.NewReader(cfg.ConfigFile, parser),
		History: history,
		Log:     log,
	}, nil
}

// ExecuteInstall resolves, clones and registers the dependency.
// It serves as the main entry point for the 'install' command.
func ExecuteInstall(ctx context.Context, cfg *contract.Config, history contract.HistoryStore) error {
	start := time.Now()
	deps, err := NewLocalDeps(cfg, logWriter(cfg), history)
	if err != nil {
		return err
	}
	res, err := SetupDependency(ctx, cfg, deps)
	if err != nil {
		return err
	}
	return outwriter.WriteInstallSummary(cfg, res, time.Since(start))
}

// ExecuteResolve prints the ref that an install would use without cloning.
// It serves as the main entry point for the 'resolve' command.
func ExecuteResolve(ctx context.Context, cfg *contract.Config) error {
	deps, err := NewLocalDeps(cfg, logWriter(cfg), nil)
	if err != nil {
		return err
	}
	res, err := ResolveDependency(ctx, cfg, deps)
	if err != nil {
		return fmt.Errorf("resolving ref for %s: %w", cfg.Repo, err)
	}
	return outwriter.WriteResolution(cfg, res)
}

// logWriter keeps stdout clean for machine-readable output.
func logWriter(cfg *contract.Config) io.Writer {
	if cfg.Output != schema.TextOut && cfg.Output != "" {
		return os.Stderr
	}
	return nil
}
