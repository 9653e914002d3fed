package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
)

// Installer replaces the local checkout and registers it with the package manager.
type Installer struct {
	Git    contract.GitClient
	PM     contract.PackageManager
	NoSync bool
	Out    io.Writer
}

// NewInstaller builds an Installer from validated config.
func NewInstaller(cfg *contract.Config, git contract.GitClient, pm contract.PackageManager) *Installer {
	return &Installer{Git: git, PM: pm, NoSync: cfg.NoSync, Out: os.Stdout}
}

// Install removes any existing checkout at path, clones repoURL at depth 1
// (pinned to the resolved ref unless it is the default), then adds it as an
// editable package and syncs. A failed clone leaves whatever git wrote behind.
func (in *Installer) Install(ctx context.Context, repoURL string, path string, res schema.Resolution) error {
	if _, err := os.Lstat(path); err == nil {
		in.logf(ctx, "Removing existing %s", path)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("removing existing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := in.Git.Clone(ctx, repoURL, path, res.Ref); err != nil {
		return err
	}

	if err := in.PM.AddEditable(ctx, editablePath(path)); err != nil {
		return err
	}
	if in.NoSync {
		return nil
	}
	return in.PM.Sync(ctx)
}

// editablePath makes path explicitly relative so the package manager treats it as a directory.
func editablePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return "./" + filepath.ToSlash(filepath.Clean(path))
}

func (in *Installer) logf(ctx context.Context, format string, args ...any) {
	if in.Out == nil || isQuiet(ctx) {
		return
	}
	_, _ = fmt.Fprintf(in.Out, format+"\n", args...)
}
