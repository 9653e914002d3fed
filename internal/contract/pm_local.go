package contract

import (
	"context"
	"fmt"
)

// DefaultPackageManager is the executable used to register the dependency.
const DefaultPackageManager = "uv"

// UVClient implements the PackageManager interface with a uv-compatible executable.
type UVClient struct {
	runner     CommandRunner
	executable string
}

var _ PackageManager = &UVClient{} // Compile-time check

// NewUVClient creates a package manager client. An empty executable means "uv".
func NewUVClient(runner CommandRunner, executable string) *UVClient {
	if executable == "" {
		executable = DefaultPackageManager
	}
	return &UVClient{runner: runner, executable: executable}
}

// AddEditable implements the PackageManager interface.
func (c *UVClient) AddEditable(ctx context.Context, path string) error {
	if _, err := c.runner.Run(ctx, true, c.executable, "add", "--editable", path); err != nil {
		return fmt.Errorf("registering %s as editable: %w", path, err)
	}
	return nil
}

// Sync implements the PackageManager interface.
func (c *UVClient) Sync(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, true, c.executable, "sync"); err != nil {
		return fmt.Errorf("syncing environment: %w", err)
	}
	return nil
}
