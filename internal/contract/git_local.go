package contract

import (
	"context"
	"fmt"
	"strings"
)

// GitHubRepoURL builds the clone URL for an owner/name identifier.
func GitHubRepoURL(repo string) string {
	return fmt.Sprintf("https://github.com/%s.git", repo)
}

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary through a CommandRunner.
type LocalGitClient struct {
	runner CommandRunner
}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient(runner CommandRunner) *LocalGitClient {
	return &LocalGitClient{runner: runner}
}

// CurrentBranch implements the GitClient interface.
func (c *LocalGitClient) CurrentBranch(ctx context.Context) (string, error) {
	res, err := c.runner.Run(ctx, false, "git", "branch", "--show-current")
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", fmt.Errorf("git branch --show-current exited with status %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return strings.TrimSpace(res.Stdout), nil
}

// RemoteBranchExists implements the GitClient interface.
// --exit-code makes ls-remote return 2 when no matching ref is found.
func (c *LocalGitClient) RemoteBranchExists(ctx context.Context, repoURL string, branch string) (bool, error) {
	res, err := c.runner.Run(ctx, false, "git", "ls-remote", "--exit-code", "--heads", repoURL, branch)
	if err != nil {
		return false, err
	}
	return res.Success(), nil
}

// Clone implements the GitClient interface.
func (c *LocalGitClient) Clone(ctx context.Context, repoURL string, dest string, ref string) error {
	args := []string{"clone", "--depth", "1"}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	args = append(args, repoURL, dest)
	if _, err := c.runner.Run(ctx, true, "git", args...); err != nil {
		return fmt.Errorf("cloning %s: %w", repoURL, err)
	}
	return nil
}
