package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
)

// Resolver picks the ref to clone. The first satisfied rule wins:
// explicit override, matching non-default branch that exists on the remote,
// declared version in the config file, then the remote default branch.
type Resolver struct {
	Override        string
	DefaultBranches []string
	VersionKey      string
	Git             contract.GitClient
	Config          contract.ConfigReader
	Out             io.Writer
}

// NewResolver builds a Resolver from validated config.
func NewResolver(cfg *contract.Config, git contract.GitClient, reader contract.ConfigReader) *Resolver {
	return &Resolver{
		Override:        cfg.RefOverride,
		DefaultBranches: cfg.DefaultBranches,
		VersionKey:      cfg.VersionKey,
		Git:             git,
		Config:          reader,
		Out:             os.Stdout,
	}
}

// Resolve runs the decision chain for repo (an owner/name identifier).
// Failed git queries only disqualify their rule. An unreadable config file is an error.
func (r *Resolver) Resolve(ctx context.Context, repo string) (schema.Resolution, error) {
	if r.Override != "" {
		r.logf(ctx, schema.EnvSource, "Using env override: %s", r.Override)
		return schema.Resolution{Ref: r.Override, Source: schema.EnvSource}, nil
	}

	if branch := r.matchingBranch(ctx, repo); branch != "" {
		r.logf(ctx, schema.BranchSource, "Using matching branch: %s", branch)
		return schema.Resolution{Ref: branch, Source: schema.BranchSource}, nil
	}

	key := r.VersionKey
	if key == "" {
		key = contract.DefaultVersionKey
	}
	version, ok, err := r.Config.Lookup(key)
	if err != nil {
		return schema.Resolution{}, fmt.Errorf("reading %s: %w", key, err)
	}
	if ok && version != "" {
		r.logf(ctx, schema.ConfigSource, "Using config.yaml %s: %s", key, version)
		return schema.Resolution{Ref: version, Source: schema.ConfigSource}, nil
	}

	r.logf(ctx, schema.DefaultSource, "Using default branch")
	return schema.Resolution{Source: schema.DefaultSource}, nil
}

// matchingBranch returns the current branch when it is eligible and present on
// the remote, otherwise "".
func (r *Resolver) matchingBranch(ctx context.Context, repo string) string {
	branch, err := r.Git.CurrentBranch(ctx)
	if err != nil || branch == "" {
		return ""
	}
	if r.isDefaultBranch(branch) {
		return ""
	}
	exists, err := r.Git.RemoteBranchExists(ctx, contract.GitHubRepoURL(repo), branch)
	if err != nil || !exists {
		return ""
	}
	return branch
}

func (r *Resolver) isDefaultBranch(branch string) bool {
	defaults := r.DefaultBranches
	if defaults == nil {
		defaults = contract.DefaultBranches
	}
	return slices.Contains(defaults, branch)
}

func (r *Resolver) logf(ctx context.Context, source schema.RefSource, format string, args ...any) {
	if r.Out == nil || isQuiet(ctx) {
		return
	}
	_, _ = fmt.Fprintf(r.Out, "[%s] %s\n", contract.GetColorSource(source), fmt.Sprintf(format, args...))
}
