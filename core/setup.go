package core

import (
	"context"
	"io"
	"time"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
)

// Deps bundles the collaborators of a setup run.
// History may be nil when run tracking is disabled. Log overrides stdout for
// decision lines when set.
type Deps struct {
	Git     contract.GitClient
	PM      contract.PackageManager
	Config  contract.ConfigReader
	History contract.HistoryStore
	Log     io.Writer
}

// ResolveDependency runs ref resolution only.
func ResolveDependency(ctx context.Context, cfg *contract.Config, deps Deps) (schema.Resolution, error) {
	r := NewResolver(cfg, deps.Git, deps.Config)
	if deps.Log != nil {
		r.Out = deps.Log
	}
	return r.Resolve(ctx, cfg.Repo)
}

// SetupDependency resolves a ref, installs the dependency and records the run.
// Recording problems are reported as warnings and never change the outcome.
func SetupDependency(ctx context.Context, cfg *contract.Config, deps Deps) (schema.Resolution, error) {
	started := time.Now()

	res, err := ResolveDependency(ctx, cfg, deps)
	if err == nil {
		in := NewInstaller(cfg, deps.Git, deps.PM)
		if deps.Log != nil {
			in.Out = deps.Log
		}
		err = in.Install(ctx, cfg.RepoURL(), cfg.TargetPath, res)
	}

	recordRun(deps.History, newRunRecord(cfg, res, started, time.Now(), err))
	return res, err
}

func newRunRecord(cfg *contract.Config, res schema.Resolution, started, finished time.Time, runErr error) schema.RunRecord {
	record := schema.RunRecord{
		StartedAt:  started,
		FinishedAt: finished,
		Repo:       cfg.Repo,
		TargetPath: cfg.TargetPath,
		Ref:        res.Ref,
		RefSource:  res.Source,
		Status:     schema.SuccessStatus,
	}
	if runErr != nil {
		record.Status = schema.FailedStatus
		record.ErrorMessage = runErr.Error()
	}
	return record
}

func recordRun(store contract.HistoryStore, record schema.RunRecord) {
	if store == nil {
		return
	}
	if _, err := store.RecordRun(record); err != nil {
		contract.LogWarn("could not record run history", err)
	}
}
