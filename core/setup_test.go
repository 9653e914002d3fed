package core

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Repo:            testRepo,
		TargetPath:      "pyunderstand",
		VersionKey:      "version",
		DefaultBranches: contract.DefaultBranches,
		HistoryBackend:  schema.SQLiteBackend,
	}
}

func TestSetupDependency_RecordsSuccess(t *testing.T) {
	t.Chdir(t.TempDir())
	ctx := context.Background()

	git := new(contract.MockGitClient)
	git.On("CurrentBranch", ctx).Return("main", nil)
	git.On("Clone", ctx, testRepoURL, "pyunderstand", "v1.0.0").Return(nil)
	pm := new(contract.MockPackageManager)
	pm.On("AddEditable", ctx, "./pyunderstand").Return(nil)
	pm.On("Sync", ctx).Return(nil)
	reader := new(contract.MockConfigReader)
	reader.On("Lookup", "version").Return("v1.0.0", true, nil)
	history := new(contract.MockHistoryStore)
	history.On("RecordRun", mock.MatchedBy(func(r schema.RunRecord) bool {
		return r.Status == schema.SuccessStatus && r.Ref == "v1.0.0" && r.RefSource == schema.ConfigSource &&
			r.Repo == testRepo && r.TargetPath == "pyunderstand" && r.ErrorMessage == "" &&
			!r.FinishedAt.Before(r.StartedAt)
	})).Return(int64(1), nil).Once()

	deps := Deps{Git: git, PM: pm, Config: reader, History: history, Log: &bytes.Buffer{}}
	res, err := SetupDependency(ctx, testConfig(), deps)
	require.NoError(t, err)
	assert.Equal(t, schema.Resolution{Ref: "v1.0.0", Source: schema.ConfigSource}, res)
	history.AssertExpectations(t)
}

func TestSetupDependency_RecordsFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	ctx := context.Background()
	cfg := testConfig()
	cfg.RefOverride = "feature-x"

	git := new(contract.MockGitClient)
	git.On("Clone", ctx, testRepoURL, "pyunderstand", "feature-x").
		Return(&contract.ProcessFailure{Args: []string{"git", "clone"}, ExitCode: 128, Stderr: "not found"})
	history := new(contract.MockHistoryStore)
	history.On("RecordRun", mock.MatchedBy(func(r schema.RunRecord) bool {
		return r.Status == schema.FailedStatus && r.Ref == "feature-x" && r.RefSource == schema.EnvSource &&
			r.ErrorMessage != ""
	})).Return(int64(0), errors.New("db is gone")).Once()

	deps := Deps{Git: git, PM: new(contract.MockPackageManager), Config: new(contract.MockConfigReader), History: history, Log: &bytes.Buffer{}}
	_, err := SetupDependency(ctx, cfg, deps)
	assert.ErrorContains(t, err, "not found", "a history error must not mask the install error")
	history.AssertExpectations(t)
}

func TestSetupDependency_ResolveErrorSkipsInstall(t *testing.T) {
	ctx := context.Background()

	git := new(contract.MockGitClient)
	git.On("CurrentBranch", ctx).Return("main", nil)
	reader := new(contract.MockConfigReader)
	reader.On("Lookup", "version").Return("", false, errors.New("failed to parse config.yaml"))

	deps := Deps{Git: git, PM: new(contract.MockPackageManager), Config: reader, Log: &bytes.Buffer{}}
	_, err := SetupDependency(ctx, testConfig(), deps)
	require.Error(t, err)
	git.AssertNotCalled(t, "Clone", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveDependency_NoSideEffects(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.RefOverride = "feature-x"

	git := new(contract.MockGitClient)
	var log bytes.Buffer
	res, err := ResolveDependency(ctx, cfg, Deps{Git: git, Config: new(contract.MockConfigReader), Log: &log})
	require.NoError(t, err)
	assert.Equal(t, "feature-x", res.Ref)
	assert.Contains(t, log.String(), "Using env override: feature-x")
	git.AssertNotCalled(t, "Clone", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNewLocalDeps(t *testing.T) {
	cfg := testConfig()
	cfg.Parser = schema.LineParser
	cfg.ConfigFile = "config.yaml"
	deps, err := NewLocalDeps(cfg, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, deps.Git)
	assert.NotNil(t, deps.PM)
	assert.NotNil(t, deps.Config)
	assert.Nil(t, deps.History)

	cfg.Parser = "toml"
	_, err = NewLocalDeps(cfg, nil, nil)
	assert.Error(t, err)
}
