//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	res := runSetupdeps(t, t.TempDir(), nil, "version")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout+res.stderr, "setupdeps CLI")
}

func TestResolve_EnvOverride(t *testing.T) {
	env, logPath := fakeToolchain(t)
	env = append(env, "PYUNDERSTAND_REF=feature-x")

	res := runSetupdeps(t, t.TempDir(), env, "resolve", "--output", "json")
	require.NoError(t, res.err, res.stderr)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "feature-x", got["ref"])
	assert.Equal(t, "env", got["source"])
	assert.Contains(t, res.stderr, "Using env override: feature-x")

	// The override short-circuits every external command.
	_, err := os.Stat(logPath)
	assert.True(t, os.IsNotExist(err))
}

func TestResolve_MatchingBranchAndConfig(t *testing.T) {
	env, _ := fakeToolchain(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("version: v1.0.0\n"), 0o644))

	res := runSetupdeps(t, dir, append(env, "FAKE_BRANCH=howdy", "FAKE_REMOTE_HAS=howdy"), "resolve", "--output", "csv")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "repo,ref,source\nkaihendry/pyunderstand,howdy,branch\n", res.stdout)

	res = runSetupdeps(t, dir, append(env, "FAKE_BRANCH=howdy"), "resolve", "--output", "csv")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "repo,ref,source\nkaihendry/pyunderstand,v1.0.0,config\n", res.stdout)
}

func TestInstall_RecordsHistory(t *testing.T) {
	env, logPath := fakeToolchain(t)
	dir := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	env = append(env,
		"SETUPDEPS_HISTORY_BACKEND=sqlite",
		"SETUPDEPS_HISTORY_DB_CONNECT="+dbPath,
		"SETUPDEPS_COLOR=no",
	)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pyunderstand", "stale"), 0o755))

	res := runSetupdeps(t, dir, env)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Removing existing pyunderstand")
	assert.Contains(t, res.stdout, "+ git clone --depth 1 https://github.com/kaihendry/pyunderstand.git pyunderstand")
	assert.Contains(t, res.stdout, "+ uv add --editable ./pyunderstand")
	assert.Contains(t, res.stdout, "+ uv sync")
	assert.NoDirExists(t, filepath.Join(dir, "pyunderstand", "stale"))
	assert.FileExists(t, filepath.Join(dir, "pyunderstand", "README"))

	log, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(log), "uv add --editable ./pyunderstand\nuv sync\n")

	res = runSetupdeps(t, dir, env, "history", "list", "--output", "json")
	require.NoError(t, res.err, res.stderr)
	var runs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "success", runs[0]["status"])
	assert.Equal(t, "default", runs[0]["ref_source"])

	res = runSetupdeps(t, dir, env, "history", "status")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Total Runs: 1")

	exportBase := filepath.Join(t.TempDir(), "runs")
	res = runSetupdeps(t, dir, env, "history", "export", "--output-file", exportBase)
	require.NoError(t, res.err, res.stderr)
	assert.FileExists(t, exportBase+".runs.parquet")
}

func TestInstall_CloneFailureExitsNonZero(t *testing.T) {
	env, _ := fakeToolchain(t)
	binDir := t.TempDir()
	failingGit := "#!/bin/sh\necho 'fatal: Remote branch nope not found in upstream origin' >&2\nexit 128\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "git"), []byte(failingGit), 0o755))
	env = append(env, "PATH="+binDir+string(os.PathListSeparator)+os.Getenv("PATH"), "PYUNDERSTAND_REF=nope")

	res := runSetupdeps(t, t.TempDir(), env, "install")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "exited with status 128")
	assert.Contains(t, res.stderr, "Remote branch nope not found")
}

func TestInvalidSettings(t *testing.T) {
	res := runSetupdeps(t, t.TempDir(), nil, "resolve", "--path", "../escape")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "subdirectory of the working directory")
}

func TestSettingsFile(t *testing.T) {
	env, _ := fakeToolchain(t)

	t.Run("settings apply", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".setupdeps.yaml"), []byte("repo: acme/widgets\n"), 0o644))

		res := runSetupdeps(t, dir, append(env, "PYUNDERSTAND_REF=v9"), "resolve", "--output", "csv")
		require.NoError(t, res.err, res.stderr)
		assert.Equal(t, "repo,ref,source\nacme/widgets,v9,env\n", res.stdout)
	})

	t.Run("ref is rejected", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".setupdeps.yaml"), []byte("ref: sneaky\n"), 0o644))

		res := runSetupdeps(t, dir, env, "resolve")
		require.Error(t, res.err)
		assert.Contains(t, res.stderr, "ref cannot be set in")
		assert.Contains(t, res.stderr, "PYUNDERSTAND_REF")
	})
}
