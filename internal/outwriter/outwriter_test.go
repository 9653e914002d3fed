package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func sampleRuns() []schema.RunRecord {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []schema.RunRecord{
		{
			RunID: 2, StartedAt: start.Add(time.Hour), FinishedAt: start.Add(time.Hour + 3*time.Second),
			Repo: "kaihendry/pyunderstand", TargetPath: "pyunderstand", Ref: "howdy",
			RefSource: schema.BranchSource, Status: schema.SuccessStatus,
		},
		{
			RunID: 1, StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond),
			Repo: "kaihendry/pyunderstand", TargetPath: "pyunderstand", Ref: "v9",
			RefSource: schema.ConfigSource, Status: schema.FailedStatus,
			ErrorMessage: `command "git clone" exited with status 128: fatal: Remote branch v9 not found`,
		},
	}
}

func TestWriteResolution(t *testing.T) {
	cfg := &contract.Config{Repo: "kaihendry/pyunderstand"}

	t.Run("text default branch", func(t *testing.T) {
		cfg.Output = schema.TextOut
		var buf bytes.Buffer
		require.NoError(t, writeResolution(&buf, cfg, schema.Resolution{Source: schema.DefaultSource}))
		assert.Equal(t, "kaihendry/pyunderstand (default branch) [default]\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		cfg.Output = schema.JSONOut
		var buf bytes.Buffer
		require.NoError(t, writeResolution(&buf, cfg, schema.Resolution{Ref: "howdy", Source: schema.BranchSource}))
		var got map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, map[string]string{"repo": "kaihendry/pyunderstand", "ref": "howdy", "source": "branch"}, got)
	})

	t.Run("csv", func(t *testing.T) {
		cfg.Output = schema.CSVOut
		var buf bytes.Buffer
		require.NoError(t, writeResolution(&buf, cfg, schema.Resolution{Ref: "v1.0.0", Source: schema.ConfigSource}))
		assert.Equal(t, "repo,ref,source\nkaihendry/pyunderstand,v1.0.0,config\n", buf.String())
	})
}

func TestWriteInstallSummary(t *testing.T) {
	cfg := &contract.Config{Repo: "kaihendry/pyunderstand", TargetPath: "pyunderstand", Output: schema.TextOut}
	res := schema.Resolution{Ref: "feature-x", Source: schema.EnvSource}

	var buf bytes.Buffer
	require.NoError(t, writeInstallSummary(&buf, cfg, res, 2*time.Second))
	assert.Equal(t, "Installed kaihendry/pyunderstand@feature-x into pyunderstand in 2s\n", buf.String())

	cfg.Output = schema.JSONOut
	cfg.NoSync = true
	buf.Reset()
	require.NoError(t, writeInstallSummary(&buf, cfg, res, 2*time.Second))
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, false, got["synced"])
	assert.Equal(t, "env", got["source"])
	assert.InDelta(t, 2.0, got["duration_seconds"], 0.001)
}

func TestWriteRunsTable(t *testing.T) {
	cfg := &contract.Config{Width: 200, HistoryBackend: schema.SQLiteBackend}
	var buf bytes.Buffer
	require.NoError(t, writeRunsTable(&buf, cfg, sampleRuns()))

	out := buf.String()
	assert.Contains(t, out, "howdy")
	assert.Contains(t, out, "branch")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "Remote")
	assert.Contains(t, out, "Showing 2 runs (1 failed). History backend: sqlite")
}

func TestWriteRunsTable_TruncatesErrors(t *testing.T) {
	cfg := &contract.Config{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, writeRunsTable(&buf, cfg, sampleRuns()))
	assert.NotContains(t, buf.String(), "Remote")
	assert.Contains(t, buf.String(), "...")
}

func TestWriteCSVRuns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVWithHeader(&buf, runsCSVHeader, func(cw *csv.Writer) error {
		return writeCSVRuns(cw, sampleRuns())
	}))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, runsCSVHeader, records[0])
	assert.Equal(t, []string{"2", "2026-03-01 11:00:00", "2026-03-01 11:00:03", "3000", "kaihendry/pyunderstand", "pyunderstand", "howdy", "branch", "success", ""}, records[1])
	assert.Equal(t, "1500", records[2][3])
	assert.Contains(t, records[2][9], "status 128")
}

func TestWriteRuns_JSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "runs.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: out}
	require.NoError(t, WriteRuns(cfg, sampleRuns()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var got []schema.RunRecord
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].RunID)
	assert.Equal(t, schema.FailedStatus, got[1].Status)
}

func TestWriteHistoryStatus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistoryStatus(&buf, schema.HistoryStatus{Backend: "none"}))
	assert.Equal(t, "History Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	last := time.Date(2026, 3, 1, 11, 0, 0, 0, time.Local)
	require.NoError(t, writeHistoryStatus(&buf, schema.HistoryStatus{
		Backend: "sqlite", Connected: true, TotalRuns: 2, FailedRuns: 1,
		LastRunID: 2, LastRunTime: last, OldestRunTime: last.Add(-time.Hour),
	}))
	assert.Contains(t, buf.String(), "Total Runs: 2\nFailed Runs: 1\nLast Run ID: 2\nLast Run: 2026-03-01 11:00:00\nOldest Run: 2026-03-01 10:00:00\n")
}

func TestGetMaxTableErrorWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 40, expected: 15},
		{width: 120, expected: 45},
		{width: 400, expected: 80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, getMaxTableErrorWidth(&contract.Config{Width: tt.width}))
	}
	// Falls back to a detected or default width.
	assert.GreaterOrEqual(t, getMaxTableErrorWidth(&contract.Config{}), 15)
}
