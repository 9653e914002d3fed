package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var runsCSVHeader = []string{
	"run_id",
	"started_at",
	"finished_at",
	"duration_ms",
	"repo",
	"target_path",
	"ref",
	"ref_source",
	"status",
	"error_message",
}

// writeRunsTable generates and writes the human-readable history table.
func writeRunsTable(w io.Writer, cfg *contract.Config, runs []schema.RunRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Started", "Duration", "Ref", "Source", "Status", "Error"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	errWidth := getMaxTableErrorWidth(cfg)
	var data [][]string
	failed := 0
	for _, r := range runs {
		if r.Status == schema.FailedStatus {
			failed++
		}
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartedAt.Local().Format(contract.DateTimeFormat),
			r.Duration().Round(10 * time.Millisecond).String(),
			displayRef(r.Ref),
			contract.GetColorSource(r.RefSource),
			contract.GetColorStatus(r.Status),
			contract.TruncateText(r.ErrorMessage, errWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d runs (%d failed). History backend: %s\n", len(runs), failed, cfg.HistoryBackend)
	return err
}

// writeCSVRuns writes one row per run record.
func writeCSVRuns(w *csv.Writer, runs []schema.RunRecord) error {
	for _, r := range runs {
		rec := []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartedAt.UTC().Format(contract.DateTimeFormat),
			r.FinishedAt.UTC().Format(contract.DateTimeFormat),
			strconv.FormatInt(r.Duration().Milliseconds(), 10),
			r.Repo,
			r.TargetPath,
			r.Ref,
			string(r.RefSource),
			string(r.Status),
			r.ErrorMessage,
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}

// writeHistoryStatus prints history status information.
func writeHistoryStatus(w io.Writer, status schema.HistoryStatus) error {
	lines := []string{
		fmt.Sprintf("History Backend: %s", status.Backend),
		fmt.Sprintf("Connected: %t", status.Connected),
	}
	if status.Connected {
		lines = append(lines,
			fmt.Sprintf("Total Runs: %d", status.TotalRuns),
			fmt.Sprintf("Failed Runs: %d", status.FailedRuns))
		if status.TotalRuns > 0 {
			lines = append(lines,
				fmt.Sprintf("Last Run ID: %d", status.LastRunID),
				fmt.Sprintf("Last Run: %s", status.LastRunTime.Local().Format(contract.DateTimeFormat)),
				fmt.Sprintf("Oldest Run: %s", status.OldestRunTime.Local().Format(contract.DateTimeFormat)))
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
