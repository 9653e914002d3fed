package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/internal/parquet"
)

// ExportRuns writes every recorded run to outputFile + ".runs.parquet" and
// returns the path it wrote.
func ExportRuns(store contract.HistoryStore, outputFile string, out io.Writer) (string, error) {
	if outputFile == "" {
		return "", errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return "", fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return "", errors.New("no run history found to export")
	}
	_, _ = fmt.Fprintf(out, "Exporting %d runs from %s backend...\n", status.TotalRuns, status.Backend)

	records, err := store.ListRuns(0)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve runs: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	runs := parquet.ConvertRunRecords(records)
	if err := parquet.WriteRunsParquet(runs, runsFile); err != nil {
		return "", fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d runs to: %s\n", len(runs), runsFile)
	return runsFile, nil
}
