// Package parquet exports setupdeps run history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/kaihendry/setupdeps/schema"
	"github.com/parquet-go/parquet-go"
)

// Run is one setup run. It maps to the setupdeps_runs table.
type Run struct {
	RunID      int64     `parquet:"run_id,snappy"`
	StartedAt  time.Time `parquet:"started_at,snappy"`
	FinishedAt time.Time `parquet:"finished_at,snappy"`
	DurationMs int64     `parquet:"duration_ms,snappy"`
	Repo       string    `parquet:"repo,snappy,dict"`
	TargetPath string    `parquet:"target_path,snappy,dict"`

	// Ref is null when the remote default branch was used.
	Ref       *string `parquet:"ref,optional,snappy"`
	RefSource string  `parquet:"ref_source,snappy,dict"`
	Status    string  `parquet:"status,snappy,dict"`

	ErrorMessage *string `parquet:"error_message,optional,snappy"`
}

// ConvertRunRecords maps history rows onto the Parquet layout.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, r := range records {
		result[i] = Run{
			RunID:        r.RunID,
			StartedAt:    r.StartedAt.UTC(),
			FinishedAt:   r.FinishedAt.UTC(),
			DurationMs:   r.Duration().Milliseconds(),
			Repo:         r.Repo,
			TargetPath:   r.TargetPath,
			Ref:          optional(r.Ref),
			RefSource:    string(r.RefSource),
			Status:       string(r.Status),
			ErrorMessage: optional(r.ErrorMessage),
		}
	}
	return result
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WriteRunsParquet writes runs to a Parquet file at outputPath.
func WriteRunsParquet(data []Run, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return file.Close()
}
