// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
)

// WriteResolution prints the resolved ref using the configured output format.
func WriteResolution(cfg *contract.Config, res schema.Resolution) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeResolution(w, cfg, res)
	}, "Wrote resolution")
}

// WriteInstallSummary prints a one-shot summary after a successful install.
func WriteInstallSummary(cfg *contract.Config, res schema.Resolution, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeInstallSummary(w, cfg, res, duration)
	}, "Wrote summary")
}

// WriteRuns prints run history records using the configured output format.
func WriteRuns(cfg *contract.Config, runs []schema.RunRecord) error {
	var err error
	switch cfg.Output {
	case schema.JSONOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, runsCSVHeader, func(cw *csv.Writer) error {
				return writeCSVRuns(cw, runs)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(w, cfg, runs)
		}, "Wrote table")
	}
	if err != nil {
		return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
	}
	return nil
}

// WriteHistoryStatus prints history store status information.
func WriteHistoryStatus(cfg *contract.Config, status schema.HistoryStatus) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if cfg.Output == schema.JSONOut {
			return writeJSON(w, status)
		}
		return writeHistoryStatus(w, status)
	}, "Wrote status")
}
