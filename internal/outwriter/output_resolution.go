package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
)

// displayRef renders an absent ref the way users talk about it.
func displayRef(ref string) string {
	if ref == "" {
		return "(default branch)"
	}
	return ref
}

func writeResolution(w io.Writer, cfg *contract.Config, res schema.Resolution) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, struct {
			Repo string `json:"repo"`
			schema.Resolution
		}{cfg.Repo, res})
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"repo", "ref", "source"}, func(cw *csv.Writer) error {
			return cw.Write([]string{cfg.Repo, res.Ref, string(res.Source)})
		})
	default:
		_, err := fmt.Fprintf(w, "%s %s [%s]\n", cfg.Repo, displayRef(res.Ref), contract.GetColorSource(res.Source))
		return err
	}
}

func writeInstallSummary(w io.Writer, cfg *contract.Config, res schema.Resolution, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, struct {
			Repo       string  `json:"repo"`
			TargetPath string  `json:"target_path"`
			Ref        string  `json:"ref"`
			Source     string  `json:"source"`
			Synced     bool    `json:"synced"`
			Seconds    float64 `json:"duration_seconds"`
		}{cfg.Repo, cfg.TargetPath, res.Ref, string(res.Source), !cfg.NoSync, duration.Seconds()})
	case schema.CSVOut:
		header := []string{"repo", "target_path", "ref", "source", "synced", "duration_seconds"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return cw.Write([]string{
				cfg.Repo,
				cfg.TargetPath,
				res.Ref,
				string(res.Source),
				fmt.Sprintf("%t", !cfg.NoSync),
				fmt.Sprintf("%.3f", duration.Seconds()),
			})
		})
	default:
		_, err := fmt.Fprintf(w, "Installed %s@%s into %s in %v\n",
			cfg.Repo, displayRef(res.Ref), cfg.TargetPath, duration.Round(time.Millisecond))
		return err
	}
}
