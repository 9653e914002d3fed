// Package schema holds the plain data types shared across setupdeps.
package schema

import "time"

// Resolution is the outcome of ref resolution.
// An empty Ref means the remote's default branch should be used.
type Resolution struct {
	Ref    string    `json:"ref"`
	Source RefSource `json:"source"`
}

// IsDefault reports whether the resolution leaves the ref choice to the remote.
func (r Resolution) IsDefault() bool {
	return r.Ref == ""
}

// RunRecord represents a row from the setupdeps_runs table.
type RunRecord struct {
	RunID        int64     `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Repo         string    `json:"repo"`
	TargetPath   string    `json:"target_path"`
	Ref          string    `json:"ref"`
	RefSource    RefSource `json:"ref_source"`
	Status       RunStatus `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Duration returns how long the run took.
func (r RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int       `json:"total_runs"`
	FailedRuns    int       `json:"failed_runs"`
	LastRunID     int64     `json:"last_run_id"`
	LastRunTime   time.Time `json:"last_run_time"`
	OldestRunTime time.Time `json:"oldest_run_time"`
}
