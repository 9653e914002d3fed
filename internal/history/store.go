package history

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
)

// Store implements contract.HistoryStore on top of database/sql.
type Store struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &Store{} // Compile-time check

// NewHistoryStore opens the store for backend and applies pending migrations.
// The none backend yields a store that records nothing.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (*Store, error) {
	if backend == schema.NoneBackend {
		return &Store{backend: backend}, nil
	}

	// Migrations run on their own connection; the mysql and pgx drivers pin
	// a *sql.Conn until the migrator is closed.
	if err := MigrateHistory(backend, connStr, -1, io.Discard); err != nil {
		return nil, fmt.Errorf("failed to migrate history tables: %w", err)
	}

	db, _, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, backend: backend}, nil
}

// placeholder returns the n-th bind parameter for the backend.
func (s *Store) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// RecordRun inserts a run and returns its ID.
func (s *Store) RecordRun(r schema.RunRecord) (int64, error) {
	if s.db == nil {
		return 0, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (started_at, finished_at, duration_ms, repo, target_path, git_ref, ref_source, status, error_message)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)`, runsTable,
		s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4), s.placeholder(5),
		s.placeholder(6), s.placeholder(7), s.placeholder(8), s.placeholder(9))
	args := []any{
		formatTime(r.StartedAt, s.backend), formatTime(r.FinishedAt, s.backend), r.Duration().Milliseconds(),
		r.Repo, r.TargetPath, r.Ref, string(r.RefSource), string(r.Status), r.ErrorMessage,
	}

	var runID int64
	if s.backend == schema.PostgreSQLBackend {
		if err := s.db.QueryRow(query+" RETURNING run_id", args...).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		return runID, nil
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns every run.
func (s *Store) ListRuns(limit int) ([]schema.RunRecord, error) {
	if s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, started_at, finished_at, repo, target_path, git_ref, ref_source, status, error_message
		FROM %s ORDER BY run_id DESC`, runsTable)
	var args []any
	if limit > 0 {
		query += " LIMIT " + s.placeholder(1)
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var r schema.RunRecord
		var started, finished timeScanner
		started.backend, finished.backend = s.backend, s.backend
		var source, status string
		if err := rows.Scan(&r.RunID, &started, &finished, &r.Repo, &r.TargetPath, &r.Ref, &source, &status, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt, r.FinishedAt = started.t, finished.t
		r.RefSource, r.Status = schema.RefSource(source), schema.RunStatus(status)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (s *Store) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}
	if s.db == nil {
		return status, nil
	}

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}
	if status.TotalRuns == 0 {
		return status, nil
	}

	row = s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE status = %s", runsTable, s.placeholder(1)), string(schema.FailedStatus))
	if err := row.Scan(&status.FailedRuns); err != nil {
		return status, fmt.Errorf("failed to get failed runs: %w", err)
	}

	last := timeScanner{backend: s.backend}
	row = s.db.QueryRow(fmt.Sprintf("SELECT run_id, started_at FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
	if err := row.Scan(&status.LastRunID, &last); err != nil {
		return status, fmt.Errorf("failed to get last run info: %w", err)
	}
	status.LastRunTime = last.t

	oldest := timeScanner{backend: s.backend}
	row = s.db.QueryRow(fmt.Sprintf("SELECT started_at FROM %s ORDER BY run_id ASC LIMIT 1", runsTable))
	if err := row.Scan(&oldest); err != nil {
		return status, fmt.Errorf("failed to get oldest run time: %w", err)
	}
	status.OldestRunTime = oldest.t

	return status, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t.UTC()
	}
}

// timeScanner reads a timestamp column stored as RFC3339 text on SQLite and
// as a native datetime elsewhere.
type timeScanner struct {
	backend schema.DatabaseBackend
	t       time.Time
}

// Scan implements sql.Scanner.
func (ts *timeScanner) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		ts.t = v
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		ts.t = time.Time{}
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
	return nil
}

func (ts *timeScanner) parse(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("failed to parse %s timestamp %q: %w", ts.backend, s, err)
	}
	ts.t = t
	return nil
}
