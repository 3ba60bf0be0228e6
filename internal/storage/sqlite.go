// Package storage provides the SQLite run journal: one row per finished
// session. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is one journal row.
type Run struct {
	ID          int64
	SessionID   string
	Layout      string
	Seed        int64
	Outcome     string // "game_over", "stopped", "fault"
	Frames      int64
	Truncated   int64
	BricksTotal int
	BricksLeft  int
	Fault       string // Empty unless Outcome is "fault"
	Started     time.Time
	Duration    time.Duration
	CreatedAt   time.Time
}

// Broken returns how many bricks the run removed.
func (r Run) Broken() int { return r.BricksTotal - r.BricksLeft }

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			layout TEXT NOT NULL,
			seed INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			truncated INTEGER NOT NULL DEFAULT 0,
			bricks_total INTEGER NOT NULL DEFAULT 0,
			bricks_left INTEGER NOT NULL DEFAULT 0,
			fault TEXT,
			started_ms INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_layout ON runs(layout);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_ms DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished session. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	var fault sql.NullString
	if r.Fault != "" {
		fault = sql.NullString{String: r.Fault, Valid: true}
	}

	res, err := s.db.Exec(
		`INSERT INTO runs
		 (session_id, layout, seed, outcome, frames, truncated, bricks_total, bricks_left, fault, started_ms, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.Layout,
		r.Seed,
		r.Outcome,
		r.Frames,
		r.Truncated,
		r.BricksTotal,
		r.BricksLeft,
		fault,
		r.Started.UnixMilli(),
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, session_id, layout, seed, outcome, frames, truncated,
		        bricks_total, bricks_left, fault, started_ms, duration_ms, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner) (Run, error) {
	var (
		r          Run
		fault      sql.NullString
		startedMS  int64
		durationMS int64
		createdAt  any
	)
	err := sc.Scan(
		&r.ID,
		&r.SessionID,
		&r.Layout,
		&r.Seed,
		&r.Outcome,
		&r.Frames,
		&r.Truncated,
		&r.BricksTotal,
		&r.BricksLeft,
		&fault,
		&startedMS,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}

	r.Fault = fault.String
	r.Started = time.UnixMilli(startedMS)
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RunBySession retrieves a run by its session ID. Returns nil if absent.
func (s *Store) RunBySession(sessionID string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE session_id = ?`,
		sessionID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recently started runs, optionally filtered by
// layout.
func (s *Store) RecentRuns(layout string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR layout = ?
		 ORDER BY started_ms DESC, id DESC
		 LIMIT ?`,
		layout, layout, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// LayoutStats contains aggregated statistics for one layout.
type LayoutStats struct {
	Layout     string
	Runs       int
	Faults     int
	BestBroken int // Most bricks removed in a single run
	AvgFrames  float64
	LastPlayed time.Time
}

// Stats retrieves statistics for every layout that has been played.
func (s *Store) Stats() (map[string]*LayoutStats, error) {
	rows, err := s.db.Query(
		`SELECT layout,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'fault' THEN 1 ELSE 0 END),
		        MAX(bricks_total - bricks_left),
		        AVG(frames),
		        MAX(started_ms)
		 FROM runs
		 GROUP BY layout`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get layout stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LayoutStats)
	for rows.Next() {
		var (
			ls   LayoutStats
			last int64
		)
		if err := rows.Scan(&ls.Layout, &ls.Runs, &ls.Faults, &ls.BestBroken, &ls.AvgFrames, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = time.UnixMilli(last)
		stats[ls.Layout] = &ls
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes the whole journal.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RecordSummary implements bricks.Recorder. Sessions still running are not
// journaled.
func (s *Store) RecordSummary(sum bricks.Summary) error {
	if sum.Outcome == bricks.OutcomeRunning {
		return fmt.Errorf("storage: session %s is still running", sum.ID)
	}
	_, err := s.SaveRun(Run{
		SessionID:   sum.ID,
		Layout:      sum.Layout,
		Seed:        sum.Seed,
		Outcome:     string(sum.Outcome),
		Frames:      int64(sum.Frames),    //#nosec G115 -- frame counts stay far below 2^63
		Truncated:   int64(sum.Truncated), //#nosec G115 -- bounded by Frames
		BricksTotal: sum.BricksTotal,
		BricksLeft:  sum.BricksLeft,
		Fault:       sum.Fault,
		Started:     sum.Started,
		Duration:    sum.Elapsed,
	})
	return err
}

// Ensure Store implements Recorder
var _ bricks.Recorder = (*Store)(nil)
