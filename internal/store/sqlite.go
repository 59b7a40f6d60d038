package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists runs to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *log.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations. A nil logger discards output.
func NewSQLiteRecorder(dbPath string, logger *log.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets history queries read while a run is being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Debug("SQLite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			created_at  INTEGER NOT NULL,
			strategy    TEXT,
			decks       INTEGER,
			rounds      INTEGER,
			sessions    INTEGER,
			penetration REAL,
			bankroll    REAL,
			seed        INTEGER,
			duration_ns INTEGER,
			mean        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

		`CREATE TABLE IF NOT EXISTS session_deltas (
			run_id TEXT NOT NULL REFERENCES runs(id),
			idx    INTEGER NOT NULL,
			delta  REAL NOT NULL,
			PRIMARY KEY (run_id, idx)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(ctx context.Context, run Run, deltas []float64) (Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, err := prepare(run, time.Now())
	if err != nil {
		return run, fmt.Errorf("run id: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return run, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, created_at, strategy, decks, rounds, sessions, penetration,
		 bankroll, seed, duration_ns, mean)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID.String(), run.CreatedAt.UnixNano(), run.Strategy,
		run.Decks, run.Rounds, run.Sessions, run.Penetration,
		run.Bankroll, run.Seed, int64(run.Duration), run.Mean,
	)
	if err != nil {
		return run, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO session_deltas (run_id, idx, delta) VALUES (?,?,?)`)
	if err != nil {
		return run, fmt.Errorf("prepare deltas: %w", err)
	}
	defer stmt.Close()

	for i, d := range deltas {
		if _, err := stmt.ExecContext(ctx, run.ID.String(), i, d); err != nil {
			return run, fmt.Errorf("insert delta %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return run, fmt.Errorf("commit: %w", err)
	}
	r.logger.Debug("Recorded run", "id", run.ID, "sessions", len(deltas))
	return run, nil
}

const runColumns = `id, created_at, strategy, decks, rounds, sessions,
	penetration, bankroll, seed, duration_ns, mean`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		run      Run
		id       string
		created  int64
		duration int64
	)
	err := s.Scan(&id, &created, &run.Strategy, &run.Decks, &run.Rounds,
		&run.Sessions, &run.Penetration, &run.Bankroll, &run.Seed,
		&duration, &run.Mean)
	if err != nil {
		return run, err
	}
	if run.ID, err = uuid.Parse(id); err != nil {
		return run, fmt.Errorf("run id %q: %w", id, err)
	}
	run.CreatedAt = time.Unix(0, created)
	run.Duration = time.Duration(duration)
	return run, nil
}

func (r *SQLiteRecorder) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Run(ctx context.Context, id uuid.UUID) (Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id.String())
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, err
}

func (r *SQLiteRecorder) Deltas(ctx context.Context, id uuid.UUID) ([]float64, error) {
	if _, err := r.Run(ctx, id); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT delta FROM session_deltas WHERE run_id = ? ORDER BY idx`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query deltas: %w", err)
	}
	defer rows.Close()

	deltas := []float64{}
	for rows.Next() {
		var d float64
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		deltas = append(deltas, d)
	}
	return deltas, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Debug("Closing SQLite recorder")
	return r.db.Close()
}

var (
	_ Recorder = (*SQLiteRecorder)(nil)
	_ Recorder = (*NoopRecorder)(nil)
)
