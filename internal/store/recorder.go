// Package store persists finished batch runs so they can be listed and
// re-reported without simulating again.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a run ID is unknown.
var ErrNotFound = errors.New("run not found")

// Run describes one recorded batch.
type Run struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	Strategy    string
	Decks       int
	Rounds      int
	Sessions    int
	Penetration float64
	Bankroll    float64
	Seed        int64
	Duration    time.Duration
	// Mean is the mean bankroll change per session.
	Mean float64
}

// Recorder persists runs and their per-session bankroll deltas.
type Recorder interface {
	// RecordRun stores a run and returns it with its ID and creation time
	// filled in.
	RecordRun(ctx context.Context, run Run, deltas []float64) (Run, error)
	// Runs lists runs newest first. A limit of zero or less lists all.
	Runs(ctx context.Context, limit int) ([]Run, error)
	Run(ctx context.Context, id uuid.UUID) (Run, error)
	Deltas(ctx context.Context, id uuid.UUID) ([]float64, error)
	Close() error
}

// prepare assigns an ID and creation time to a run that lacks them.
func prepare(run Run, now time.Time) (Run, error) {
	if run.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return run, err
		}
		run.ID = id
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	return run, nil
}
