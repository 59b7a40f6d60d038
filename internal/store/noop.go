package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ context.Context, run Run, _ []float64) (Run, error) {
	return prepare(run, time.Now())
}

func (n *NoopRecorder) Runs(_ context.Context, _ int) ([]Run, error) { return nil, nil }
func (n *NoopRecorder) Run(_ context.Context, _ uuid.UUID) (Run, error) {
	return Run{}, ErrNotFound
}
func (n *NoopRecorder) Deltas(_ context.Context, _ uuid.UUID) ([]float64, error) {
	return nil, ErrNotFound
}
func (n *NoopRecorder) Close() error { return nil }
