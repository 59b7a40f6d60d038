package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func sampleRun() Run {
	return Run{
		Strategy:    "basic-h17",
		Decks:       6,
		Rounds:      1000,
		Sessions:    3,
		Penetration: 0.35,
		Bankroll:    10000,
		Seed:        42,
		Duration:    1500 * time.Millisecond,
		Mean:        -12.5,
	}
}

func TestSQLiteRecordAndLoad(t *testing.T) {
	ctx := context.Background()
	r := openTestRecorder(t)

	deltas := []float64{-20, 7.5, -25}
	run, err := r.RecordRun(ctx, sampleRun(), deltas)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, uuid.Version(7), run.ID.Version())
	assert.False(t, run.CreatedAt.IsZero())

	loaded, err := r.Run(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, loaded.ID)
	assert.Equal(t, run.CreatedAt.UnixNano(), loaded.CreatedAt.UnixNano())
	assert.Equal(t, "basic-h17", loaded.Strategy)
	assert.Equal(t, 6, loaded.Decks)
	assert.Equal(t, 1000, loaded.Rounds)
	assert.Equal(t, 3, loaded.Sessions)
	assert.Equal(t, 0.35, loaded.Penetration)
	assert.Equal(t, 10000.0, loaded.Bankroll)
	assert.Equal(t, int64(42), loaded.Seed)
	assert.Equal(t, 1500*time.Millisecond, loaded.Duration)
	assert.Equal(t, -12.5, loaded.Mean)

	got, err := r.Deltas(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, deltas, got)
}

func TestSQLiteKeepsProvidedID(t *testing.T) {
	ctx := context.Background()
	r := openTestRecorder(t)

	in := sampleRun()
	in.ID = uuid.MustParse("0190c0de-0000-7000-8000-000000000001")
	in.CreatedAt = time.Unix(1700000000, 0)

	run, err := r.RecordRun(ctx, in, nil)
	require.NoError(t, err)
	assert.Equal(t, in.ID, run.ID)
	assert.Equal(t, in.CreatedAt, run.CreatedAt)

	deltas, err := r.Deltas(ctx, in.ID)
	require.NoError(t, err)
	assert.Empty(t, deltas)
}

func TestSQLiteRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := openTestRecorder(t)

	base := time.Unix(1700000000, 0)
	var ids []uuid.UUID
	for i := range 3 {
		in := sampleRun()
		in.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		run, err := r.RecordRun(ctx, in, []float64{float64(i)})
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	runs, err := r.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Equal(t, ids[0], runs[2].ID)

	runs, err = r.Runs(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLiteUnknownRun(t *testing.T) {
	ctx := context.Background()
	r := openTestRecorder(t)

	_, err := r.Run(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Deltas(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteDuplicateIDRollsBack(t *testing.T) {
	ctx := context.Background()
	r := openTestRecorder(t)

	run, err := r.RecordRun(ctx, sampleRun(), []float64{1, 2})
	require.NoError(t, err)

	_, err = r.RecordRun(ctx, run, []float64{3, 4, 5})
	assert.Error(t, err)

	deltas, err := r.Deltas(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, deltas)
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	r, err := NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	run, err := r.RecordRun(ctx, sampleRun(), []float64{4})
	require.NoError(t, err)
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	defer r.Close()

	runs, err := r.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}

func TestNoopRecorder(t *testing.T) {
	ctx := context.Background()
	r := NewNoopRecorder()

	run, err := r.RecordRun(ctx, sampleRun(), []float64{1})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, run.ID)

	runs, err := r.Runs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = r.Deltas(ctx, run.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, r.Close())
}
