package simulator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	mu       sync.Mutex
	starts   []int
	sizes    []int
	complete []int
	onDone   func(batchNum int)
}

func (r *recordingReporter) OnBatchStart(batchNum int, totalBatches int, sessionsInBatch int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, batchNum)
	r.sizes = append(r.sizes, sessionsInBatch)
}

func (r *recordingReporter) OnBatchComplete(batchNum int, sessionsCompleted int) {
	r.mu.Lock()
	r.complete = append(r.complete, sessionsCompleted)
	r.mu.Unlock()
	if r.onDone != nil {
		r.onDone(batchNum)
	}
}

var _ ProgressReporter = (*recordingReporter)(nil)

func testBatchConfig() BatchConfig {
	return BatchConfig{
		Decks:       6,
		Rounds:      60,
		Sessions:    25,
		Penetration: 0.35,
		Workers:     4,
		ChunkSize:   10,
		Seed:        2024,
		Logger:      quietLogger(),
	}
}

func TestBatchRun(t *testing.T) {
	p := newPlayer(t, 1000, nil, nil)
	reporter := &recordingReporter{}
	cfg := testBatchConfig()
	cfg.Progress = reporter

	b, err := NewBatch(cfg, p)
	require.NoError(t, err)
	result, err := b.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Sessions, 25)
	for i, s := range result.Sessions {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, 1000.0, s.Start)
		assert.Equal(t, 60, s.Tally.Rounds)
		assert.Equal(t, s.Final-1000, result.Deltas()[i])
	}
	assert.Equal(t, 25*60, result.Tally().Rounds)
	assert.Equal(t, 1000.0, p.Bankroll(), "template player is never played")

	assert.Equal(t, []int{1, 2, 3}, reporter.starts)
	assert.Equal(t, []int{10, 10, 5}, reporter.sizes)
	assert.Equal(t, []int{10, 20, 25}, reporter.complete)
}

func TestBatchDeterministicAcrossWorkers(t *testing.T) {
	run := func(workers, chunk int) []float64 {
		cfg := testBatchConfig()
		cfg.Workers = workers
		cfg.ChunkSize = chunk
		b, err := NewBatch(cfg, newPlayer(t, 1000, nil, nil))
		require.NoError(t, err)
		result, err := b.Run(context.Background())
		require.NoError(t, err)
		return result.Finals()
	}

	serial := run(1, 0)
	assert.Equal(t, serial, run(8, 3))
	assert.Equal(t, serial, run(3, 25))
}

func TestBatchSessionsDiffer(t *testing.T) {
	b, err := NewBatch(testBatchConfig(), newPlayer(t, 1000, nil, nil))
	require.NoError(t, err)
	result, err := b.Run(context.Background())
	require.NoError(t, err)

	distinct := make(map[float64]bool)
	for _, f := range result.Finals() {
		distinct[f] = true
	}
	assert.Greater(t, len(distinct), 1)
}

func TestBatchStopsBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testBatchConfig()
	cfg.Progress = &recordingReporter{onDone: func(batchNum int) {
		if batchNum == 1 {
			cancel()
		}
	}}

	b, err := NewBatch(cfg, newPlayer(t, 1000, nil, nil))
	require.NoError(t, err)
	result, err := b.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Len(t, result.Sessions, 10)
}

func TestBatchCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, err := NewBatch(testBatchConfig(), newPlayer(t, 1000, nil, nil))
	require.NoError(t, err)
	result, err := b.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Sessions)
}

func TestBatchDuration(t *testing.T) {
	clock := quartz.NewMock(t)
	cfg := testBatchConfig()
	cfg.Clock = clock
	cfg.Progress = &recordingReporter{onDone: func(int) {
		clock.Advance(time.Second)
	}}

	b, err := NewBatch(cfg, newPlayer(t, 1000, nil, nil))
	require.NoError(t, err)
	result, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, result.Duration)
}

func TestBatchPropagatesSessionError(t *testing.T) {
	p := newPlayer(t, 1000, []float64{-1, 1}, []float64{0})
	cfg := testBatchConfig()
	cfg.Rounds = 200

	b, err := NewBatch(cfg, p)
	require.NoError(t, err)
	_, err = b.Run(context.Background())
	assert.Error(t, err)
}

func TestBatchConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*BatchConfig)
	}{
		{"no decks", func(c *BatchConfig) { c.Decks = 0 }},
		{"negative rounds", func(c *BatchConfig) { c.Rounds = -1 }},
		{"no sessions", func(c *BatchConfig) { c.Sessions = 0 }},
		{"penetration too high", func(c *BatchConfig) { c.Penetration = 2 }},
		{"negative workers", func(c *BatchConfig) { c.Workers = -1 }},
		{"negative chunk", func(c *BatchConfig) { c.ChunkSize = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testBatchConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
			_, err := NewBatch(cfg, newPlayer(t, 1000, nil, nil))
			assert.Error(t, err)
		})
	}

	assert.NoError(t, testBatchConfig().Validate())
}

func TestRunBatch(t *testing.T) {
	finals, err := RunBatch(context.Background(), newPlayer(t, 500, nil, nil), 6, 40, 12, 0.35, 3)
	require.NoError(t, err)
	assert.Len(t, finals, 12)
}
