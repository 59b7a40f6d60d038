package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// ProgressReporter observes a batch as it works through its sub-batches.
type ProgressReporter interface {
	OnBatchStart(batchNum int, totalBatches int, sessionsInBatch int)
	OnBatchComplete(batchNum int, sessionsCompleted int)
}

// BatchConfig holds configuration for running many independent sessions.
type BatchConfig struct {
	Decks       int
	Rounds      int
	Sessions    int
	Penetration float64
	// Workers is the size of the worker pool. Zero uses one per CPU.
	Workers int
	// ChunkSize is the number of sessions per sub-batch. Zero runs every
	// session in a single sub-batch.
	ChunkSize int
	Seed      int64
	Logger    *log.Logger
	Progress  ProgressReporter
	Clock     quartz.Clock
}

// Validate checks the configuration for values a batch cannot run with.
func (c BatchConfig) Validate() error {
	if c.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", c.Decks)
	}
	if c.Rounds < 0 {
		return fmt.Errorf("rounds must be non-negative, got %d", c.Rounds)
	}
	if c.Sessions < 1 {
		return fmt.Errorf("sessions must be at least 1, got %d", c.Sessions)
	}
	if c.Penetration < 0 || c.Penetration > 1 {
		return fmt.Errorf("penetration must be within [0, 1], got %v", c.Penetration)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk size must be non-negative, got %d", c.ChunkSize)
	}
	return nil
}

// BatchResult collects every completed session, ordered by session index.
type BatchResult struct {
	Start    float64
	Sessions []SessionResult
	Duration time.Duration
}

// Finals returns each session's closing bankroll.
func (r *BatchResult) Finals() []float64 {
	out := make([]float64, len(r.Sessions))
	for i, s := range r.Sessions {
		out[i] = s.Final
	}
	return out
}

// Deltas returns each session's bankroll change.
func (r *BatchResult) Deltas() []float64 {
	out := make([]float64, len(r.Sessions))
	for i, s := range r.Sessions {
		out[i] = s.Delta()
	}
	return out
}

// Tally merges the tallies of every session.
func (r *BatchResult) Tally() Tally {
	var t Tally
	for _, s := range r.Sessions {
		t.Merge(s.Tally)
	}
	return t
}

// Batch fans sessions out across a fixed pool of workers. Every session
// gets its own shoe and a clone of the template player.
type Batch struct {
	config   BatchConfig
	template *game.Player
}

// NewBatch creates a batch runner.
func NewBatch(config BatchConfig, template *game.Player) (*Batch, error) {
	if template == nil {
		return nil, errors.New("batch requires a template player")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Workers == 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.ChunkSize == 0 {
		config.ChunkSize = config.Sessions
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Batch{config: config, template: template}, nil
}

// Run plays every session. The context is only consulted between
// sub-batches: once it is done no further sub-batch starts, and Run returns
// the sessions completed so far together with the context's error.
func (b *Batch) Run(ctx context.Context) (*BatchResult, error) {
	cfg := b.config
	started := cfg.Clock.Now()
	result := &BatchResult{
		Start:    b.template.Bankroll(),
		Sessions: make([]SessionResult, 0, cfg.Sessions),
	}

	totalBatches := (cfg.Sessions + cfg.ChunkSize - 1) / cfg.ChunkSize
	for batchNum := 1; batchNum <= totalBatches; batchNum++ {
		if err := ctx.Err(); err != nil {
			result.Duration = cfg.Clock.Since(started)
			cfg.Logger.Warn("Batch stopped early", "completed", len(result.Sessions), "sessions", cfg.Sessions)
			return result, err
		}

		from := (batchNum - 1) * cfg.ChunkSize
		to := min(from+cfg.ChunkSize, cfg.Sessions)
		if cfg.Progress != nil {
			cfg.Progress.OnBatchStart(batchNum, totalBatches, to-from)
		}

		chunk, err := b.runChunk(from, to)
		if err != nil {
			result.Duration = cfg.Clock.Since(started)
			return result, err
		}
		result.Sessions = append(result.Sessions, chunk...)

		cfg.Logger.Debug("Sub-batch complete", "batch", batchNum, "of", totalBatches, "sessions", len(result.Sessions))
		if cfg.Progress != nil {
			cfg.Progress.OnBatchComplete(batchNum, len(result.Sessions))
		}
	}

	result.Duration = cfg.Clock.Since(started)
	cfg.Logger.Info("Batch complete",
		"sessions", len(result.Sessions),
		"rounds", cfg.Rounds,
		"duration", result.Duration)
	return result, nil
}

// runChunk plays sessions [from, to) on the worker pool and returns them in
// index order.
func (b *Batch) runChunk(from, to int) ([]SessionResult, error) {
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(b.config.Workers)
	results := make(chan SessionResult, to-from)

	for i := from; i < to; i++ {
		g.Go(func() error {
			// A failed session cancels the sessions not yet started.
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := b.runSession(i)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			results <- res
			return nil
		})
	}

	err := g.Wait()
	close(results)
	if err != nil {
		return nil, err
	}

	out := make([]SessionResult, to-from)
	for res := range results {
		out[res.Index-from] = res
	}
	return out, nil
}

func (b *Batch) runSession(index int) (SessionResult, error) {
	s, err := NewSession(SessionConfig{
		Decks:       b.config.Decks,
		Rounds:      b.config.Rounds,
		Penetration: b.config.Penetration,
		Seed:        randutil.Derive(b.config.Seed, index),
		Logger:      b.config.Logger,
	}, b.template.Clone(), nil)
	if err != nil {
		return SessionResult{}, err
	}

	res, err := s.Run()
	res.Index = index
	return res, err
}

// RunBatch is a convenience function that runs sessions sessions of rounds
// rounds each and returns every session's final bankroll.
func RunBatch(ctx context.Context, p *game.Player, decks, rounds, sessions int, penetration float64, workers int) ([]float64, error) {
	b, err := NewBatch(BatchConfig{
		Decks:       decks,
		Rounds:      rounds,
		Sessions:    sessions,
		Penetration: penetration,
		Workers:     workers,
	}, p)
	if err != nil {
		return nil, err
	}
	result, err := b.Run(ctx)
	if err != nil {
		return nil, err
	}
	return result.Finals(), nil
}
