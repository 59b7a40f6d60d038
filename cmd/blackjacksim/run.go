package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/fileutil"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/store"
)

// SimulationFlags override run file settings. Zero keeps the value from
// the run file (or its default).
type SimulationFlags struct {
	Config       string  `short:"c" type:"path" env:"BLACKJACKSIM_CONFIG" help:"HCL run file"`
	Decks        int     `env:"BLACKJACKSIM_DECKS" help:"Decks per shoe"`
	Rounds       int     `short:"r" env:"BLACKJACKSIM_ROUNDS" help:"Rounds per session"`
	Penetration  float64 `env:"BLACKJACKSIM_PENETRATION" help:"Reshuffle when the undealt fraction drops below this"`
	Bankroll     float64 `env:"BLACKJACKSIM_BANKROLL" help:"Starting bankroll"`
	Seed         int64   `env:"BLACKJACKSIM_SEED" help:"Batch seed (0 for random)"`
	StrategyFile string  `name:"strategy" type:"path" env:"BLACKJACKSIM_STRATEGY" help:"YAML strategy file (built-in basic strategy otherwise)"`
}

// load reads the run file and applies flag overrides.
func (f *SimulationFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if f.Config != "" {
		var err error
		if cfg, err = config.Load(f.Config); err != nil {
			return nil, err
		}
	}

	s := cfg.Simulation
	if f.Decks != 0 {
		s.Decks = f.Decks
	}
	if f.Rounds != 0 {
		s.Rounds = f.Rounds
	}
	if f.Penetration != 0 {
		s.Penetration = f.Penetration
	}
	if f.Bankroll != 0 {
		s.Bankroll = f.Bankroll
	}
	if f.Seed != 0 {
		s.Seed = f.Seed
	}
	if f.StrategyFile != "" {
		cfg.Strategy = &config.StrategySettings{File: f.StrategyFile}
	}
	if s.Seed == 0 {
		s.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

type RunCmd struct {
	SimulationFlags

	Sessions  int    `short:"n" env:"BLACKJACKSIM_SESSIONS" help:"Number of sessions"`
	Workers   int    `short:"w" env:"BLACKJACKSIM_WORKERS" help:"Concurrent sessions (default one per CPU)"`
	ChunkSize int    `env:"BLACKJACKSIM_CHUNK_SIZE" help:"Sessions per sub-batch"`
	JSON      string `name:"json" type:"path" help:"Write the summary and session deltas to this file"`
	DB        string `name:"db" type:"path" env:"BLACKJACKSIM_DB" help:"Record the run in this SQLite database"`
	Quiet     bool   `short:"q" help:"Hide progress output"`
}

// runExport is the --json document.
type runExport struct {
	RunID      string                    `json:"run_id,omitempty"`
	Strategy   string                    `json:"strategy"`
	Simulation config.SimulationSettings `json:"simulation"`
	Summary    statistics.Summary        `json:"summary"`
	Tally      simulator.Tally           `json:"tally"`
	Histogram  []statistics.Bucket       `json:"histogram"`
	Deltas     []float64                 `json:"deltas"`
	Duration   string                    `json:"duration"`
}

func (c *RunCmd) Run(g *Globals) error {
	logger := g.Logger()

	cfg, err := c.load()
	if err != nil {
		return err
	}
	s := cfg.Simulation
	if c.Sessions != 0 {
		s.Sessions = c.Sessions
	}
	if c.Workers != 0 {
		s.Workers = c.Workers
	}
	if c.ChunkSize != 0 {
		s.ChunkSize = c.ChunkSize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	strat, err := cfg.LoadStrategy()
	if err != nil {
		return err
	}
	player, err := game.NewPlayer(s.Bankroll, strat)
	if err != nil {
		return err
	}

	dbPath := c.DB
	if dbPath == "" {
		dbPath = cfg.StorePath()
	}
	rec, err := openRecorder(dbPath, logger)
	if err != nil {
		return err
	}
	defer rec.Close()

	clock := quartz.NewReal()
	var progress simulator.ProgressReporter
	monitor := NewProgressMonitor(os.Stdout, clock, s.Sessions)
	if !c.Quiet {
		progress = monitor
		fmt.Printf("Simulating %d sessions of %d rounds with %s (%d decks, seed %d)\n\n",
			s.Sessions, s.Rounds, strat.Name(), s.Decks, s.Seed)
	}

	batch, err := simulator.NewBatch(simulator.BatchConfig{
		Decks:       s.Decks,
		Rounds:      s.Rounds,
		Sessions:    s.Sessions,
		Penetration: s.Penetration,
		Workers:     s.Workers,
		ChunkSize:   s.ChunkSize,
		Seed:        s.Seed,
		Logger:      logger,
		Progress:    progress,
		Clock:       clock,
	}, player)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := batch.Run(ctx)
	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}
	if len(result.Sessions) == 0 {
		return err
	}
	if !c.Quiet {
		monitor.PrintSummary(len(result.Sessions))
	}

	sample := statistics.NewSample(result.Deltas()...)
	if err := sample.Validate(); err != nil {
		return err
	}
	summary := sample.Summarize(statistics.DefaultLevel)
	tally := result.Tally()

	title := "Bankroll change per session"
	if interrupted {
		title += WarningStyle.Render(" (interrupted)")
	}
	renderSummary(os.Stdout, title, summary)
	renderHistogram(os.Stdout, sample.Histogram(histogramBins))
	renderTally(os.Stdout, tally)

	if interrupted {
		logger.Warn("Run interrupted, not recording partial results", "completed", len(result.Sessions))
		return err
	}

	run, err := rec.RecordRun(ctx, store.Run{
		Strategy:    strat.Name(),
		Decks:       s.Decks,
		Rounds:      s.Rounds,
		Sessions:    s.Sessions,
		Penetration: s.Penetration,
		Bankroll:    s.Bankroll,
		Seed:        s.Seed,
		Duration:    result.Duration,
		Mean:        summary.Mean,
	}, result.Deltas())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	if dbPath != "" {
		fmt.Printf("\nRecorded run %s\n", run.ID)
	}

	if c.JSON != "" {
		export := runExport{
			Strategy:   strat.Name(),
			Simulation: *s,
			Summary:    summary,
			Tally:      tally,
			Histogram:  sample.Histogram(histogramBins),
			Deltas:     result.Deltas(),
			Duration:   result.Duration.String(),
		}
		if dbPath != "" {
			export.RunID = run.ID.String()
		}
		if err := fileutil.WriteJSONAtomic(c.JSON, export, 0o644); err != nil {
			return err
		}
		logger.Info("Wrote summary", "path", c.JSON)
	}
	return nil
}

// openRecorder returns a SQLite recorder for path, or a no-op recorder when
// path is empty.
func openRecorder(path string, logger *log.Logger) (store.Recorder, error) {
	if path == "" {
		return store.NewNoopRecorder(), nil
	}
	rec, err := store.NewSQLiteRecorder(path, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return rec, nil
}
