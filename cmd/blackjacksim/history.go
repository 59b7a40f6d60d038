package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/lox/blackjacksim/internal/statistics"
)

type HistoryCmd struct {
	DB    string `name:"db" type:"path" required:"" env:"BLACKJACKSIM_DB" help:"SQLite database of recorded runs"`
	Limit int    `short:"l" default:"20" help:"Maximum runs to list (0 for all)"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	rec, err := openRecorder(c.DB, g.Logger())
	if err != nil {
		return err
	}
	defer rec.Close()

	runs, err := rec.Runs(context.Background(), c.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println(InfoStyle.Render("No recorded runs"))
		return nil
	}
	renderRuns(os.Stdout, runs)
	return nil
}

type ShowCmd struct {
	ID    string  `arg:"" help:"Run ID"`
	DB    string  `name:"db" type:"path" required:"" env:"BLACKJACKSIM_DB" help:"SQLite database of recorded runs"`
	Level float64 `default:"0.95" help:"Confidence level for the interval"`
}

func (c *ShowCmd) Run(g *Globals) error {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", c.ID, err)
	}

	rec, err := openRecorder(c.DB, g.Logger())
	if err != nil {
		return err
	}
	defer rec.Close()

	ctx := context.Background()
	run, err := rec.Run(ctx, id)
	if err != nil {
		return err
	}
	deltas, err := rec.Deltas(ctx, id)
	if err != nil {
		return err
	}

	sample := statistics.NewSample(deltas...)
	renderRun(os.Stdout, run)
	renderSummary(os.Stdout, "Bankroll change per session", sample.Summarize(c.Level))
	renderHistogram(os.Stdout, sample.Histogram(histogramBins))
	return nil
}
