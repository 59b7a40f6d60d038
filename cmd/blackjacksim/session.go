package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/simulator"
)

type SessionCmd struct {
	SimulationFlags

	Trace bool `short:"t" help:"Print every round"`
}

func (c *SessionCmd) Run(g *Globals) error {
	logger := g.Logger()

	cfg, err := c.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	s := cfg.Simulation

	strat, err := cfg.LoadStrategy()
	if err != nil {
		return err
	}
	player, err := game.NewPlayer(s.Bankroll, strat)
	if err != nil {
		return err
	}

	session, err := simulator.NewSession(simulator.SessionConfig{
		Decks:       s.Decks,
		Rounds:      s.Rounds,
		Penetration: s.Penetration,
		Seed:        s.Seed,
		Logger:      logger,
	}, player, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Playing %d rounds with %s (%d decks, seed %d)\n", s.Rounds, strat.Name(), s.Decks, s.Seed)
	for i := 1; i <= s.Rounds; i++ {
		count := session.Shoe().TrueCount()
		round, err := session.Step()
		if err != nil {
			return fmt.Errorf("round %d: %w", i, err)
		}
		if c.Trace {
			printRound(os.Stdout, i, count, round, player.Bankroll())
		}
	}

	result := session.Result()
	renderTally(os.Stdout, result.Tally)
	fmt.Println()
	line(os.Stdout, "Reshuffles", fmt.Sprint(result.Reshuffles))
	line(os.Stdout, "Bankroll", fmt.Sprintf("%.2f → %.2f (%s)", result.Start, result.Final, money(result.Delta())))
	return nil
}

func printRound(w io.Writer, n int, trueCount float64, r game.Round, bankroll float64) {
	hands := make([]string, len(r.Outcomes))
	for i, o := range r.Outcomes {
		hands[i] = o.String()
	}
	dealer := InfoStyle.Render("not played")
	if r.DealerPlayed {
		dealer = r.Dealer.String()
	}

	fmt.Fprintf(w, "%5d  tc %+5.1f  bet %6.1f  up %-3s  player [%s]  dealer %s  %s  %10.2f\n",
		n, trueCount, r.Wager, r.DealerUp, strings.Join(hands, ", "), dealer, money(r.Payout), bankroll)
}
