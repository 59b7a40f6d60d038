package simulator

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/randutil"
)

// SessionConfig holds configuration for one sequence of rounds against a
// continuing shoe.
type SessionConfig struct {
	// Decks is the size of replacement shoes. Zero takes the deck count
	// of the starting shoe.
	Decks  int
	Rounds int
	// Penetration is the undealt fraction below which the shoe is replaced.
	Penetration float64
	Seed        int64
	Logger      *log.Logger
}

// Tally counts what happened over a run of rounds.
type Tally struct {
	Rounds         int     `json:"rounds"`
	Won            int     `json:"won"`
	Lost           int     `json:"lost"`
	Pushed         int     `json:"pushed"`
	PlayerNaturals int     `json:"player_naturals"`
	DealerNaturals int     `json:"dealer_naturals"`
	Splits         int     `json:"splits"`
	Doubles        int     `json:"doubles"`
	Surrenders     int     `json:"surrenders"`
	Busts          int     `json:"busts"`
	Wagered        float64 `json:"wagered"`
}

// Record adds a settled round to the tally.
func (t *Tally) Record(r game.Round) {
	t.Rounds++
	t.Wagered += r.Wager
	switch {
	case r.Payout > 0:
		t.Won++
	case r.Payout < 0:
		t.Lost++
	default:
		t.Pushed++
	}
	if r.PlayerNatural {
		t.PlayerNaturals++
	}
	if r.DealerNatural {
		t.DealerNaturals++
	}
	t.Splits += r.Splits()
	for _, o := range r.Outcomes {
		switch o.Kind {
		case game.Double:
			t.Doubles++
		case game.Surrender:
			t.Surrenders++
		case game.Bust:
			t.Busts++
		}
	}
}

// Merge adds another tally into t.
func (t *Tally) Merge(o Tally) {
	t.Rounds += o.Rounds
	t.Won += o.Won
	t.Lost += o.Lost
	t.Pushed += o.Pushed
	t.PlayerNaturals += o.PlayerNaturals
	t.DealerNaturals += o.DealerNaturals
	t.Splits += o.Splits
	t.Doubles += o.Doubles
	t.Surrenders += o.Surrenders
	t.Busts += o.Busts
	t.Wagered += o.Wagered
}

// SessionResult is the outcome of a completed session.
type SessionResult struct {
	Index      int     `json:"index"`
	Start      float64 `json:"start"`
	Final      float64 `json:"final"`
	Reshuffles int     `json:"reshuffles"`
	Tally      Tally   `json:"tally"`
}

// Delta returns the bankroll change over the session.
func (r SessionResult) Delta() float64 {
	return r.Final - r.Start
}

// Session plays rounds for one player against one shoe, replacing the shoe
// whenever it runs low.
type Session struct {
	config     SessionConfig
	player     *game.Player
	shoe       *deck.Shoe
	rng        *rand.Rand
	start      float64
	reshuffles int
	tally      Tally
}

// NewSession creates a session. A nil shoe is replaced by a freshly
// shuffled one of config.Decks decks.
func NewSession(config SessionConfig, p *game.Player, shoe *deck.Shoe) (*Session, error) {
	if p == nil {
		return nil, errors.New("session requires a player")
	}
	if config.Rounds < 0 {
		return nil, fmt.Errorf("rounds must be non-negative, got %d", config.Rounds)
	}
	if config.Penetration < 0 || config.Penetration > 1 {
		return nil, fmt.Errorf("penetration must be within [0, 1], got %v", config.Penetration)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	s := &Session{
		config: config,
		player: p,
		shoe:   shoe,
		rng:    randutil.New(config.Seed),
		start:  p.Bankroll(),
	}

	if s.config.Decks == 0 && shoe != nil {
		s.config.Decks = shoe.Decks()
	}
	if s.shoe == nil {
		fresh, err := s.freshShoe()
		if err != nil {
			return nil, err
		}
		s.shoe = fresh
	}
	return s, nil
}

func (s *Session) freshShoe() (*deck.Shoe, error) {
	return deck.NewShoe(s.config.Decks, int64(s.rng.Uint64()))
}

// Step plays a single round and replaces the shoe if it has dropped below
// the penetration threshold.
func (s *Session) Step() (game.Round, error) {
	wager := s.player.Wager(s.shoe.TrueCount())
	round, err := game.SettleRound(s.player, s.shoe, wager)
	if err != nil {
		return round, err
	}
	s.player.NextRound()
	s.tally.Record(round)

	if s.shoe.NeedsReshuffle(s.config.Penetration) {
		s.config.Logger.Debug("Reshuffling shoe",
			"round", s.tally.Rounds,
			"cards_left", s.shoe.CardsLeft(),
			"running_count", s.shoe.RunningCount())
		fresh, err := s.freshShoe()
		if err != nil {
			return round, err
		}
		s.shoe = fresh
		s.reshuffles++
	}
	return round, nil
}

// Run plays the configured number of rounds.
func (s *Session) Run() (SessionResult, error) {
	for i := 0; i < s.config.Rounds; i++ {
		if _, err := s.Step(); err != nil {
			return s.Result(), fmt.Errorf("round %d: %w", i+1, err)
		}
	}
	return s.Result(), nil
}

// Result reports the session so far.
func (s *Session) Result() SessionResult {
	return SessionResult{
		Start:      s.start,
		Final:      s.player.Bankroll(),
		Reshuffles: s.reshuffles,
		Tally:      s.tally,
	}
}

// Shoe returns the shoe the next round will be dealt from.
func (s *Session) Shoe() *deck.Shoe {
	return s.shoe
}

// Player returns the session's player.
func (s *Session) Player() *game.Player {
	return s.player
}

// RunSession is a convenience function that plays rounds against shoe and
// returns the player's final bankroll.
func RunSession(p *game.Player, shoe *deck.Shoe, rounds int, penetration float64) (float64, error) {
	s, err := NewSession(SessionConfig{Rounds: rounds, Penetration: penetration}, p, shoe)
	if err != nil {
		return 0, err
	}
	result, err := s.Run()
	return result.Final, err
}
