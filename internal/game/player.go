package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/strategy"
)

// MaxHands is the most sub-hands a player may hold in one round.
const MaxHands = 4

// Player is a bankroll following a fixed strategy.
type Player struct {
	bankroll float64
	strategy *strategy.Strategy
	hands    int
}

// NewPlayer creates a player with the given starting bankroll.
func NewPlayer(bankroll float64, s *strategy.Strategy) (*Player, error) {
	if s == nil {
		return nil, errors.New("player requires a strategy")
	}
	if math.IsNaN(bankroll) || math.IsInf(bankroll, 0) {
		return nil, fmt.Errorf("bankroll must be finite, got %v", bankroll)
	}
	return &Player{bankroll: bankroll, strategy: s}, nil
}

// Clone returns an independent player with the same bankroll and a fresh
// round. The strategy is shared since it is immutable.
func (p *Player) Clone() *Player {
	return &Player{bankroll: p.bankroll, strategy: p.strategy}
}

// Bankroll returns the current bankroll.
func (p *Player) Bankroll() float64 {
	return p.bankroll
}

// Strategy returns the strategy the player follows.
func (p *Player) Strategy() *strategy.Strategy {
	return p.strategy
}

// Hands returns the number of sub-hands opened this round.
func (p *Player) Hands() int {
	return p.hands
}

// NextRound resets the per-round sub-hand counter.
func (p *Player) NextRound() {
	p.hands = 0
}

// Wager returns the bet for the given true count.
func (p *Player) Wager(trueCount float64) float64 {
	return p.strategy.Betting().Wager(trueCount)
}

// Action looks up the decision for a hand against the dealer's up-card.
// Pairs use the split table while fewer than MaxHands are open, soft hands
// with a low total of at most 10 use the soft table, and everything else
// uses the hard table.
func (p *Player) Action(h *Hand, up deck.Card) strategy.Action {
	b := h.Bounds()
	dealer := up.Value()

	kind := h.Classify()
	if kind == Pair && p.hands < MaxHands {
		pair := h.cards[0].Value()
		if b.Aces > 0 {
			pair = 11
		}
		return p.strategy.Split().Lookup(pair, dealer)
	}
	if kind == Soft && b.Low <= 10 {
		return p.strategy.Soft().Lookup(b.Best(), dealer)
	}
	return p.strategy.Hard().Lookup(b.Best(), dealer)
}

func (p *Player) openHand() {
	p.hands++
}

func (p *Player) payout(amount float64) {
	p.bankroll += amount
}
