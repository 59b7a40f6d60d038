package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/lox/blackjacksim/internal/deck"
)

// ErrInvalidWager is returned for a negative or non-finite wager.
var ErrInvalidWager = errors.New("invalid wager")

// Round records how a single round was dealt and paid.
type Round struct {
	Wager         float64
	Payout        float64
	DealerUp      deck.Card
	DealerHole    deck.Card
	PlayerNatural bool
	DealerNatural bool
	Outcomes      []Outcome
	// Dealer is only meaningful when DealerPlayed is set.
	Dealer       DealerOutcome
	DealerPlayed bool
}

// Splits returns how many times the player split this round.
func (r Round) Splits() int {
	if len(r.Outcomes) == 0 {
		return 0
	}
	return len(r.Outcomes) - 1
}

// SettleRound deals and plays one round, then applies the net payout to the
// player's bankroll. On error the bankroll is left unchanged.
func SettleRound(p *Player, shoe *deck.Shoe, wager float64) (Round, error) {
	if wager < 0 || math.IsNaN(wager) || math.IsInf(wager, 0) {
		return Round{}, fmt.Errorf("%w: %v", ErrInvalidWager, wager)
	}

	var cards [4]deck.Card
	for i := range cards {
		c, err := shoe.Deal()
		if err != nil {
			return Round{}, fmt.Errorf("opening deal: %w", err)
		}
		cards[i] = c
	}
	up, hole, first, second := cards[0], cards[1], cards[2], cards[3]
	p.openHand()

	round := Round{
		Wager:         wager,
		DealerUp:      up,
		DealerHole:    hole,
		DealerNatural: up.Value()+hole.Value() == 21,
		PlayerNatural: first.Value()+second.Value() == 21,
	}

	switch {
	case round.DealerNatural && !round.PlayerNatural:
		round.Payout = -wager
	case round.DealerNatural && round.PlayerNatural:
		round.Payout = 0
	case round.PlayerNatural:
		round.Payout = 1.5 * wager
	default:
		if err := playOut(&round, p, shoe, first, second); err != nil {
			return Round{}, err
		}
	}

	p.payout(round.Payout)
	return round, nil
}

func playOut(round *Round, p *Player, shoe *deck.Shoe, first, second deck.Card) error {
	outcomes, err := ResolvePlayer(NewHand(first, second), round.DealerUp, p, shoe)
	if err != nil {
		return err
	}
	round.Outcomes = outcomes

	var standing []Outcome
	for _, o := range outcomes {
		switch o.Kind {
		case Surrender:
			round.Payout -= 0.5 * round.Wager
		case Bust:
			round.Payout -= round.Wager
		case Live, Double:
			standing = append(standing, o)
		default:
			return fmt.Errorf("%w: %s reached settlement", ErrInvariant, o)
		}
	}
	if len(standing) == 0 {
		return nil
	}

	dealer, err := ResolveDealer(NewHand(round.DealerUp, round.DealerHole), shoe)
	if err != nil {
		return err
	}
	round.Dealer = dealer
	round.DealerPlayed = true

	for _, o := range standing {
		stake := round.Wager
		if o.Kind == Double {
			stake *= 2
		}
		switch {
		case dealer.Kind == Bust || o.Value > dealer.Value:
			round.Payout += stake
		case o.Value < dealer.Value:
			round.Payout -= stake
		}
	}
	return nil
}
