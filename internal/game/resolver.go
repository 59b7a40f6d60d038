package game

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/strategy"
)

// pending is a sub-hand waiting on the work stack. The opening hand is
// carried whole; a split child holds only the card it keeps from the pair
// and draws its second card when popped.
type pending struct {
	hand *Hand
	base deck.Card
	aces bool
}

// ResolvePlayer plays h against the dealer's up-card until every sub-hand
// it produces has settled. Outcomes are returned in the order sub-hands
// finish, which for splits is the first child's whole subtree before the
// second child. Cards drawn to the opening hand are appended to h.
func ResolvePlayer(h *Hand, up deck.Card, p *Player, shoe *deck.Shoe) ([]Outcome, error) {
	var outcomes []Outcome
	stack := []pending{{hand: h}}

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		hand := next.hand
		if hand == nil {
			c, err := shoe.Deal()
			if err != nil {
				return nil, fmt.Errorf("deal to split hand: %w", err)
			}
			// Split aces take one card and stand, unless that card is
			// another ace and there is still room to split again.
			if next.aces && (!c.IsAce() || p.hands == MaxHands) {
				v := c.Value()
				if c.IsAce() {
					v = 1
				}
				outcomes = append(outcomes, Outcome{Kind: Live, Value: 11 + v})
				continue
			}
			hand = NewHand(next.base, c)
		}

		out, children, err := play(hand, up, p, shoe)
		if err != nil {
			return nil, err
		}
		if len(children) > 0 {
			stack = append(stack, children[1], children[0])
			continue
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

// play drives a single hand until it settles or splits. A split returns the
// two children in dealing order instead of an outcome.
func play(h *Hand, up deck.Card, p *Player, shoe *deck.Shoe) (Outcome, []pending, error) {
	for {
		b := h.Bounds()
		best := b.Best()
		n := h.Len()

		if b.Busted() {
			return Outcome{Kind: Bust, Value: best}, nil, nil
		}
		if b.High == 21 && n == 2 && p.hands == 1 {
			return Outcome{Kind: Blackjack, Value: best}, nil, nil
		}

		action := p.Action(h, up)
		switch {
		case action == strategy.Stand,
			n > 2 && (action == strategy.DoubleStand || action == strategy.SurrenderStand):
			return Outcome{Kind: Live, Value: best}, nil, nil

		case action == strategy.Hit,
			n > 2 && (action == strategy.DoubleHit || action == strategy.SurrenderHit):
			c, err := shoe.Deal()
			if err != nil {
				return Outcome{}, nil, fmt.Errorf("hit %s: %w", h, err)
			}
			h.Add(c)

		case action.IsSplit():
			if !h.IsPair() {
				return Outcome{}, nil, fmt.Errorf("%w: %s on non-pair %s", ErrInvariant, action, h)
			}
			p.openHand()
			aces := b.Aces > 0
			return Outcome{}, []pending{
				{base: h.cards[0], aces: aces},
				{base: h.cards[1], aces: aces},
			}, nil

		case action.IsDouble():
			c, err := shoe.Deal()
			if err != nil {
				return Outcome{}, nil, fmt.Errorf("double %s: %w", h, err)
			}
			h.Add(c)
			v := h.Bounds().Best()
			if v > 21 {
				return Outcome{Kind: Bust, Value: v}, nil, nil
			}
			return Outcome{Kind: Double, Value: v}, nil, nil

		default:
			return Outcome{Kind: Surrender, Value: best}, nil, nil
		}
	}
}
