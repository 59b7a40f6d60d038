package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/blackjacksim/internal/deck"
)

// ErrCardNotInHand is returned when removing a card the hand does not hold.
var ErrCardNotInHand = errors.New("card not in hand")

// Kind classifies a hand for strategy table selection.
type Kind int

const (
	Hard Kind = iota
	Soft
	Pair
)

func (k Kind) String() string {
	switch k {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Pair:
		return "pair"
	default:
		return "unknown"
	}
}

// Bounds is the dual valuation of a hand. High counts the first ace as 11
// and every other ace as 1; Low counts every ace as 1.
type Bounds struct {
	Aces int
	Low  int
	High int
}

// Best returns the playable total: High unless that busts, otherwise Low.
func (b Bounds) Best() int {
	if b.High <= 21 {
		return b.High
	}
	return b.Low
}

// Busted reports whether both totals exceed 21.
func (b Bounds) Busted() bool {
	return b.Low > 21 && b.High > 21
}

// Hand is an ordered sequence of cards held by the player or dealer.
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand holding the given cards.
func NewHand(cards ...deck.Card) *Hand {
	return &Hand{cards: append([]deck.Card(nil), cards...)}
}

// Add appends a card to the hand.
func (h *Hand) Add(c deck.Card) {
	h.cards = append(h.cards, c)
}

// Remove deletes the first card identical to c.
func (h *Hand) Remove(c deck.Card) error {
	for i, held := range h.cards {
		if held == c {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCardNotInHand, c)
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the held cards.
func (h *Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// Bounds computes the low and high totals of the hand.
func (h *Hand) Bounds() Bounds {
	var b Bounds
	for _, c := range h.cards {
		if c.IsAce() {
			b.Aces++
			b.Low++
			if b.Aces == 1 {
				b.High += 11
			} else {
				b.High++
			}
			continue
		}
		b.Low += c.Value()
		b.High += c.Value()
	}
	return b
}

// IsPair reports whether the hand is exactly two cards of equal point value.
func (h *Hand) IsPair() bool {
	return len(h.cards) == 2 && h.cards[0].SameValue(h.cards[1])
}

// Classify returns Pair for a two card pair, Soft when holding an ace and
// Hard otherwise. Two aces classify as a Pair.
func (h *Hand) Classify() Kind {
	switch {
	case h.IsPair():
		return Pair
	case h.Bounds().Aces > 0:
		return Soft
	default:
		return Hard
	}
}

func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
