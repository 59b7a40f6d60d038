package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/blackjacksim/internal/randutil"
)

// CardsPerDeck is the number of cards in one standard deck.
const CardsPerDeck = 52

var (
	// ErrInvalidDeckCount is returned when a shoe is requested with fewer than one deck.
	ErrInvalidDeckCount = errors.New("deck count must be at least 1")
	// ErrShoeExhausted is returned when dealing from an empty shoe.
	ErrShoeExhausted = errors.New("shoe exhausted")
)

// Shoe holds one or more decks and tracks the Hi-Lo running count of every
// card dealt from it. Cards are dealt from the end of the slice.
type Shoe struct {
	cards []Card
	decks int
	count int
	rng   *rand.Rand
}

// NewShoe creates a shuffled shoe of the given number of decks.
func NewShoe(decks int, seed int64) (*Shoe, error) {
	if decks < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDeckCount, decks)
	}

	s := &Shoe{
		cards: make([]Card, 0, decks*CardsPerDeck),
		decks: decks,
		rng:   randutil.New(seed),
	}
	for range decks {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.Shuffle()
	return s, nil
}

// NewShoeFromCards creates an unshuffled shoe holding exactly the given
// cards. The last card is dealt first. The deck count is the number of
// decks needed to hold the cards.
func NewShoeFromCards(cards []Card) *Shoe {
	decks := (len(cards) + CardsPerDeck - 1) / CardsPerDeck
	if decks < 1 {
		decks = 1
	}
	return &Shoe{
		cards: append([]Card(nil), cards...),
		decks: decks,
		rng:   randutil.New(int64(len(cards))),
	}
}

// Shuffle randomizes the order of the remaining cards. The running count is
// left untouched.
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Deal removes the next card from the shoe and adds it to the running count.
func (s *Shoe) Deal() (Card, error) {
	n := len(s.cards)
	if n == 0 {
		return Card{}, ErrShoeExhausted
	}

	card := s.cards[n-1]
	s.cards = s.cards[:n-1]
	s.count += card.HiLo()
	return card, nil
}

// CardsLeft returns the number of undealt cards.
func (s *Shoe) CardsLeft() int {
	return len(s.cards)
}

// Decks returns the number of decks the shoe was built from.
func (s *Shoe) Decks() int {
	return s.decks
}

// RunningCount returns the Hi-Lo count of all cards dealt so far.
func (s *Shoe) RunningCount() int {
	return s.count
}

// Remaining returns the undealt fraction of the shoe.
func (s *Shoe) Remaining() float64 {
	return float64(len(s.cards)) / float64(CardsPerDeck*s.decks)
}

// NeedsReshuffle reports whether the undealt fraction has dropped below threshold.
func (s *Shoe) NeedsReshuffle(threshold float64) bool {
	return s.Remaining() < threshold
}

// TrueCount returns the running count per remaining deck. An empty shoe
// reports zero.
func (s *Shoe) TrueCount() float64 {
	if len(s.cards) == 0 {
		return 0
	}
	return float64(s.count) / (float64(len(s.cards)) / CardsPerDeck)
}
