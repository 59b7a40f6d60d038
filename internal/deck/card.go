package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankChars = "23456789TJQKA"

// String returns the string representation of a rank
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Value returns the blackjack point value of the card. Tens and faces are
// worth 10 and an ace is worth 11.
func (c Card) Value() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= Ten:
		return 10
	default:
		return int(c.Rank)
	}
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// SameValue reports whether two cards have equal point value, so a king and
// a queen count as a pair.
func (c Card) SameValue(o Card) bool {
	return c.Value() == o.Value()
}

// HiLo returns the card's contribution to the Hi-Lo running count.
func (c Card) HiLo() int {
	v := c.Value()
	switch {
	case v <= 6:
		return 1
	case v >= 10:
		return -1
	default:
		return 0
	}
}

// ParseCards parses whitespace separated card tokens such as "As T 9h".
// The suit is optional and defaults to spades.
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := parseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error. Useful in tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseCard(tok string) (Card, error) {
	if len(tok) < 1 || len(tok) > 2 {
		return Card{}, fmt.Errorf("invalid card %q", tok)
	}

	i := strings.IndexByte(rankChars, upper(tok[0]))
	if i < 0 {
		return Card{}, fmt.Errorf("invalid rank in %q", tok)
	}
	card := Card{Rank: Two + Rank(i), Suit: Spades}

	if len(tok) == 2 {
		switch upper(tok[1]) {
		case 'S':
			card.Suit = Spades
		case 'H':
			card.Suit = Hearts
		case 'D':
			card.Suit = Diamonds
		case 'C':
			card.Suit = Clubs
		default:
			return Card{}, fmt.Errorf("invalid suit in %q", tok)
		}
	}
	return card, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
