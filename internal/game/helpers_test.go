package game

import (
	"testing"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/strategy"
	"github.com/stretchr/testify/require"
)

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

func card(s string) deck.Card {
	return deck.MustParseCards(s)[0]
}

func hand(s string) *Hand {
	return NewHand(cards(s)...)
}

func stacked(s string) *deck.Shoe {
	return deck.NewShoeFromCards(cards(s))
}

func newTestPlayer(t *testing.T, bankroll float64) *Player {
	t.Helper()
	p, err := NewPlayer(bankroll, strategy.Basic())
	require.NoError(t, err)
	return p
}
