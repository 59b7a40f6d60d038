package game

import (
	"errors"
	"fmt"
)

// ErrInvariant signals a logic defect in round resolution. It is never the
// result of bad input and callers should treat it as fatal.
var ErrInvariant = errors.New("invariant violation")

// OutcomeKind is the terminal state of a player sub-hand or the dealer's hand.
type OutcomeKind int

const (
	Live OutcomeKind = iota
	Bust
	Blackjack
	Surrender
	Double
)

func (k OutcomeKind) String() string {
	switch k {
	case Live:
		return "LIVE"
	case Bust:
		return "BUST"
	case Blackjack:
		return "BLACKJACK"
	case Surrender:
		return "SURRENDER"
	case Double:
		return "DOUBLE"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the terminal state and playable total of one player sub-hand.
type Outcome struct {
	Kind  OutcomeKind
	Value int
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s %d", o.Kind, o.Value)
}

// DealerOutcome is the final state of the dealer's hand. Kind is one of
// Blackjack, Bust or Live.
type DealerOutcome struct {
	Kind  OutcomeKind
	Value int
}

func (o DealerOutcome) String() string {
	return fmt.Sprintf("%s %d", o.Kind, o.Value)
}
