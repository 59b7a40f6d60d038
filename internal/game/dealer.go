package game

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/deck"
)

// ResolveDealer draws to the dealer's hand until it reaches a hard 17 or any
// 18 or more. Soft 17 hits.
func ResolveDealer(h *Hand, shoe *deck.Shoe) (DealerOutcome, error) {
	for {
		b := h.Bounds()
		v := b.Best()

		if h.Len() == 2 && v == 21 {
			return DealerOutcome{Kind: Blackjack, Value: 21}, nil
		}

		soft17 := b.High == 17 && b.Aces > 0 && b.Low < b.High
		if v < 17 || soft17 {
			c, err := shoe.Deal()
			if err != nil {
				return DealerOutcome{}, fmt.Errorf("dealer hit: %w", err)
			}
			h.Add(c)
			continue
		}

		if v > 21 {
			return DealerOutcome{Kind: Bust, Value: v}, nil
		}
		return DealerOutcome{Kind: Live, Value: v}, nil
	}
}
