// Package game implements the rules of a single blackjack round: hand
// valuation, the player's decision machine, the dealer's drawing rule and
// settlement of every resulting sub-hand against the dealer.
//
// # Basic Usage
//
// Settle one round for a player following the built-in strategy:
//
//	shoe, _ := deck.NewShoe(6, 42)
//	p, _ := game.NewPlayer(1000, strategy.Basic())
//	wager := p.Wager(shoe.TrueCount())
//	round, err := game.SettleRound(p, shoe, wager)
//	p.NextRound()
//
// # Deterministic Testing
//
// Every resolver takes the shoe explicitly, so a stacked shoe built with
// deck.NewShoeFromCards replays an exact card sequence:
//
//	shoe := deck.NewShoeFromCards(deck.MustParseCards("T 9 2 2"))
//	outcomes, err := game.ResolvePlayer(hand, up, p, shoe)
//
// The last card of the slice is dealt first.
//
// # Architecture
//
// SettleRound deals the opening cards and checks naturals, then delegates to:
//   - ResolvePlayer: walks a work stack of pending sub-hands until each settles
//   - ResolveDealer: draws to 17, hitting soft 17
//
// A Player carries no state beyond its bankroll and the per-round sub-hand
// counter, so cloning one per session is cheap.
package game
