// Package strategy holds the playing and betting tables a simulated player
// follows. Tables are built once and never mutated, so a single Strategy can
// be shared by every worker in a batch.
package strategy

import (
	"errors"
	"fmt"
)

// ErrInvalidTable is returned when a playing table holds an entry it can
// never legally use.
var ErrInvalidTable = errors.New("invalid strategy table")

const (
	minDealer = 2
	maxDealer = 11
	minHand   = 2
	maxHand   = 21
	maxPair   = 11
)

// Strategy bundles the hard, soft and pair playing tables with a betting policy.
type Strategy struct {
	name    string
	hard    Table
	soft    Table
	split   Table
	betting BettingPolicy
}

// Tables is the plain nested-map form of the three playing tables, keyed by
// hand value then dealer up-card value.
type Tables struct {
	Hard  map[int]map[int]Action
	Soft  map[int]map[int]Action
	Split map[int]map[int]Action
}

// New validates the tables and returns an immutable Strategy.
func New(name string, tables Tables, betting BettingPolicy) (*Strategy, error) {
	s := &Strategy{
		name:    name,
		hard:    NewTable(tables.Hard),
		soft:    NewTable(tables.Soft),
		split:   NewTable(tables.Split),
		betting: betting,
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Strategy) validate() error {
	checks := []struct {
		label   string
		table   Table
		maxHand int
		split   bool
	}{
		{"hard", s.hard, maxHand, false},
		{"soft", s.soft, maxHand, false},
		{"split", s.split, maxPair, true},
	}

	for _, c := range checks {
		err := c.table.each(func(hand, dealer int, a Action) error {
			if hand < minHand || hand > c.maxHand {
				return fmt.Errorf("%w: %s hand value %d out of range [%d, %d]", ErrInvalidTable, c.label, hand, minHand, c.maxHand)
			}
			if dealer < minDealer || dealer > maxDealer {
				return fmt.Errorf("%w: %s dealer value %d out of range [%d, %d]", ErrInvalidTable, c.label, dealer, minDealer, maxDealer)
			}
			if a < Stand || a > SurrenderSplit {
				return fmt.Errorf("%w: %s[%d][%d] has unknown action %d", ErrInvalidTable, c.label, hand, dealer, int(a))
			}
			if !c.split && a.IsSplit() {
				return fmt.Errorf("%w: %s[%d][%d] = %s outside the split table", ErrInvalidTable, c.label, hand, dealer, a)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Name returns the strategy's label.
func (s *Strategy) Name() string { return s.name }

// Hard returns the table used for hands without a soft ace.
func (s *Strategy) Hard() Table { return s.hard }

// Soft returns the table used for soft hands.
func (s *Strategy) Soft() Table { return s.soft }

// Split returns the table used for pairs, keyed by a single card's value.
func (s *Strategy) Split() Table { return s.split }

// Betting returns the betting policy.
func (s *Strategy) Betting() BettingPolicy { return s.betting }

// Tables returns a copy of the playing tables as nested maps.
func (s *Strategy) Tables() Tables {
	return Tables{
		Hard:  s.hard.Rows(),
		Soft:  s.soft.Rows(),
		Split: s.split.Rows(),
	}
}
