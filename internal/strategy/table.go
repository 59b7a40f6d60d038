package strategy

import "maps"

type cell struct {
	hand   int
	dealer int
}

// Table maps a (hand value, dealer up-card value) pair to an Action. Keys
// without an entry resolve to Stand. A Table is immutable once built.
type Table struct {
	entries map[cell]Action
}

// NewTable builds a table from nested maps keyed by hand value then dealer
// up-card value. The input is copied.
func NewTable(entries map[int]map[int]Action) Table {
	t := Table{entries: make(map[cell]Action)}
	for hand, row := range entries {
		for dealer, action := range row {
			t.entries[cell{hand, dealer}] = action
		}
	}
	return t
}

// Lookup returns the action for the given hand and dealer values, or the
// default action when no entry exists.
func (t Table) Lookup(hand, dealer int) Action {
	if a, ok := t.entries[cell{hand, dealer}]; ok {
		return a
	}
	return t.Default()
}

// Default is the action returned for keys without an entry.
func (t Table) Default() Action {
	return Stand
}

// Len returns the number of explicit entries.
func (t Table) Len() int {
	return len(t.entries)
}

// Rows returns a copy of the table as nested maps.
func (t Table) Rows() map[int]map[int]Action {
	rows := make(map[int]map[int]Action)
	for c, a := range t.entries {
		if rows[c.hand] == nil {
			rows[c.hand] = make(map[int]Action)
		}
		rows[c.hand][c.dealer] = a
	}
	return rows
}

func (t Table) each(fn func(hand, dealer int, a Action) error) error {
	for c, a := range t.entries {
		if err := fn(c.hand, c.dealer, a); err != nil {
			return err
		}
	}
	return nil
}

// builder is a mutable staging area for assembling tables row by row.
type builder map[int]map[int]Action

func (b builder) set(hands, dealers []int, a Action) {
	for _, h := range hands {
		if b[h] == nil {
			b[h] = make(map[int]Action)
		}
		for _, d := range dealers {
			b[h][d] = a
		}
	}
}

func (b builder) row(hand int) map[int]Action {
	return maps.Clone(b[hand])
}

func span(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
