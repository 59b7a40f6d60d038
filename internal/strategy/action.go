package strategy

import "fmt"

// Action is a player decision looked up from a strategy table.
type Action int

const (
	Stand Action = iota
	Hit
	Split
	SplitIfDouble
	DoubleStand
	DoubleHit
	SurrenderHit
	SurrenderStand
	SurrenderSplit
)

var actionNames = [...]string{
	Stand:          "STAND",
	Hit:            "HIT",
	Split:          "SPLIT",
	SplitIfDouble:  "SPLIT_IF_DOUBLE",
	DoubleStand:    "DOUBLE_STAND",
	DoubleHit:      "DOUBLE_HIT",
	SurrenderHit:   "SURRENDER_HIT",
	SurrenderStand: "SURRENDER_STAND",
	SurrenderSplit: "SURRENDER_SPLIT",
}

// String returns the table tag for the action, e.g. "DOUBLE_HIT".
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction converts a table tag back into an Action.
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return Stand, fmt.Errorf("unknown action %q", s)
}

// IsSplit reports whether the action splits a pair.
func (a Action) IsSplit() bool {
	return a == Split || a == SplitIfDouble
}

// IsDouble reports whether the action doubles on the first decision.
func (a Action) IsDouble() bool {
	return a == DoubleStand || a == DoubleHit
}

// IsSurrender reports whether the action surrenders on the first decision.
func (a Action) IsSurrender() bool {
	return a == SurrenderHit || a == SurrenderStand || a == SurrenderSplit
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(actionNames) {
		return nil, fmt.Errorf("invalid action %d", int(a))
	}
	return []byte(actionNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(b []byte) error {
	parsed, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
