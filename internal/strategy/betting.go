package strategy

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

// ErrInvalidPolicy is returned for a malformed betting policy.
var ErrInvalidPolicy = errors.New("invalid betting policy")

// BettingPolicy maps a true count to a wager. Thresholds split the count
// line into len(thresholds)+1 buckets, one multiplier per bucket.
type BettingPolicy struct {
	multipliers []float64
	thresholds  []float64
}

// NewBettingPolicy validates and copies the multipliers and thresholds.
func NewBettingPolicy(multipliers, thresholds []float64) (BettingPolicy, error) {
	if len(multipliers) != len(thresholds)+1 {
		return BettingPolicy{}, fmt.Errorf("%w: %d multipliers for %d thresholds, want %d",
			ErrInvalidPolicy, len(multipliers), len(thresholds), len(thresholds)+1)
	}
	for i, t := range thresholds {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return BettingPolicy{}, fmt.Errorf("%w: threshold %d is not finite", ErrInvalidPolicy, i)
		}
		if i > 0 && t < thresholds[i-1] {
			return BettingPolicy{}, fmt.Errorf("%w: thresholds must be ascending (%g after %g)",
				ErrInvalidPolicy, t, thresholds[i-1])
		}
	}
	for i, m := range multipliers {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return BettingPolicy{}, fmt.Errorf("%w: multiplier %d is not finite", ErrInvalidPolicy, i)
		}
	}

	return BettingPolicy{
		multipliers: slices.Clone(multipliers),
		thresholds:  slices.Clone(thresholds),
	}, nil
}

// Wager returns the multiplier for the given true count.
//
// A positive count takes the bucket to the right of any threshold it lands
// on, a negative count the bucket to the left. A zero count takes the bucket
// just left of the rightmost insertion point.
//
// The zero BettingPolicy flat bets a multiplier of 1.
func (b BettingPolicy) Wager(trueCount float64) float64 {
	if len(b.multipliers) == 0 {
		return 1
	}

	var idx int
	switch {
	case trueCount > 0:
		idx = bisectRight(b.thresholds, trueCount)
	case trueCount < 0:
		idx = bisectLeft(b.thresholds, trueCount)
	default:
		// With no threshold at or below zero the first bucket applies.
		idx = max(bisectRight(b.thresholds, 0)-1, 0)
	}
	return b.multipliers[idx]
}

// Multipliers returns a copy of the per-bucket multipliers.
func (b BettingPolicy) Multipliers() []float64 {
	return slices.Clone(b.multipliers)
}

// Thresholds returns a copy of the bucket boundaries.
func (b BettingPolicy) Thresholds() []float64 {
	return slices.Clone(b.thresholds)
}

func bisectLeft(a []float64, x float64) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}

func bisectRight(a []float64, x float64) int {
	return sort.Search(len(a), func(i int) bool { return a[i] > x })
}
