package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var countThresholds = []float64{-3, -2, -1, 0, 0, 1, 2, 3}

func TestWagerPositiveSpread(t *testing.T) {
	b, err := NewBettingPolicy([]float64{1, 1, 1, 1, 1, 1, 4, 8, 16}, countThresholds)
	require.NoError(t, err)

	tests := []struct {
		name  string
		count float64
		want  float64
	}{
		{"zero count", 0, 1},
		{"deep negative", -10 / (1.0 / 52), 1},
		{"one per remaining card", 1 / (1.0 / 52), 16},
		{"just above one", 1 / (51.0 / 52), 4},
		{"just above two", 2 / (50.0 / 52), 8},
		{"just above three", 3 / (49.0 / 52), 16},
		{"exactly one selects the higher bucket", 1, 4},
		{"exactly two selects the higher bucket", 2, 8},
		{"half", 0.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Wager(tt.count))
		})
	}
}

func TestWagerSignedSpread(t *testing.T) {
	b, err := NewBettingPolicy([]float64{-16, -8, -4, -1, 0, 1, 4, 8, 16}, countThresholds)
	require.NoError(t, err)

	tests := []struct {
		name  string
		count float64
		want  float64
	}{
		{"zero count", 0, 0},
		{"exactly minus one selects the lower bucket", -1, -4},
		{"exactly minus two", -2, -8},
		{"exactly minus three", -3, -16},
		{"just above minus one", -1 / (51.0 / 52), -1},
		{"just below minus two", -2 / (50.0 / 52), -8},
		{"just below minus three", -3 / (49.0 / 52), -16},
		{"positive one", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Wager(tt.count))
		})
	}
}

func TestWagerZeroCountClamps(t *testing.T) {
	b, err := NewBettingPolicy([]float64{2, 4}, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, b.Wager(0))
	assert.Equal(t, 4.0, b.Wager(1))
}

func TestZeroBettingPolicy(t *testing.T) {
	var b BettingPolicy
	assert.Equal(t, 1.0, b.Wager(5))
}

func TestNewBettingPolicyValidation(t *testing.T) {
	_, err := NewBettingPolicy([]float64{1, 2}, []float64{0, 1})
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = NewBettingPolicy([]float64{1, 2, 3}, []float64{1, 0})
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = NewBettingPolicy(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestBettingPolicyCopiesInput(t *testing.T) {
	multipliers := []float64{1, 2}
	thresholds := []float64{0}
	b, err := NewBettingPolicy(multipliers, thresholds)
	require.NoError(t, err)

	multipliers[1] = 100
	thresholds[0] = 50
	assert.Equal(t, 2.0, b.Wager(1))
	assert.Equal(t, []float64{0}, b.Thresholds())
}
