package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	a, err := ParseAction("SURRENDER_SPLIT")
	require.NoError(t, err)
	assert.Equal(t, SurrenderSplit, a)

	_, err = ParseAction("double")
	assert.Error(t, err)
}

func TestActionZeroValueIsStand(t *testing.T) {
	var a Action
	assert.Equal(t, Stand, a)
	assert.Equal(t, "STAND", a.String())
}

func TestActionPredicates(t *testing.T) {
	assert.True(t, Split.IsSplit())
	assert.True(t, SplitIfDouble.IsSplit())
	assert.False(t, SurrenderSplit.IsSplit())
	assert.True(t, SurrenderSplit.IsSurrender())
	assert.True(t, DoubleStand.IsDouble())
	assert.False(t, Hit.IsDouble())
}

func TestActionText(t *testing.T) {
	var a Action
	require.NoError(t, a.UnmarshalText([]byte("DOUBLE_STAND")))
	assert.Equal(t, DoubleStand, a)

	b, err := a.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "DOUBLE_STAND", string(b))

	_, err = Action(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Action(42)", Action(42).String())
}
