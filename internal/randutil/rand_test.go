package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestDerive(t *testing.T) {
	assert.Equal(t, Derive(7, 3), Derive(7, 3))

	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		s := Derive(7, i)
		assert.False(t, seen[s], "duplicate derived seed at index %d", i)
		seen[s] = true
	}

	assert.NotEqual(t, Derive(7, 0), Derive(8, 0))
}
