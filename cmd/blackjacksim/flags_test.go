package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation {
  decks  = 2
  rounds = 50
  seed   = 7
}
`), 0o644))

	flags := SimulationFlags{Config: path, Rounds: 80, Bankroll: 250}
	cfg, err := flags.load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Simulation.Decks)
	assert.Equal(t, 80, cfg.Simulation.Rounds)
	assert.Equal(t, 250.0, cfg.Simulation.Bankroll)
	assert.Equal(t, int64(7), cfg.Simulation.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestSimulationFlagsRandomSeed(t *testing.T) {
	flags := SimulationFlags{}
	cfg, err := flags.load()
	require.NoError(t, err)
	assert.NotZero(t, cfg.Simulation.Seed)
	assert.Empty(t, cfg.StrategyPath())
}

func TestSimulationFlagsStrategyFile(t *testing.T) {
	flags := SimulationFlags{StrategyFile: "/tmp/custom.yaml"}
	cfg, err := flags.load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", cfg.StrategyPath())
}
