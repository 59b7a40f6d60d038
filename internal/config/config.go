// Package config loads simulation run files written in HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjacksim/internal/strategy"
)

const (
	DefaultDecks       = 6
	DefaultRounds      = 1000
	DefaultSessions    = 1000
	DefaultPenetration = 0.35
	DefaultBankroll    = 10000
)

// Config represents a complete run file
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Strategy   *StrategySettings   `hcl:"strategy,block"`
	Store      *StoreSettings      `hcl:"store,block"`

	// dir is the directory of the loaded file; relative paths resolve
	// against it.
	dir string
}

// SimulationSettings controls the batch.
type SimulationSettings struct {
	Decks       int     `hcl:"decks,optional" json:"decks"`
	Rounds      int     `hcl:"rounds,optional" json:"rounds"`
	Sessions    int     `hcl:"sessions,optional" json:"sessions"`
	Penetration float64 `hcl:"penetration,optional" json:"penetration"`
	Workers     int     `hcl:"workers,optional" json:"workers"`
	ChunkSize   int     `hcl:"chunk_size,optional" json:"chunk_size"`
	Bankroll    float64 `hcl:"bankroll,optional" json:"bankroll"`
	Seed        int64   `hcl:"seed,optional" json:"seed"`
}

// StrategySettings points at a YAML strategy file.
type StrategySettings struct {
	File string `hcl:"file"`
}

// StoreSettings configures the result store.
type StoreSettings struct {
	SQLitePath string `hcl:"sqlite_path"`
}

// Default returns the configuration used when no run file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads a run file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.dir = filepath.Dir(filename)
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	s := c.Simulation
	if s.Decks == 0 {
		s.Decks = DefaultDecks
	}
	if s.Rounds == 0 {
		s.Rounds = DefaultRounds
	}
	if s.Sessions == 0 {
		s.Sessions = DefaultSessions
	}
	if s.Penetration == 0 {
		s.Penetration = DefaultPenetration
	}
	if s.Workers == 0 {
		s.Workers = runtime.NumCPU()
	}
	if s.Bankroll == 0 {
		s.Bankroll = DefaultBankroll
	}
}

// Validate validates the run configuration
func (c *Config) Validate() error {
	s := c.Simulation
	if s == nil {
		return errors.New("missing simulation settings")
	}
	if s.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", s.Decks)
	}
	if s.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", s.Rounds)
	}
	if s.Sessions < 1 {
		return fmt.Errorf("sessions must be at least 1, got %d", s.Sessions)
	}
	if s.Penetration < 0 || s.Penetration >= 1 {
		return fmt.Errorf("penetration must be within [0, 1), got %v", s.Penetration)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if s.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must be non-negative, got %d", s.ChunkSize)
	}
	if s.Bankroll <= 0 {
		return fmt.Errorf("bankroll must be positive, got %v", s.Bankroll)
	}
	if c.Strategy != nil && c.Strategy.File == "" {
		return errors.New("strategy block requires a file")
	}
	if c.Store != nil && c.Store.SQLitePath == "" {
		return errors.New("store block requires sqlite_path")
	}
	return nil
}

// StrategyPath returns the strategy file, resolved against the run file's
// directory, or "" for the built-in basic strategy.
func (c *Config) StrategyPath() string {
	if c.Strategy == nil {
		return ""
	}
	return c.resolve(c.Strategy.File)
}

// StorePath returns the SQLite path, or "" when no store is configured.
func (c *Config) StorePath() string {
	if c.Store == nil {
		return ""
	}
	return c.resolve(c.Store.SQLitePath)
}

// LoadStrategy returns the configured strategy.
func (c *Config) LoadStrategy() (*strategy.Strategy, error) {
	path := c.StrategyPath()
	if path == "" {
		return strategy.Basic(), nil
	}
	return strategy.Load(path)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}
