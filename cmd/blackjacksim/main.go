package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel string `default:"warn" enum:"debug,info,warn,error" env:"BLACKJACKSIM_LOG_LEVEL" help:"Log level (${enum})"`
	Verbose  bool   `help:"Shorthand for --log-level=debug"`
}

// Logger builds the stderr logger selected by the global flags.
func (g *Globals) Logger() *log.Logger {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	if g.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: level == log.DebugLevel,
	})
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Run      RunCmd           `cmd:"" default:"withargs" help:"Simulate a batch of sessions and report the bankroll distribution"`
	Session  SessionCmd       `cmd:"" help:"Play a single session and print its round tally"`
	Strategy StrategyCmd      `cmd:"" help:"Work with strategy files"`
	History  HistoryCmd       `cmd:"" help:"List recorded runs"`
	Show     ShowCmd          `cmd:"" help:"Re-report a recorded run"`
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjacksim"),
		kong.Description("Monte Carlo simulator for blackjack playing and betting strategies"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
