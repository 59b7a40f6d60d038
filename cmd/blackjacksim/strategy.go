package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/blackjacksim/internal/fileutil"
	"github.com/lox/blackjacksim/internal/strategy"
)

type StrategyCmd struct {
	Dump  StrategyDumpCmd  `cmd:"" help:"Write the built-in basic strategy as YAML"`
	Check StrategyCheckCmd `cmd:"" help:"Validate a YAML strategy file"`
}

type StrategyDumpCmd struct {
	Output string `short:"o" type:"path" help:"Write to this file instead of stdout"`
}

func (c *StrategyDumpCmd) Run() error {
	s := strategy.Basic()
	if c.Output == "" {
		return strategy.Encode(os.Stdout, s)
	}
	if err := fileutil.WriteAtomic(c.Output, 0o644, func(w io.Writer) error {
		return strategy.Encode(w, s)
	}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s to %s\n", s.Name(), c.Output)
	return nil
}

type StrategyCheckCmd struct {
	File string `arg:"" type:"existingfile" help:"Strategy file"`
}

func (c *StrategyCheckCmd) Run() error {
	s, err := strategy.Load(c.File)
	if err != nil {
		return err
	}
	t := s.Tables()
	fmt.Printf("%s %s: %d hard, %d soft, %d split rows; %d betting steps\n",
		SuccessStyle.Render("✓"), s.Name(), len(t.Hard), len(t.Soft), len(t.Split), len(s.Betting().Multipliers()))
	return nil
}
