package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/store"
)

const (
	histogramBins  = 12
	histogramWidth = 40
	significance   = 0.05
)

func line(w io.Writer, label, value string) {
	fmt.Fprintln(w, LabelStyle.Render(label)+value)
}

func money(v float64) string {
	return signedStyle(v).Render(fmt.Sprintf("%+.2f", v))
}

// renderSummary prints the bankroll change distribution of a batch.
func renderSummary(w io.Writer, title string, s statistics.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderStyle.Render(title))
	line(w, "Sessions", strconv.Itoa(s.Sessions))
	line(w, "Mean", money(s.Mean)+InfoStyle.Render(fmt.Sprintf("  ± %.2f SE", s.StdError)))
	line(w, fmt.Sprintf("%.0f%% CI", s.Level*100), fmt.Sprintf("[%s, %s]", money(s.CILow), money(s.CIHigh)))
	line(w, "Std dev", fmt.Sprintf("%.2f", s.StdDev))
	line(w, "Median", money(s.Median))
	line(w, "5th / 95th", fmt.Sprintf("%s / %s", money(s.P05), money(s.P95)))
	line(w, "Range", fmt.Sprintf("%s .. %s", money(s.Min), money(s.Max)))

	verdict := InfoStyle.Render("no evidence of an edge")
	if s.Test.Significant(significance) {
		verdict = SuccessStyle.Render("positive edge")
	}
	line(w, "Mean > 0", fmt.Sprintf("t=%.3f p=%.4f  %s", s.Test.T, s.Test.P, verdict))
}

// renderTally prints round level counts.
func renderTally(w io.Writer, t simulator.Tally) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderStyle.Render("Rounds"))
	pct := func(n int) string {
		if t.Rounds == 0 {
			return strconv.Itoa(n)
		}
		return fmt.Sprintf("%d %s", n, InfoStyle.Render(fmt.Sprintf("(%.1f%%)", 100*float64(n)/float64(t.Rounds))))
	}
	line(w, "Played", strconv.Itoa(t.Rounds))
	line(w, "Won", pct(t.Won))
	line(w, "Lost", pct(t.Lost))
	line(w, "Pushed", pct(t.Pushed))
	line(w, "Naturals", fmt.Sprintf("player %d, dealer %d", t.PlayerNaturals, t.DealerNaturals))
	line(w, "Splits", strconv.Itoa(t.Splits))
	line(w, "Doubles", strconv.Itoa(t.Doubles))
	line(w, "Surrenders", strconv.Itoa(t.Surrenders))
	line(w, "Busts", strconv.Itoa(t.Busts))
	line(w, "Wagered", fmt.Sprintf("%.2f", t.Wagered))
}

// renderHistogram prints a horizontal bar chart of bucket counts.
func renderHistogram(w io.Writer, buckets []statistics.Bucket) {
	if len(buckets) == 0 {
		return
	}
	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderStyle.Render("Distribution"))
	for _, b := range buckets {
		n := 0
		if peak > 0 {
			n = b.Count * histogramWidth / peak
		}
		label := fmt.Sprintf("%10.1f .. %-10.1f", b.Lo, b.Hi)
		fmt.Fprintf(w, "%s %s %s\n", InfoStyle.Render(label), BarStyle.Render(strings.Repeat("█", n)), strconv.Itoa(b.Count))
	}
}

// renderRuns prints recorded runs as a table.
func renderRuns(w io.Writer, runs []store.Run) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(InfoStyle).
		Headers("ID", "CREATED", "STRATEGY", "DECKS", "ROUNDS", "SESSIONS", "MEAN").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range runs {
		t.Row(
			r.ID.String(),
			r.CreatedAt.Local().Format(time.DateTime),
			r.Strategy,
			strconv.Itoa(r.Decks),
			strconv.Itoa(r.Rounds),
			strconv.Itoa(r.Sessions),
			fmt.Sprintf("%+.2f", r.Mean),
		)
	}
	fmt.Fprintln(w, t.String())
}

// renderRun prints the parameters a run was recorded with.
func renderRun(w io.Writer, r store.Run) {
	fmt.Fprintln(w, HeaderStyle.Render("Run "+r.ID.String()))
	line(w, "Recorded", r.CreatedAt.Local().Format(time.DateTime))
	line(w, "Strategy", r.Strategy)
	line(w, "Shoe", fmt.Sprintf("%d decks, reshuffle below %.0f%%", r.Decks, r.Penetration*100))
	line(w, "Sessions", fmt.Sprintf("%d x %d rounds", r.Sessions, r.Rounds))
	line(w, "Bankroll", fmt.Sprintf("%.2f", r.Bankroll))
	line(w, "Seed", strconv.FormatInt(r.Seed, 10))
	line(w, "Duration", r.Duration.Round(time.Millisecond).String())
}
