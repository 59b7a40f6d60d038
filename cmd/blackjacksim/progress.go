package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
)

const progressDots = 40

// ProgressMonitor prints one line per sub-batch. The line is opened when the
// sub-batch starts and filled with a dot bar proportional to overall
// progress when it completes.
type ProgressMonitor struct {
	mu             sync.Mutex
	out            io.Writer
	clock          quartz.Clock
	totalSessions  int
	batchSessions  int
	startTime      time.Time
	batchStartTime time.Time
}

// NewProgressMonitor creates a progress monitor for a batch of
// totalSessions sessions.
func NewProgressMonitor(out io.Writer, clock quartz.Clock, totalSessions int) *ProgressMonitor {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &ProgressMonitor{
		out:           out,
		clock:         clock,
		totalSessions: totalSessions,
		startTime:     clock.Now(),
	}
}

// OnBatchStart is called when a new sub-batch begins
func (m *ProgressMonitor) OnBatchStart(batchNum int, totalBatches int, sessionsInBatch int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.batchSessions = sessionsInBatch
	m.batchStartTime = m.clock.Now()
	fmt.Fprintf(m.out, "Batch %d/%d: ", batchNum, totalBatches)
}

// OnBatchComplete is called when a sub-batch completes
func (m *ProgressMonitor) OnBatchComplete(batchNum int, sessionsCompleted int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := max(m.totalSessions, 1)
	dots := min(sessionsCompleted*progressDots/total, progressDots)
	bar := strings.Repeat(".", dots) + strings.Repeat(" ", progressDots-dots)

	duration := m.clock.Since(m.batchStartTime)
	fmt.Fprintf(m.out, "%s ✓ %d sessions in %.1fs (%s)\n",
		bar, m.batchSessions, duration.Seconds(), rate(m.batchSessions, duration))
}

// PrintSummary prints the overall throughput.
func (m *ProgressMonitor) PrintSummary(sessions int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	duration := m.clock.Since(m.startTime)
	fmt.Fprintf(m.out, "\nCompleted %d sessions in %.1f seconds (%s)\n",
		sessions, duration.Seconds(), rate(sessions, duration))
}

func rate(n int, d time.Duration) string {
	if d <= 0 {
		return "-/sec"
	}
	return fmt.Sprintf("%.0f/sec", float64(n)/d.Seconds())
}
