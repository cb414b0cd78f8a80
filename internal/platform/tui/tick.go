// Package tui runs Counter Flow in a terminal with Bubble Tea. It turns key
// and mouse messages into input frames, drives the simulation on a tick and
// rasterises each frame into a cell buffer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// maxFrameTime caps how much wall time one tick may report, so a stalled
// terminal does not burn through timers in one step.
const maxFrameTime = 250 * time.Millisecond

// frameTime returns the wall time between two ticks, capped.
func frameTime(last, now time.Time) time.Duration {
	if last.IsZero() {
		return 0
	}
	return min(max(now.Sub(last), 0), maxFrameTime)
}
