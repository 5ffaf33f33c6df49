// Package tui hosts games in a terminal through Bubble Tea.
// It owns the tick loop, key mapping with emulated key release, and the
// run history board. Games never see Bubble Tea types.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the tick loop that produced it; ticks from a stopped loop
// are dropped.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// tickCmd returns a Bubble Tea command that sends one tick for loop gen.
func tickCmd(tickRate, gen int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
