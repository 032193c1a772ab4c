// Package tui is the terminal platform: a Bubble Tea program that pumps
// terminal input into the runtime and shows the frames it renders.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is the pump rate used when none is configured.
const DefaultTickRate = 60

// TickMsg is sent on every pump tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
