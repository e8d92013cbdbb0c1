package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FPS is the render tick rate. Everything visual advances at this rate: the
// analyzer consumes one window per tick and the spectrogram scrolls one
// column per tick.
const FPS = 30

type tickMsg time.Time
type playbackEndedMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/FPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
