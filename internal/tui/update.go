// internal/tui/update.go
package tui

import (
	"fmt"

	"github.com/AlverezYari/framecheck/internal/capture"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width

	case sampleMsg:
		m.addSample(capture.Sample(msg))

	case doneMsg:
		m.done = true
		m.summary = msg.summary
		m.err = msg.err
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Capture complete"
		}
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.done {
				return m, tea.Quit
			}
			// The capture loop cannot be interrupted; leave once it finishes.
			m.status = "Finishing capture, will quit when done..."
		case "up", "k":
			m.viewport.LineUp(1)
		case "down", "j":
			m.viewport.LineDown(1)
		}
	}
	return m, nil
}
