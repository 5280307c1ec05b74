// internal/tui/view.go
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions
var (
	headerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	logStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("237"))
)

// View renders the UI
func (m Model) View() string {
	header := m.fullWidth(headerStyle).Render(fmt.Sprintf("framecheck  run %s", m.runID))

	bar := fmt.Sprintf("%s  %d/%d", m.progress.ViewAs(m.percent()), m.captured, m.total)

	stats := statStyle.Render(fmt.Sprintf("Last frame: %.1f ms  Elapsed: %.0f ms",
		m.last.DeltaMs(), m.last.RelativeMs()))
	if m.done && m.err == nil {
		stats = statStyle.Render(fmt.Sprintf("Average: %.1f ms  (%.1f FPS)", m.summary.AverageMs, m.summary.FPS))
	}

	status := m.fullWidth(statusBarStyle).Render(fmt.Sprintf("Status: %s | q to quit", m.status))
	if m.err != nil {
		status = errorStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		bar,
		stats,
		logStyle.Render(m.viewport.View()),
		status,
	) + "\n"
}

// fullWidth stretches a bar style across the terminal once its size is known.
func (m Model) fullWidth(style lipgloss.Style) lipgloss.Style {
	if m.width <= 0 {
		return style
	}
	return style.Width(m.width)
}
