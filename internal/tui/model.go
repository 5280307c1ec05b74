// internal/tui/model.go
package tui

import (
	"fmt"
	"strings"

	"github.com/AlverezYari/framecheck/internal/capture"
	"github.com/AlverezYari/framecheck/internal/report"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const maxLines = 1000

// Msg types
type sampleMsg capture.Sample

type doneMsg struct {
	summary capture.Summary
	err     error
}

// RunFunc runs the capture loop, calling onSample for every frame.
type RunFunc func(onSample func(capture.Sample)) (capture.Summary, error)

// Model is the capture dashboard. The loop runs in a command and feeds
// samples back through Program.Send.
type Model struct {
	runID    string
	total    uint
	width    int
	status   string
	start    tea.Cmd
	last     capture.Sample
	captured int
	lines    []string
	progress progress.Model
	viewport viewport.Model
	summary  capture.Summary
	err      error
	done     bool
}

// New returns a Model with initial state
func New(runID string, total uint, start tea.Cmd) Model {
	return Model{
		runID:    runID,
		total:    total,
		status:   "Capturing...",
		start:    start,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		viewport: viewport.New(60, 8),
		lines:    make([]string, 0),
	}
}

// Init starts the capture
func (m Model) Init() tea.Cmd {
	return m.start
}

func (m *Model) addSample(s capture.Sample) {
	m.last = s
	m.captured = s.Index + 1
	m.lines = append(m.lines, strings.TrimRight(report.FrameLine(s), "\n"))

	// Cap line buffer size
	if len(m.lines) > maxLines {
		m.lines = m.lines[1:]
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.captured) / float64(m.total)
}

// Run shows the dashboard while run executes and returns its result.
func Run(runID string, total uint, run RunFunc) (capture.Summary, error) {
	var p *tea.Program
	start := func() tea.Msg {
		sum, err := run(func(s capture.Sample) { p.Send(sampleMsg(s)) })
		return doneMsg{summary: sum, err: err}
	}
	p = tea.NewProgram(New(runID, total, start))

	final, err := p.Run()
	if err != nil {
		return capture.Summary{}, fmt.Errorf("error running dashboard: %w", err)
	}
	m := final.(Model)
	return m.summary, m.err
}
