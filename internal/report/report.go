// internal/report/report.go
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/AlverezYari/framecheck/internal/capture"
)

// Printer writes timing lines in the fixed stdout format.
type Printer struct {
	Out io.Writer
}

func New(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{Out: out}
}

// FrameLine formats one per-frame timing line.
func FrameLine(s capture.Sample) string {
	return fmt.Sprintf("[%4d] Relative: %05.0f\tDiff: %05.0f\n", s.Index, s.RelativeMs(), s.DeltaMs())
}

// SummaryLine formats the average interval and framerate, blank lines around it.
func SummaryLine(s capture.Summary) string {
	return fmt.Sprintf("\nAverage: %05.0f\t(%05.0f FPS)\n\n", s.AverageMs, s.FPS)
}

func (p *Printer) Frame(s capture.Sample) {
	fmt.Fprint(p.Out, FrameLine(s))
}

func (p *Printer) Summary(s capture.Summary) {
	fmt.Fprint(p.Out, SummaryLine(s))
}
