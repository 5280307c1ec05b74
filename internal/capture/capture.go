// internal/capture/capture.go
package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Frame is one decoded image read from a Source. *gocv.Mat satisfies it.
type Frame interface {
	Empty() bool
}

// Source hands out one frame per blocking Read call.
type Source interface {
	Read() (Frame, error)
}

// Sink persists a frame under the given path.
type Sink interface {
	Write(path string, f Frame) error
}

// Display shows a frame. Failures are the display's own business.
type Display interface {
	Show(label string, f Frame)
}

// Reporter receives per-frame samples (verbose mode only) and the final summary.
type Reporter interface {
	Frame(s Sample)
	Summary(s Summary)
}

// Config is the part of the command-line configuration the loop consumes.
type Config struct {
	FrameCount uint
	Format     string
	Dir        string
	Label      string
	Save       bool
	Display    bool
	Verbose    bool
}

// Sample is the timing of a single captured frame.
type Sample struct {
	Index    int
	Relative time.Duration
	Delta    time.Duration
}

func (s Sample) RelativeMs() float64 { return ms(s.Relative) }
func (s Sample) DeltaMs() float64    { return ms(s.Delta) }

// Summary is what a finished (or aborted) run produced.
type Summary struct {
	Frames    int
	AverageMs float64
	FPS       float64
	Samples   []Sample
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FileName builds the name a saved frame is written under:
// <dir>/<index>.<relative ms>.<delta ms>.<format>.
func FileName(dir string, index int, relMs, deltaMs float64, format string) string {
	return filepath.Join(dir, fmt.Sprintf("%05d.%05.0f.%05.0f.%s", index, relMs, deltaMs, format))
}

// PrepareDir empties dir, creating it if needed.
func PrepareDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("error cleaning image directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating image directory %s: %w", dir, err)
	}
	return nil
}
