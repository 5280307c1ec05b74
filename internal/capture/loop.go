// internal/capture/loop.go
package capture

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AlverezYari/framecheck/internal/logging"
)

// maxPrealloc bounds the up-front sample allocation; longer runs grow the slice.
const maxPrealloc = 4096

// Loop drives a fixed number of blocking frame reads and times each one.
// Sink is only needed when Config.Save is set, Displays only when
// Config.Display is set.
type Loop struct {
	Source   Source
	Sink     Sink
	Displays []Display
	Reporter Reporter

	// Now defaults to time.Now.
	Now func() time.Time
	// OnSample, when set, sees every sample regardless of verbosity.
	OnSample func(Sample)
}

// Run captures cfg.FrameCount frames. A read failure or an empty frame ends
// the run with ErrUnreadable, a failed write with ErrWrite. On error the
// returned Summary holds the samples produced so far.
func (l *Loop) Run(cfg Config) (Summary, error) {
	var sum Summary
	if cfg.FrameCount == 0 {
		return sum, errors.New("frame count must be nonzero")
	}
	if cfg.Save && l.Sink == nil {
		return sum, errors.New("save requested without a sink")
	}

	now := l.Now
	if now == nil {
		now = time.Now
	}

	sum.Samples = make([]Sample, 0, min(cfg.FrameCount, maxPrealloc))
	start := now()
	last := start
	var total time.Duration

	for i := 0; i < int(cfg.FrameCount); i++ {
		frame, err := l.Source.Read()
		if err != nil {
			return l.abort(sum, fmt.Errorf("frame %d: %w: %w", i, ErrUnreadable, err))
		}
		if frame == nil || frame.Empty() {
			return l.abort(sum, fmt.Errorf("frame %d: %w: empty frame", i, ErrUnreadable))
		}

		t := now()
		s := Sample{Index: i, Relative: t.Sub(start), Delta: t.Sub(last)}
		last = t

		sum.Samples = append(sum.Samples, s)
		sum.Frames = len(sum.Samples)
		if l.OnSample != nil {
			l.OnSample(s)
		}
		if cfg.Verbose && l.Reporter != nil {
			l.Reporter.Frame(s)
		}

		if cfg.Save {
			name := FileName(cfg.Dir, i, s.RelativeMs(), s.DeltaMs(), cfg.Format)
			if err := l.Sink.Write(name, frame); err != nil {
				return l.abort(sum, fmt.Errorf("frame %d: %w: %w", i, ErrWrite, err))
			}
			logging.Debugf("frame %d written to %s", i, name)
		}

		if cfg.Display {
			for _, d := range l.Displays {
				d.Show(cfg.Label, frame)
			}
		}

		total += s.Delta
	}

	sum.AverageMs = ms(total) / float64(cfg.FrameCount)
	sum.FPS = framerate(sum.AverageMs)
	if l.Reporter != nil {
		l.Reporter.Summary(sum)
	}
	return sum, nil
}

func (l *Loop) abort(sum Summary, err error) (Summary, error) {
	logging.Warningf("capture aborted after %d frames: %v", sum.Frames, err)
	return sum, err
}

func framerate(avgMs float64) float64 {
	if avgMs == 0 {
		return math.Inf(1)
	}
	return 1000 / avgMs
}
