// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/AlverezYari/framecheck/internal/capture"
	"github.com/AlverezYari/framecheck/internal/config"
	"github.com/AlverezYari/framecheck/internal/logging"
	"github.com/AlverezYari/framecheck/internal/options"
	"github.com/AlverezYari/framecheck/internal/report"
	"github.com/AlverezYari/framecheck/internal/server"
	"github.com/AlverezYari/framecheck/internal/tui"
	"github.com/google/uuid"
)

// Camera is an open capture device.
type Camera interface {
	capture.Source
	Close() error
}

// Window is an on-screen display surface.
type Window interface {
	capture.Display
	Close() error
}

// Deps are the collaborators Run talks to. cmd/framecheck fills them with
// the OpenCV-backed implementations.
type Deps struct {
	LoadConfig  func() (*config.AppConfig, error)
	OpenCamera  func(config.CameraConfig) (Camera, error)
	ScanDevices func() []string
	NewWindow   func(name string) Window
	Sink        capture.Sink
	Encode      server.Encoder
	Stdout      io.Writer
	Stderr      io.Writer
}

// Run executes one capture run for the given command line and returns the
// process exit status. Every resource it acquires is released before it
// returns, whatever the outcome.
func Run(args []string, deps Deps) int {
	prog := "framecheck"
	if len(args) > 0 {
		prog = filepath.Base(args[0])
		args = args[1:]
	}

	opts, err := options.Parse(args)
	if errors.Is(err, options.ErrHelp) {
		options.Usage(deps.Stdout, prog)
		return capture.ExitOK
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %v\n", prog, err)
		options.Usage(deps.Stdout, prog)
		return capture.ExitUsage
	}

	logging.Init(opts.Verbose)
	defer logging.Flush()

	runID := uuid.NewString()
	logging.Infof("run %s: %+v", runID, opts)

	cfg, err := deps.LoadConfig()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error loading config: %v\n", err)
		return capture.ExitUsage
	}

	camCfg := cfg.CameraConfig
	if opts.Device != "" {
		camCfg.DeviceID = opts.Device
	}

	openStart := time.Now()
	cam, err := deps.OpenCamera(camCfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %v\n", prog, err)
		if deps.ScanDevices != nil {
			for _, d := range deps.ScanDevices() {
				fmt.Fprintf(deps.Stderr, "\tavailable: %s\n", d)
			}
		}
		return capture.ExitCode(err)
	}
	defer func() {
		if err := cam.Close(); err != nil {
			logging.Warningf("%v", err)
		}
	}()
	logging.Since(openStart, "camera %s opened", camCfg.DeviceID)

	if opts.Save {
		if err := capture.PrepareDir(cfg.Output.ImageDir); err != nil {
			fmt.Fprintf(deps.Stderr, "%s: %v\n", prog, err)
			return capture.ExitWrite
		}
	}

	loop := &capture.Loop{
		Source: cam,
		Sink:   deps.Sink,
	}

	if opts.Display {
		win := deps.NewWindow(cfg.Output.WindowName)
		defer func() {
			if err := win.Close(); err != nil {
				logging.Warningf("error closing window: %v", err)
			}
		}()
		loop.Displays = append(loop.Displays, win)
	}

	if opts.Preview {
		preview := server.New(PreviewAddr(opts, cfg), runID, deps.Encode)
		if err := preview.Start(); err != nil {
			// the preview is only a display; capture goes ahead without it
			logging.Warningf("preview disabled: %v", err)
		} else {
			defer preview.Stop()
			loop.Displays = append(loop.Displays, preview)
		}
	}

	loopCfg := capture.Config{
		FrameCount: opts.FrameCount,
		Format:     opts.Format,
		Dir:        cfg.Output.ImageDir,
		Label:      cfg.Output.WindowName,
		Save:       opts.Save,
		// any configured display sink counts, the preview included
		Display: len(loop.Displays) > 0,
		Verbose: opts.Verbose,
	}

	printer := report.New(deps.Stdout)
	var sum capture.Summary
	if opts.Dashboard {
		sum, err = tui.Run(runID, opts.FrameCount, func(onSample func(capture.Sample)) (capture.Summary, error) {
			loop.OnSample = onSample
			return loop.Run(loopCfg)
		})
		if opts.Verbose {
			for _, s := range sum.Samples {
				printer.Frame(s)
			}
		}
		if err == nil {
			printer.Summary(sum)
		}
	} else {
		loop.Reporter = printer
		sum, err = loop.Run(loopCfg)
	}

	if err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %v\n", prog, err)
		return capture.ExitCode(err)
	}
	logging.Infof("run %s: %d frames, average %.2f ms, %.2f fps", runID, sum.Frames, sum.AverageMs, sum.FPS)
	return capture.ExitOK
}

// PreviewAddr is the preview listen address: the one given with -w, or the
// configured server address for a bare -w.
func PreviewAddr(opts options.Options, cfg *config.AppConfig) string {
	if opts.PreviewAddr != "" {
		return opts.PreviewAddr
	}
	return cfg.PreviewAddr()
}
