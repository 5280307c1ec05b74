package app

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlverezYari/framecheck/internal/capture"
	"github.com/AlverezYari/framecheck/internal/config"
	"github.com/AlverezYari/framecheck/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFrame struct{}

func (testFrame) Empty() bool { return false }

type testCamera struct {
	reads  int
	failAt int
	closed int
}

func (c *testCamera) Read() (capture.Frame, error) {
	i := c.reads
	c.reads++
	if i == c.failAt {
		return nil, errors.New("select timeout")
	}
	return testFrame{}, nil
}

func (c *testCamera) Close() error {
	c.closed++
	return nil
}

type testWindow struct {
	shown  int
	closed int
}

func (w *testWindow) Show(label string, f capture.Frame) { w.shown++ }

func (w *testWindow) Close() error {
	w.closed++
	return nil
}

type testSink struct {
	written []string
	failAt  int
}

func (s *testSink) Write(path string, f capture.Frame) error {
	if len(s.written) == s.failAt {
		return errors.New("no space left on device")
	}
	s.written = append(s.written, path)
	return nil
}

type harness struct {
	cfg       *config.AppConfig
	cam       *testCamera
	win       *testWindow
	sink      *testSink
	openErr   error
	opened    []config.CameraConfig
	stdout    bytes.Buffer
	stderr    bytes.Buffer
	configErr error
}

func newHarness(t *testing.T) *harness {
	cfg := config.Default()
	cfg.Output.ImageDir = filepath.Join(t.TempDir(), "images")
	return &harness{
		cfg:  cfg,
		cam:  &testCamera{failAt: -1},
		win:  &testWindow{},
		sink: &testSink{failAt: -1},
	}
}

func (h *harness) run(args ...string) int {
	return Run(append([]string{"framecheck"}, args...), Deps{
		LoadConfig: func() (*config.AppConfig, error) {
			if h.configErr != nil {
				return nil, h.configErr
			}
			return h.cfg, nil
		},
		OpenCamera: func(c config.CameraConfig) (Camera, error) {
			h.opened = append(h.opened, c)
			if h.openErr != nil {
				return nil, h.openErr
			}
			return h.cam, nil
		},
		ScanDevices: func() []string { return []string{"1 (Camera 1)"} },
		NewWindow:   func(name string) Window { return h.win },
		Sink:        h.sink,
		Encode:      func(capture.Frame) ([]byte, error) { return []byte("jpeg"), nil },
		Stdout:      &h.stdout,
		Stderr:      &h.stderr,
	})
}

func TestRunSuccess(t *testing.T) {
	h := newHarness(t)

	code := h.run("-n4", "-v", "-s", "-d", "-fpng")

	assert.Equal(t, capture.ExitOK, code)
	assert.Equal(t, 4, h.cam.reads)
	assert.Len(t, h.sink.written, 4)
	assert.Equal(t, 4, h.win.shown)
	assert.Equal(t, 1, h.cam.closed)
	assert.Equal(t, 1, h.win.closed)

	out := h.stdout.String()
	assert.Equal(t, 4, strings.Count(out, "Relative: "))
	assert.Equal(t, 1, strings.Count(out, "\nAverage: "))
	assert.Empty(t, h.stderr.String())
}

func TestRunQuietPrintsOnlySummary(t *testing.T) {
	h := newHarness(t)

	code := h.run("-n3")

	assert.Equal(t, capture.ExitOK, code)
	assert.NotContains(t, h.stdout.String(), "Relative: ")
	assert.Contains(t, h.stdout.String(), "\nAverage: ")
	assert.Empty(t, h.sink.written)
}

func TestRunWriteFailureReleasesResources(t *testing.T) {
	h := newHarness(t)
	h.sink.failAt = 2

	code := h.run("-n5", "-s", "-d")

	assert.Equal(t, capture.ExitWrite, code)
	assert.Equal(t, 3, h.cam.reads)
	assert.Equal(t, 1, h.cam.closed)
	assert.Equal(t, 1, h.win.closed)
	assert.NotContains(t, h.stdout.String(), "Average:")
	assert.Equal(t, 1, strings.Count(h.stderr.String(), capture.ErrWrite.Error()))
}

func TestRunReadFailureReleasesResources(t *testing.T) {
	h := newHarness(t)
	h.cam.failAt = 1

	code := h.run("-n5")

	assert.Equal(t, capture.ExitUnreadable, code)
	assert.Equal(t, 1, h.cam.closed)
}

func TestRunOpenFailure(t *testing.T) {
	h := newHarness(t)
	h.openErr = fmt.Errorf("%w: camera 7 is not open", capture.ErrDevice)

	code := h.run("-n5", "-i7", "-d")

	assert.Equal(t, capture.ExitDevice, code)
	require.Len(t, h.opened, 1)
	assert.Equal(t, "7", h.opened[0].DeviceID)
	assert.Contains(t, h.stderr.String(), "available: 1 (Camera 1)")
	assert.Zero(t, h.win.closed)
	assert.Empty(t, h.stdout.String())
}

func TestRunUsesConfiguredDevice(t *testing.T) {
	h := newHarness(t)
	h.cfg.CameraConfig.DeviceID = "/dev/video3"

	require.Equal(t, capture.ExitOK, h.run("-n1"))
	require.Len(t, h.opened, 1)
	assert.Equal(t, "/dev/video3", h.opened[0].DeviceID)
	assert.Equal(t, 320, h.opened[0].StreamConfig.Width)
}

func TestRunParseError(t *testing.T) {
	h := newHarness(t)

	code := h.run("-x")

	assert.Equal(t, capture.ExitUsage, code)
	assert.Empty(t, h.opened)
	assert.Contains(t, h.stderr.String(), "unrecognized flag")
	assert.Contains(t, h.stdout.String(), "-n<n_frames> [OPTIONS]")
}

func TestRunHelp(t *testing.T) {
	h := newHarness(t)

	code := h.run("-h")

	assert.Equal(t, capture.ExitOK, code)
	assert.Empty(t, h.opened)
	assert.Contains(t, h.stdout.String(), "Prints this message")
}

func TestRunConfigError(t *testing.T) {
	h := newHarness(t)
	h.configErr = errors.New("bad yaml")

	code := h.run("-n1")

	assert.Equal(t, capture.ExitUsage, code)
	assert.Empty(t, h.opened)
}

func TestRunWithPreview(t *testing.T) {
	h := newHarness(t)
	h.cfg.ServerIP = "127.0.0.1"
	h.cfg.ServerPort = "0"

	code := h.run("-n2", "-w")

	assert.Equal(t, capture.ExitOK, code)
	assert.Equal(t, 1, h.cam.closed)
}

func TestPreviewAddr(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "localhost:8080", PreviewAddr(options.Options{Preview: true}, cfg))
	assert.Equal(t, ":9000", PreviewAddr(options.Options{Preview: true, PreviewAddr: ":9000"}, cfg))
}
