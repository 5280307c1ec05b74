// pkg/camera/opencv.go
package camera

import (
	"fmt"
	"strconv"

	"github.com/AlverezYari/framecheck/internal/capture"
	"github.com/AlverezYari/framecheck/internal/logging"
	"gocv.io/x/gocv"
)

// Capture is an open OpenCV capture device. It reuses a single Mat, so a
// frame returned by Read is only valid until the next Read.
type Capture struct {
	id    string
	vc    *gocv.VideoCapture
	frame gocv.Mat
}

// Open opens deviceID, which is either a device index ("0") or a path
// ("/dev/video2"), and applies config on a best-effort basis.
func Open(deviceID string, config StreamConfig) (*Capture, error) {
	var device interface{} = deviceID
	if index, err := strconv.Atoi(deviceID); err == nil {
		device = index
	}

	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w: camera %s: %v", capture.ErrDevice, deviceID, err)
	}

	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: camera %s is not open", capture.ErrDevice, deviceID)
	}

	c := &Capture{id: deviceID, vc: vc, frame: gocv.NewMat()}
	c.configure(config)
	return c, nil
}

// configure asks the device for the requested properties. Drivers are free
// to ignore any of them; the values actually in effect are only logged.
func (c *Capture) configure(config StreamConfig) {
	if config.Width > 0 {
		c.vc.Set(gocv.VideoCaptureFrameWidth, float64(config.Width))
	}
	if config.Height > 0 {
		c.vc.Set(gocv.VideoCaptureFrameHeight, float64(config.Height))
	}
	if config.Framerate > 0 {
		c.vc.Set(gocv.VideoCaptureFPS, float64(config.Framerate))
	}

	logging.Infof("camera %s: requested %dx%d@%d, device reports %.0fx%.0f@%.1f",
		c.id, config.Width, config.Height, config.Framerate,
		c.vc.Get(gocv.VideoCaptureFrameWidth),
		c.vc.Get(gocv.VideoCaptureFrameHeight),
		c.vc.Get(gocv.VideoCaptureFPS))
}

// Read blocks until the device delivers the next frame.
func (c *Capture) Read() (capture.Frame, error) {
	if ok := c.vc.Read(&c.frame); !ok {
		return nil, fmt.Errorf("failed to read frame from camera %s", c.id)
	}
	return &c.frame, nil
}

func (c *Capture) Close() error {
	c.frame.Close()
	if err := c.vc.Close(); err != nil {
		return fmt.Errorf("error closing camera %s: %v", c.id, err)
	}
	return nil
}

// ScanDevices probes the first few device indexes and reports those that open.
func ScanDevices() []Device {
	var devices []Device
	for i := 0; i < maxScan; i++ {
		vc, err := gocv.OpenVideoCapture(i)
		if err != nil {
			continue
		}
		available := vc.IsOpened()
		vc.Close()
		if !available {
			continue
		}
		devices = append(devices, Device{
			ID:   strconv.Itoa(i),
			Name: fmt.Sprintf("Camera %d", i),
		})
	}
	return devices
}

func asMat(f capture.Frame) (*gocv.Mat, error) {
	mat, ok := f.(*gocv.Mat)
	if !ok {
		return nil, fmt.Errorf("unsupported frame type %T", f)
	}
	return mat, nil
}

// ImageWriter saves frames with OpenCV's encoders. The file extension picks
// the format, and an unknown one fails the write.
type ImageWriter struct{}

func (ImageWriter) Write(path string, f capture.Frame) error {
	mat, err := asMat(f)
	if err != nil {
		return err
	}
	if ok := gocv.IMWrite(path, *mat); !ok {
		return fmt.Errorf("failed to write %s", path)
	}
	return nil
}

// Window shows frames in a HighGUI window.
type Window struct {
	win   *gocv.Window
	title string
}

func NewWindow(name string) *Window {
	return &Window{win: gocv.NewWindow(name), title: name}
}

func (w *Window) Show(label string, f capture.Frame) {
	mat, err := asMat(f)
	if err != nil {
		logging.Debugf("window: %v", err)
		return
	}
	if label != "" && label != w.title {
		w.win.SetWindowTitle(label)
		w.title = label
	}
	w.win.IMShow(*mat)
	// HighGUI only paints while processing events.
	w.win.WaitKey(1)
}

func (w *Window) Close() error {
	return w.win.Close()
}

// EncodeJPEG returns a standalone JPEG copy of the frame.
func EncodeJPEG(f capture.Frame) ([]byte, error) {
	mat, err := asMat(f)
	if err != nil {
		return nil, err
	}
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %v", err)
	}
	defer buf.Close()

	b := buf.GetBytes()
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}
