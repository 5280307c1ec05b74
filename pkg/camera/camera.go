// pkg/camera/camera.go
package camera

// Device describes a capture device found by ScanDevices.
type Device struct {
	ID   string
	Name string
}

// StreamConfig holds the capture properties requested on open. Zero values
// leave the device default in place.
type StreamConfig struct {
	Width     int
	Height    int
	Framerate int
}

// maxScan bounds how many device indexes ScanDevices probes.
const maxScan = 5
