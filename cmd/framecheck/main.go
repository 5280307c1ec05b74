// cmd/framecheck/main.go
package main

import (
	"fmt"
	"os"

	"github.com/AlverezYari/framecheck/internal/app"
	"github.com/AlverezYari/framecheck/internal/config"
	"github.com/AlverezYari/framecheck/pkg/camera"
)

func main() {
	os.Exit(app.Run(os.Args, app.Deps{
		LoadConfig:  config.Load,
		OpenCamera:  openCamera,
		ScanDevices: scanDevices,
		NewWindow:   func(name string) app.Window { return camera.NewWindow(name) },
		Sink:        camera.ImageWriter{},
		Encode:      camera.EncodeJPEG,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}))
}

func openCamera(c config.CameraConfig) (app.Camera, error) {
	cam, err := camera.Open(c.DeviceID, camera.StreamConfig{
		Width:     c.StreamConfig.Width,
		Height:    c.StreamConfig.Height,
		Framerate: c.StreamConfig.FPS,
	})
	if err != nil {
		return nil, err
	}
	return cam, nil
}

func scanDevices() []string {
	var found []string
	for _, d := range camera.ScanDevices() {
		found = append(found, fmt.Sprintf("%s (%s)", d.ID, d.Name))
	}
	return found
}
