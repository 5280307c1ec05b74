package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StreamConfig is what the capture device is asked for. The device may not honor it.
type StreamConfig struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	FPS    int `json:"fps" yaml:"fps"`
}

type CameraConfig struct {
	DeviceID     string       `json:"device_id" yaml:"device_id"`
	StreamConfig StreamConfig `json:"stream_config" yaml:"stream_config"`
}

type OutputConfig struct {
	ImageDir   string `json:"image_dir" yaml:"image_dir"`
	WindowName string `json:"window_name" yaml:"window_name"`
}

type AppConfig struct {
	ServerPort   string       `json:"server_port" yaml:"server_port"`
	ServerIP     string       `json:"server_ip" yaml:"server_ip"`
	CameraConfig CameraConfig `json:"camera" yaml:"camera"`
	Output       OutputConfig `json:"output" yaml:"output"`
}

// PreviewAddr is the default listen address of the browser preview.
func (c *AppConfig) PreviewAddr() string {
	return c.ServerIP + ":" + c.ServerPort
}

// Default config
func defaultConfig() *AppConfig {
	return &AppConfig{
		CameraConfig: CameraConfig{
			DeviceID: "0",
			StreamConfig: StreamConfig{
				Width:  320,
				Height: 240,
				FPS:    10,
			}},
		Output: OutputConfig{
			ImageDir:   "images",
			WindowName: "Image",
		},
		ServerIP:   "localhost",
		ServerPort: "8080",
	}
}

// Default returns the settings used when no config file exists.
func Default() *AppConfig {
	return defaultConfig()
}

// Dir is ~/.config/framecheck, or its equivalent on the current platform.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine user config directory: %w", err)
	}
	return filepath.Join(configDir, "framecheck"), nil
}

// Load reads config.yaml or config.json from Dir, falling back to defaults
// when neither exists.
func Load() (*AppConfig, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("error getting config path: %w", err)
	}

	for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return defaultConfig(), nil
}

// LoadFile reads a single config file. The format follows the extension.
func LoadFile(path string) (*AppConfig, error) {
	configFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer configFile.Close()

	data, err := io.ReadAll(configFile)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Load the default config to fill in missing fields
	config := defaultConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling config file %s: %w", path, err)
	}

	return config, nil
}
