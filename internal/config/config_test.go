package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"camera": {"device_id": "/dev/video2", "stream_config": {"fps": 30}}}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/dev/video2", cfg.CameraConfig.DeviceID)
	assert.Equal(t, 30, cfg.CameraConfig.StreamConfig.FPS)
	// untouched fields keep their defaults
	assert.Equal(t, 320, cfg.CameraConfig.StreamConfig.Width)
	assert.Equal(t, "images", cfg.Output.ImageDir)
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server_port: "9090"
camera:
  stream_config:
    width: 640
    height: 480
output:
  window_name: Preview
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9090", cfg.PreviewAddr())
	assert.Equal(t, 640, cfg.CameraConfig.StreamConfig.Width)
	assert.Equal(t, 480, cfg.CameraConfig.StreamConfig.Height)
	assert.Equal(t, 10, cfg.CameraConfig.StreamConfig.FPS)
	assert.Equal(t, "Preview", cfg.Output.WindowName)
	assert.Equal(t, "0", cfg.CameraConfig.DeviceID)
}

func TestLoadFileMalformed(t *testing.T) {
	path := writeFile(t, "config.json", `{"camera": `)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}
