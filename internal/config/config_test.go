package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-ledstrip/internal/effect"
	"github.com/coreman2200/funtimes-ledstrip/internal/sequence"
)

const sample = `
length: 60
fps: 50
driver: spi
effect:
  name: running-lights
  color1: "#ff0000"
  color2: "#0000ff"
  step_ms: 50
  wave_size: 2
playlist:
  loop: true
  clips:
    - effect: {name: rainbow}
      duration_s: 10
    - effect: {name: breath, color1: "#00ff00"}
      duration_s: 8
spi:
  dev: /dev/spidev0.0
  speed_hz: 800000
preview:
  addr: ":9090"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 60, c.Length)
	assert.Equal(t, 20*time.Millisecond, c.FramePeriod())
	assert.Equal(t, "spi", c.Driver)
	assert.Equal(t, effect.Spec{
		Name: "running-lights", Color1: "#ff0000", Color2: "#0000ff", StepMS: 50, WaveSize: 2,
	}, c.Effect)
	require.NotNil(t, c.Playlist)
	assert.True(t, c.Playlist.Loop)
	assert.Len(t, c.Playlist.Clips, 2)
	assert.Equal(t, "breath", c.Playlist.Clips[1].Effect.Name)
	assert.Equal(t, 8.0, c.Playlist.Clips[1].DurationS)
	assert.Equal(t, "/dev/spidev0.0", c.SPI.Dev)
	assert.Equal(t, ":9090", c.Preview.Addr)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("length: [1"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	c := Default()
	c.Playlist = &sequence.Program{Clips: []sequence.Clip{{Effect: effect.Spec{Name: "ping-pong"}, DurationS: 3}}}
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestValidate(t *testing.T) {
	var tests = []struct {
		name string
		edit func(c *Config)
	}{
		{"length", func(c *Config) { c.Length = 0 }},
		{"fps", func(c *Config) { c.FPS = 0 }},
		{"driver", func(c *Config) { c.Driver = "pwm" }},
		{"nothing to play", func(c *Config) { c.Effect = effect.Spec{} }},
		{"empty playlist", func(c *Config) { c.Playlist = &sequence.Program{} }},
	}
	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.edit(c)
			assert.True(t, errors.Is(c.Validate(), ErrInvalid))
		})
	}
}
