package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-ledstrip/internal/effect"
	"github.com/coreman2200/funtimes-ledstrip/internal/sequence"
)

var ErrInvalid = errors.New("invalid config")

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0, empty for the first port
	SpeedHz int    `yaml:"speed_hz"` // e.g. 800000
}

type Preview struct {
	Addr string `yaml:"addr"` // e.g. :8080, empty disables
}

type Config struct {
	Length   int               `yaml:"length"`
	FPS      int               `yaml:"fps"`
	Driver   string            `yaml:"driver"` // "spi" | "sim"
	Effect   effect.Spec       `yaml:"effect"`
	Playlist *sequence.Program `yaml:"playlist,omitempty"`

	SPI     SPI     `yaml:"spi,omitempty"`
	Preview Preview `yaml:"preview,omitempty"`
}

// Default mirrors the command line defaults.
func Default() *Config {
	return &Config{
		Length:  30,
		FPS:     25,
		Driver:  "sim",
		Effect:  effect.Spec{Name: "rainbow"},
		Preview: Preview{Addr: ":8080"},
	}
}

// FramePeriod converts FPS into the engine's tick period.
func (c *Config) FramePeriod() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FPS)
}

func (c *Config) Validate() error {
	if c.Length < 1 {
		return fmt.Errorf("%w: length %d", ErrInvalid, c.Length)
	}
	if c.FPS < 1 || c.FPS > 1000 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	}
	switch c.Driver {
	case "", "sim", "spi":
	default:
		return fmt.Errorf("%w: driver %q", ErrInvalid, c.Driver)
	}
	if c.Playlist == nil && c.Effect.Name == "" {
		return fmt.Errorf("%w: no effect or playlist", ErrInvalid)
	}
	if c.Playlist != nil && len(c.Playlist.Clips) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, sequence.ErrEmptyProgram)
	}
	return nil
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
