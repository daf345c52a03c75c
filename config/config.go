package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go-pianolearn/led"
)

// ColorConfig holds the LED role colours as "#rrggbb"
type ColorConfig struct {
	Right    string  `yaml:"right"`
	Left     string  `yaml:"left"`
	Wrong    string  `yaml:"wrong"`
	Repress  string  `yaml:"repress"`
	MinLevel float64 `yaml:"minLevel"`
}

// LEDConfig describes the LED strip and how it is driven
type LEDConfig struct {
	Serial   string            `yaml:"serial,omitempty"` // empty: no strip
	Baud     int               `yaml:"baud"`
	FPS      int               `yaml:"fps"`
	Colors   ColorConfig       `yaml:"colors"`
	Rainbow  bool              `yaml:"rainbow"` // colour accompaniment by velocity
	Velocity led.VelocityCurve `yaml:"velocity"`
}

// Config is the main configuration structure
type Config struct {
	Input  string    `yaml:"input,omitempty"`  // port index or name substring
	Output string    `yaml:"output,omitempty"` // port index or name substring
	Hand   string    `yaml:"hand"`
	Mode   string    `yaml:"mode"`
	Speed  float64   `yaml:"speed"`
	Theme  string    `yaml:"theme,omitempty"` // GPL palette for the TUI
	LED    LEDConfig `yaml:"led"`
	Debug  bool      `yaml:"debug"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	p := led.DefaultPalette()
	return &Config{
		Hand:  "right",
		Mode:  "learn",
		Speed: 1,
		LED: LEDConfig{
			Baud: led.DefaultBaud,
			FPS:  led.DefaultFPS,
			Colors: ColorConfig{
				Right:    p.Right.Hex(),
				Left:     p.Left.Hex(),
				Wrong:    p.Wrong.Hex(),
				Repress:  p.Repress.Hex(),
				MinLevel: p.MinLevel,
			},
			Velocity: led.DefaultVelocityCurve,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pianolearn"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Settings missing from the file keep
// their defaults; a missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Palette builds the LED palette from the colour settings
func (c *Config) Palette() (led.Palette, error) {
	var p led.Palette
	colors := []struct {
		dst *led.RGB
		hex string
	}{
		{&p.Right, c.LED.Colors.Right},
		{&p.Left, c.LED.Colors.Left},
		{&p.Wrong, c.LED.Colors.Wrong},
		{&p.Repress, c.LED.Colors.Repress},
	}
	for _, col := range colors {
		rgb, err := led.ParseRGB(col.hex)
		if err != nil {
			return p, err
		}
		*col.dst = rgb
	}
	p.MinLevel = c.LED.Colors.MinLevel
	if c.LED.Rainbow {
		curve := c.LED.Velocity
		p.Rainbow = &curve
	}
	return p, nil
}
