// Package config provides configuration loading for the seat
// simulator.
//
// Configuration is optional. When no file is given via the --config
// flag or the CINEMA_CONFIG environment variable, the defaults match
// the classic hall: 8 rows of 12 seats.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/IhorHliba/Cinema-Seat-Simulator/hall"
)

// EnvConfigPath names the environment variable consulted for the
// config file location when --config is not passed.
const EnvConfigPath = "CINEMA_CONFIG"

// Config is the full configuration for a session.
type Config struct {
	// Rows and Cols size the hall. Both must be positive.
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	// DataFile overrides the default snapshot location under the
	// user config directory.
	DataFile string `yaml:"data_file"`

	// SeatWidth, GapX, and GapY control the rendered cell geometry.
	// Zero values fall back to the default layout.
	SeatWidth int `yaml:"seat_width"`
	GapX      int `yaml:"gap_x"`
	GapY      int `yaml:"gap_y"`
}

// Default returns the built-in configuration.
func Default() Config {
	layout := hall.DefaultLayout()
	return Config{
		Rows:      8,
		Cols:      12,
		SeatWidth: layout.SeatWidth,
		GapX:      layout.GapX,
		GapY:      layout.GapY,
	}
}

// Load reads configuration from path. An empty path falls back to
// CINEMA_CONFIG, and when that is unset too the defaults are returned.
// A named file that cannot be read or parsed is an error: explicit
// configuration never fails silently.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports configuration errors that must stop startup.
func (c Config) Validate() error {
	if c.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", c.Rows)
	}
	if c.Cols <= 0 {
		return fmt.Errorf("cols must be positive, got %d", c.Cols)
	}
	if c.SeatWidth < 0 {
		return fmt.Errorf("seat_width must not be negative, got %d", c.SeatWidth)
	}
	return nil
}

// Layout converts the configured cell geometry into a hall layout.
func (c Config) Layout() hall.Layout {
	return hall.Layout{SeatWidth: c.SeatWidth, GapX: c.GapX, GapY: c.GapY}
}
