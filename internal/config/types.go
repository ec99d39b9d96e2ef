package config

import (
	"strings"
	"time"
)

// Config is the complete oledmon configuration, loaded once at startup.
// Nothing here is re-read during a run; changing the file requires a
// restart.
type Config struct {
	// Interval between poll cycles.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Panel describes the attached OLED and how to reach it.
	Panel PanelConfig `yaml:"panel" mapstructure:"panel"`

	// Services to monitor, in display order (left to right on the panel).
	Services []ServiceConfig `yaml:"services" mapstructure:"services"`
}

// PanelConfig describes the display geometry and bus address.
type PanelConfig struct {
	// Width and Height in pixels. SSD1306 modules are page-organized,
	// so Height must be a multiple of 8.
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`

	// Bus is the I2C bus name (e.g. "/dev/i2c-1" or "1"). Empty means
	// the first available bus. The SSD1306 itself sits at the fixed
	// 0x3C address.
	Bus string `yaml:"bus" mapstructure:"bus"`

	// Rotated flips the panel 180 degrees for upside-down mounts.
	Rotated bool `yaml:"rotated" mapstructure:"rotated"`

	// BlankOnExit clears the panel during shutdown instead of leaving
	// the last frame lit.
	BlankOnExit bool `yaml:"blank_on_exit" mapstructure:"blank_on_exit"`
}

// ServiceConfig is one monitored systemd unit.
type ServiceConfig struct {
	// Unit is the full unit name, e.g. "nginx.service".
	Unit string `yaml:"unit" mapstructure:"unit"`

	// Abbrev is the short label drawn in the unit's cell on the panel.
	// Defaults to the first three letters of the unit name, uppercased.
	Abbrev string `yaml:"abbrev" mapstructure:"abbrev"`
}

// DeriveAbbrev returns the effective cell label for the service.
func (s ServiceConfig) DeriveAbbrev() string {
	if s.Abbrev != "" {
		return s.Abbrev
	}
	name := strings.TrimSuffix(s.Unit, ".service")
	name = strings.ToUpper(name)
	if len(name) > MaxAbbrevLen {
		name = name[:MaxAbbrevLen]
	}
	return name
}

// MaxAbbrevLen is the longest label that fits a service cell with the
// built-in 7px font.
const MaxAbbrevLen = 3

// MinInterval guards against poll cadences the I2C bus cannot keep up with.
const MinInterval = 250 * time.Millisecond

// MinPanelHeight is the shortest panel the band layout fits: the 13px
// text face must clear the uptime band before the service band starts at
// 5/16 of the height. 128x32 modules are below this and are rejected.
const MinPanelHeight = 48

// DefaultConfig returns a Config with sensible defaults for the common
// 128x64 module on the first I2C bus.
func DefaultConfig() *Config {
	return &Config{
		Interval: 2 * time.Second,
		Panel: PanelConfig{
			Width:       128,
			Height:      64,
			Bus:         "",
			Rotated:     false,
			BlankOnExit: true,
		},
		Services: nil,
	}
}
