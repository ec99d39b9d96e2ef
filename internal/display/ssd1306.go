package display

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"oledmon/internal/config"
	"oledmon/internal/errors"
	"oledmon/internal/layout"
)

// SSD1306 drives the physical panel over I2C. The controller sits at the
// fixed address 0x3c; only the bus name is configurable.
type SSD1306 struct {
	bus          i2c.BusCloser
	dev          *ssd1306.Dev
	blankOnClose bool
}

// NewSSD1306 initializes the host drivers, opens the configured I2C bus,
// and attaches to the panel. Any failure here is a DRIVER error and is
// fatal at startup.
func NewSSD1306(panel config.PanelConfig) (*SSD1306, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDriver,
			"Failed to initialize peripheral drivers",
			"Check that I2C is enabled (raspi-config on Raspberry Pi OS)")
	}

	bus, err := i2creg.Open(panel.Bus)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDriver,
			fmt.Sprintf("Failed to open I2C bus %q", panel.Bus),
			"List available buses with 'i2cdetect -l' and set panel.bus accordingly")
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{
		W:       panel.Width,
		H:       panel.Height,
		Rotated: panel.Rotated,
	})
	if err != nil {
		bus.Close()
		return nil, errors.WrapWithCode(err, errors.ErrDriver,
			"Failed to attach to the SSD1306 panel",
			"Verify the panel is wired to address 0x3c with 'i2cdetect -y 1'")
	}

	return &SSD1306{
		bus:          bus,
		dev:          dev,
		blankOnClose: panel.BlankOnExit,
	}, nil
}

// Push writes the full frame to the panel.
func (d *SSD1306) Push(f *layout.Frame) error {
	if err := d.dev.Draw(d.dev.Bounds(), f, image.Point{}); err != nil {
		return errors.WrapWithCode(err, errors.ErrDriver,
			"Failed to push frame to the panel",
			"Check the I2C wiring; transient bus errors clear on the next cycle")
	}
	return nil
}

// Close blanks the panel if configured to, then releases the bus.
func (d *SSD1306) Close() error {
	if d.blankOnClose {
		// Halt clears the display RAM and powers the panel down.
		if err := d.dev.Halt(); err != nil {
			d.bus.Close()
			return errors.WrapWithCode(err, errors.ErrDriver,
				"Failed to blank the panel on shutdown", "")
		}
	}
	return d.bus.Close()
}
