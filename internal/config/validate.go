package config

import (
	"fmt"
	"strings"

	"oledmon/internal/errors"
)

// Validate checks the configuration before the monitor loop starts. This is
// the only place configuration problems are allowed to be fatal; once the
// loop is running, failures are recovered per-fact or per-cycle instead.
func Validate(cfg *Config) error {
	if err := validatePanel(cfg.Panel); err != nil {
		return err
	}
	if err := validateInterval(cfg); err != nil {
		return err
	}
	return validateServices(cfg.Services)
}

func validateInterval(cfg *Config) error {
	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Poll interval %v is below the %v minimum", cfg.Interval, MinInterval),
			"The I2C bus can't refresh that fast - try 1s or 2s.")
	}
	return nil
}

func validatePanel(panel PanelConfig) error {
	if panel.Width < 8 || panel.Width > 128 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Panel width %d is out of range", panel.Width),
			"SSD1306 modules are at most 128 pixels wide - the common full-size module is 128x64.")
	}
	if panel.Height < MinPanelHeight || panel.Height > 64 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Panel height %d is out of range", panel.Height),
			fmt.Sprintf("The three-band layout needs %d to 64 rows; short modules like 128x32 cannot fit the text bands.", MinPanelHeight))
	}
	if panel.Height%8 != 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Panel height %d is not a multiple of 8", panel.Height),
			"The SSD1306 addresses pixels in 8-row pages, so height must be page-aligned.")
	}
	return nil
}

func validateServices(services []ServiceConfig) error {
	if len(services) == 0 {
		return errors.New(errors.ErrConfig,
			"No services configured",
			"Add at least one unit under 'services' in the config file, or run 'oledmon init'.")
	}

	seen := make(map[string]bool, len(services))
	for i, svc := range services {
		unit := strings.TrimSpace(svc.Unit)
		if unit == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Service entry %d has an empty unit name", i+1),
				"Every entry needs a 'unit', like 'nginx.service'.")
		}
		if seen[unit] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Service '%s' is listed twice", unit),
				"Each unit gets one cell on the panel - remove the duplicate entry.")
		}
		seen[unit] = true

		if len(svc.Abbrev) > MaxAbbrevLen {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Abbreviation '%s' for %s is too long", svc.Abbrev, unit),
				fmt.Sprintf("Cell labels are at most %d characters with the built-in font.", MaxAbbrevLen))
		}
	}

	return nil
}
