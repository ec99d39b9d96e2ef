package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"oledmon/internal/errors"
)

// fileConfig mirrors Config for writing. Durations are written as strings
// ("2s") rather than the nanosecond integers yaml.Marshal would produce
// for time.Duration.
type fileConfig struct {
	Interval string          `yaml:"interval"`
	Panel    PanelConfig     `yaml:"panel"`
	Services []ServiceConfig `yaml:"services"`
}

// Marshal renders the config as YAML suitable for a config file.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Interval: cfg.Interval.String(),
		Panel:    cfg.Panel,
		Services: cfg.Services,
	}
	return yaml.Marshal(fc)
}

// WriteFile writes the config to path, creating parent directories as
// needed. Refuses to overwrite an existing file unless force is set.
func WriteFile(cfg *Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+path,
				"Use --force to overwrite it.")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize config", "")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory",
			"Check permissions on "+filepath.Dir(path))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check permissions on "+path)
	}

	return nil
}
