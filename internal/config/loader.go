package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"oledmon/internal/errors"
)

const (
	// ConfigFileName is the default config file name in the working directory.
	ConfigFileName = "oledmon.yaml"
	// SystemConfigPath is the system-wide config location.
	SystemConfigPath = "/etc/oledmon/config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'oledmon init' to create one, or specify a path with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. oledmon.yaml in the current directory
// 3. /etc/oledmon/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err == nil {
		localConfig := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(localConfig); err == nil {
			return localConfig, nil
		}
	}

	if _, err := os.Stat(SystemConfigPath); err == nil {
		return SystemConfigPath, nil
	}

	return "", nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	return cfg, nil
}

// setDefaults registers defaults so partial config files work.
func setDefaults(v *viper.Viper) {
	v.SetDefault("interval", "2s")
	v.SetDefault("panel.width", 128)
	v.SetDefault("panel.height", 64)
	v.SetDefault("panel.bus", "")
	v.SetDefault("panel.rotated", false)
	v.SetDefault("panel.blank_on_exit", true)
}
