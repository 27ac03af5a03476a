package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. SYSMON_REFRESH_RATE.
	EnvPrefix = "SYSMON"
	// PathEnv names a config file to use when --config is not given.
	PathEnv = "SYSMON_CONFIG"
	// GlobalConfigDir is the per-user config directory under $HOME.
	GlobalConfigDir = ".config/system-monitor"
	// GlobalConfigFile is the preferred config file name.
	GlobalConfigFile = "config.yaml"
	// LegacyConfigFile is the JSON file older installs wrote.
	LegacyConfigFile = "config.json"
)

// DefaultPath returns ~/.config/system-monitor/config.yaml, or an empty
// string when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. $SYSMON_CONFIG
// 3. ~/.config/system-monitor/config.yaml
// 4. ~/.config/system-monitor/config.json
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(PathEnv)
	}

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct, or run 'sysmon config init' to create one")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	global := DefaultPath()
	if global == "" {
		return "", nil
	}
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}

	legacy := filepath.Join(filepath.Dir(global), LegacyConfigFile)
	if _, err := os.Stat(legacy); err == nil {
		return legacy, nil
	}

	return "", nil
}

// Load reads config from the specified path, merging it over the defaults
// and applying SYSMON_* environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'sysmon config init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML or JSON")
	}

	return parseConfig(v, path)
}

// LoadOrDefault finds and loads the config. Without a file it returns the
// defaults plus environment overrides. A file that exists but cannot be
// read, parsed, or validated is reported through the default logger and
// the defaults are used instead, so the dashboard always starts.
//
// The returned path is the file that was found, even when it was rejected,
// so callers can still watch it for a fixed version.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		if err != nil {
			logger.Default().Warn("ignoring environment overrides: %v", err)
			return DefaultConfig(), "", nil
		}
		return cfg, "", nil
	}

	cfg, err := Load(path)
	if err == nil {
		err = Validate(cfg)
	}
	if err != nil {
		logger.Default().Warn("could not load config from %s, using defaults: %v", path, err)
		return DefaultConfig(), path, nil
	}
	return cfg, path, nil
}

// newViper returns a viper instance primed with every default so partial
// files and environment overrides resolve against known keys.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers DefaultConfig under viper's dotted keys.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("refresh_rate", d.RefreshRate)
	v.SetDefault("max_history_points", d.MaxHistoryPoints)
	v.SetDefault("temperature_thresholds.warning", d.TemperatureThresholds.Warning)
	v.SetDefault("temperature_thresholds.critical", d.TemperatureThresholds.Critical)
	v.SetDefault("display.show_gpu", d.Display.ShowGPU)
	v.SetDefault("display.show_network", d.Display.ShowNetwork)
	v.SetDefault("display.graph_height", d.Display.GraphHeight)
	v.SetDefault("display.graph_length", d.Display.GraphLength)
	v.SetDefault("colors.normal", d.Colors.Normal)
	v.SetDefault("colors.warning", d.Colors.Warning)
	v.SetDefault("colors.critical", d.Colors.Critical)
	v.SetDefault("filters.exclude_virtual_filesystems", d.Filters.ExcludeVirtualFilesystems)
	v.SetDefault("filters.exclude_loop_devices", d.Filters.ExcludeLoopDevices)
	v.SetDefault("filters.exclude_snap_mounts", d.Filters.ExcludeSnapMounts)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the value types in "+source)
	}

	return cfg, nil
}
