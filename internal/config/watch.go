package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
)

// Watch calls onChange with the reloaded config every time the file at
// path is written. Reloads that fail to parse or validate are logged and
// skipped, so onChange only ever sees a valid config.
//
// The watch lives as long as the process; viper offers no way to stop it.
func Watch(path string, onChange func(*Config)) error {
	if path == "" {
		return errors.New(errors.ErrConfig, "No config file to watch", "")
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML or JSON")
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := reload(path)
		if err != nil {
			logger.Default().Warn("ignoring config change in %s: %v", e.Name, err)
			return
		}
		logger.Default().Info("reloaded config from %s", e.Name)
		onChange(cfg)
	})
	v.WatchConfig()

	return nil
}

// reload reads path from scratch so keys removed from the file fall back
// to their defaults instead of keeping stale values.
func reload(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
