package config

import (
	"fmt"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.RefreshRate <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh_rate must be positive, got %v", cfg.RefreshRate),
			"Set refresh_rate to the number of seconds between updates, like 1.0.")
	}

	if cfg.MaxHistoryPoints < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("max_history_points must be at least 1, got %d", cfg.MaxHistoryPoints),
			"Set max_history_points to how many samples each graph keeps, like 100.")
	}

	if err := validateThresholds(cfg.TemperatureThresholds); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'temperature_thresholds' section in your config.")
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'display' section in your config.")
	}

	if err := validateColors(cfg.Colors); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Use a color name like green or bright_red, a number from 0-255, or #RRGGBB.")
	}

	return nil
}

func validateThresholds(t ThresholdValues) error {
	if t.Warning >= t.Critical {
		return fmt.Errorf("temperature_thresholds.warning (%v) needs to be below critical (%v)", t.Warning, t.Critical)
	}
	return nil
}

func validateDisplay(d DisplayConfig) error {
	if d.GraphHeight < 1 {
		return fmt.Errorf("display.graph_height must be at least 1 (got %d)", d.GraphHeight)
	}
	if d.GraphLength < 1 {
		return fmt.Errorf("display.graph_length must be at least 1 (got %d)", d.GraphLength)
	}
	return nil
}

func validateColors(c ColorConfig) error {
	for _, kv := range []struct{ key, value string }{
		{"colors.normal", c.Normal},
		{"colors.warning", c.Warning},
		{"colors.critical", c.Critical},
	} {
		if _, ok := ui.ParseColor(kv.value); !ok {
			return fmt.Errorf("%s: unknown color %q", kv.key, kv.value)
		}
	}
	return nil
}
