package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero refresh", func(c *Config) { c.RefreshRate = 0 }, "refresh_rate must be positive"},
		{"negative refresh", func(c *Config) { c.RefreshRate = -1 }, "refresh_rate must be positive"},
		{"fractional refresh", func(c *Config) { c.RefreshRate = 0.1 }, ""},
		{"no history", func(c *Config) { c.MaxHistoryPoints = 0 }, "max_history_points must be at least 1"},
		{"one history point", func(c *Config) { c.MaxHistoryPoints = 1 }, ""},
		{"warning equals critical", func(c *Config) {
			c.TemperatureThresholds = ThresholdValues{Warning: 80, Critical: 80}
		}, "needs to be below critical"},
		{"warning above critical", func(c *Config) {
			c.TemperatureThresholds = ThresholdValues{Warning: 90, Critical: 80}
		}, "needs to be below critical"},
		{"negative warning", func(c *Config) {
			c.TemperatureThresholds = ThresholdValues{Warning: -5, Critical: 80}
		}, ""},
		{"zero graph height", func(c *Config) { c.Display.GraphHeight = 0 }, "graph_height"},
		{"zero graph length", func(c *Config) { c.Display.GraphLength = 0 }, "graph_length"},
		{"unknown color", func(c *Config) { c.Colors.Warning = "chartreuse" }, `colors.warning: unknown color "chartreuse"`},
		{"ansi code color", func(c *Config) { c.Colors.Normal = "42" }, ""},
		{"hex color", func(c *Config) { c.Colors.Critical = "#ff0000" }, ""},
		{"bright color name", func(c *Config) { c.Colors.Critical = "bright_red" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}
