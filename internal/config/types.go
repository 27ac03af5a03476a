package config

import "time"

// Config is the complete sysmon configuration.
type Config struct {
	// RefreshRate is the number of seconds between collection cycles.
	RefreshRate float64 `yaml:"refresh_rate" mapstructure:"refresh_rate"`

	// MaxHistoryPoints is how many samples each temperature series retains.
	MaxHistoryPoints int `yaml:"max_history_points" mapstructure:"max_history_points"`

	TemperatureThresholds ThresholdValues `yaml:"temperature_thresholds" mapstructure:"temperature_thresholds"`
	Display               DisplayConfig   `yaml:"display" mapstructure:"display"`
	Colors                ColorConfig     `yaml:"colors" mapstructure:"colors"`
	Filters               FilterConfig    `yaml:"filters" mapstructure:"filters"`
}

// ThresholdValues holds warning and critical levels in degrees Celsius.
type ThresholdValues struct {
	Warning  float64 `yaml:"warning" mapstructure:"warning"`
	Critical float64 `yaml:"critical" mapstructure:"critical"`
}

// DisplayConfig controls which panels show and how big graphs are.
type DisplayConfig struct {
	ShowGPU     bool `yaml:"show_gpu" mapstructure:"show_gpu"`
	ShowNetwork bool `yaml:"show_network" mapstructure:"show_network"`

	// GraphHeight is the number of rows in each temperature graph.
	GraphHeight int `yaml:"graph_height" mapstructure:"graph_height"`

	// GraphLength caps how many columns a graph draws.
	GraphLength int `yaml:"graph_length" mapstructure:"graph_length"`
}

// ColorConfig names the colors used for each severity.
// Accepts ANSI names (green, bright_red), 0-255 codes, or #RRGGBB.
type ColorConfig struct {
	Normal   string `yaml:"normal" mapstructure:"normal"`
	Warning  string `yaml:"warning" mapstructure:"warning"`
	Critical string `yaml:"critical" mapstructure:"critical"`
}

// FilterConfig controls which disk partitions are hidden.
type FilterConfig struct {
	ExcludeVirtualFilesystems bool `yaml:"exclude_virtual_filesystems" mapstructure:"exclude_virtual_filesystems"`
	ExcludeLoopDevices        bool `yaml:"exclude_loop_devices" mapstructure:"exclude_loop_devices"`
	ExcludeSnapMounts         bool `yaml:"exclude_snap_mounts" mapstructure:"exclude_snap_mounts"`
}

// RefreshInterval returns RefreshRate as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshRate * float64(time.Second))
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RefreshRate:      1.0,
		MaxHistoryPoints: 100,
		TemperatureThresholds: ThresholdValues{
			Warning:  70,
			Critical: 80,
		},
		Display: DisplayConfig{
			ShowGPU:     true,
			ShowNetwork: false,
			GraphHeight: 8,
			GraphLength: 100,
		},
		Colors: ColorConfig{
			Normal:   "green",
			Warning:  "yellow",
			Critical: "red",
		},
		Filters: FilterConfig{
			ExcludeVirtualFilesystems: true,
			ExcludeLoopDevices:        true,
			ExcludeSnapMounts:         true,
		},
	}
}
