package monitor

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/exec"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/monitor/parsers"
)

// ToolTimeout bounds each external tool call (sensors, nvidia-settings, nvidia-smi).
const ToolTimeout = 5 * time.Second

// Options controls what the collector gathers.
type Options struct {
	ShowGPU     bool
	ShowNetwork bool
	Filters     config.FilterConfig
}

// OptionsFromConfig picks the collector settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ShowGPU:     cfg.Display.ShowGPU,
		ShowNetwork: cfg.Display.ShowNetwork,
		Filters:     cfg.Filters,
	}
}

// Collector gathers one Snapshot per refresh cycle.
type Collector struct {
	source SystemSource
	runner exec.Runner
	log    logger.Logger

	mu      sync.Mutex
	opts    Options
	missing map[string]bool // tools found to be absent; not retried
}

// NewCollector creates a collector for this machine.
func NewCollector(opts Options) *Collector {
	return NewCollectorWith(NewSystemSource(), exec.LocalRunner{}, logger.NewEnvLogger("[collector]"), opts)
}

// NewCollectorWith creates a collector with explicit dependencies.
func NewCollectorWith(source SystemSource, runner exec.Runner, log logger.Logger, opts Options) *Collector {
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{
		source:  source,
		runner:  runner,
		log:     log,
		opts:    opts,
		missing: make(map[string]bool),
	}
}

// SetOptions replaces the collection options, e.g. after a config reload.
func (c *Collector) SetOptions(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts = opts
}

func (c *Collector) options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// Collect gathers everything for one cycle. It never fails: a source that
// errors leaves its field nil or zero and the problem is logged at debug level.
func (c *Collector) Collect(ctx context.Context) *Snapshot {
	opts := c.options()
	snap := &Snapshot{Timestamp: time.Now()}

	snap.CPU = c.collectCPU(ctx)

	if m, err := c.source.Memory(ctx); err != nil {
		c.log.Debug("memory: %v", err)
	} else {
		snap.Memory = m
	}

	snap.Disks = c.collectDisks(ctx, opts.Filters)

	if opts.ShowGPU {
		snap.GPU = c.gpuInfo(ctx)
		snap.GPUTemperature = c.gpuTemperature(ctx)
		if snap.GPUTemperature == nil && snap.GPU != nil && snap.GPU.Temperature != nil {
			t := float64(*snap.GPU.Temperature)
			snap.GPUTemperature = &t
		}
	}

	if opts.ShowNetwork {
		if n, err := c.source.Network(ctx); err != nil {
			c.log.Debug("network: %v", err)
		} else {
			snap.Network = n
		}
	}

	if sys, err := c.source.Host(ctx); err != nil {
		c.log.Debug("host info: %v", err)
	} else {
		snap.System = sys
	}

	return snap
}

func (c *Collector) collectCPU(ctx context.Context) CPUInfo {
	var info CPUInfo

	if p, err := c.source.CPUPercent(ctx); err != nil {
		c.log.Debug("cpu percent: %v", err)
	} else {
		info.Percent = p
	}

	if n, err := c.source.CPUCores(ctx); err != nil {
		c.log.Debug("cpu cores: %v", err)
	} else {
		info.Cores = n
	}

	if f, err := c.source.CPUFreq(ctx); err != nil {
		c.log.Debug("cpu freq: %v", err)
	} else {
		info.Freq = f
	}

	info.Temperature = c.cpuTemperature(ctx)
	return info
}

func (c *Collector) collectDisks(ctx context.Context, filters config.FilterConfig) []DiskInfo {
	parts, err := c.source.Partitions(ctx)
	if err != nil {
		c.log.Debug("disk partitions: %v", err)
		return nil
	}

	// Filter before statting so pseudo filesystems are never touched.
	parts = FilterPartitions(parts, filters)

	disks := make([]DiskInfo, 0, len(parts))
	for _, p := range parts {
		d, err := c.source.DiskUsage(ctx, p)
		if err != nil {
			// Unreadable mounts (permissions, stale network shares) are skipped.
			c.log.Debug("disk usage %s: %v", p.Mountpoint, err)
			continue
		}
		disks = append(disks, d)
	}
	return disks
}

// cpuTemperature averages the per-core readings from `sensors`, falling
// back to the kernel hwmon readings when lm-sensors is unavailable.
func (c *Collector) cpuTemperature(ctx context.Context) *float64 {
	if out, ok := c.run(ctx, "sensors"); ok {
		if t, found := parsers.ParseSensorsCPUTemp(string(out)); found {
			v := float64(t)
			return &v
		}
	}

	readings, err := c.source.CoreTemperatures(ctx)
	if err != nil {
		c.log.Debug("hwmon temperatures: %v", err)
	}
	whole := make([]int, 0, len(readings))
	for _, r := range readings {
		whole = append(whole, int(math.Floor(r)))
	}
	if t, found := parsers.MeanFloor(whole); found {
		v := float64(t)
		return &v
	}
	return nil
}

func (c *Collector) gpuTemperature(ctx context.Context) *float64 {
	out, ok := c.run(ctx, "nvidia-settings", "-q", "[gpu:0]/GPUCoreTemp")
	if !ok {
		return nil
	}
	t, found := parsers.ParseNvidiaSettingsTemp(string(out))
	if !found {
		return nil
	}
	v := float64(t)
	return &v
}

func (c *Collector) gpuInfo(ctx context.Context) *GPUInfo {
	out, ok := c.run(ctx, "nvidia-smi",
		"--query-gpu="+parsers.NvidiaSMIQuery,
		"--format=csv,noheader,nounits")
	if !ok {
		return nil
	}

	gpu, err := parsers.ParseNvidiaSMI(string(out))
	if err != nil {
		c.log.Debug("nvidia-smi: %v", err)
		return nil
	}
	if gpu == nil {
		return nil
	}
	return &GPUInfo{
		Name:          gpu.Name,
		Temperature:   gpu.Temperature,
		Utilization:   gpu.Utilization,
		MemoryUsedMB:  gpu.MemoryUsedMB,
		MemoryTotalMB: gpu.MemoryTotalMB,
		PowerDraw:     gpu.PowerDraw,
	}
}

// run executes a tool with ToolTimeout. A tool that turns out not to be
// installed is remembered and skipped on later cycles.
func (c *Collector) run(ctx context.Context, name string, args ...string) ([]byte, bool) {
	c.mu.Lock()
	skip := c.missing[name]
	c.mu.Unlock()
	if skip {
		return nil, false
	}

	out, err := c.runner.Capture(ctx, ToolTimeout, name, args...)
	if err != nil {
		if exec.IsNotFound(err) {
			c.mu.Lock()
			c.missing[name] = true
			c.mu.Unlock()
			c.log.Debug("%s not installed, skipping from now on", name)
		} else {
			c.log.Debug("%s: %v", name, err)
		}
		return nil, false
	}
	return out, true
}
