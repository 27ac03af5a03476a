package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/sensors"
)

// SystemSource reads OS metrics. The collector only talks to this
// interface so tests can feed it fixed numbers.
type SystemSource interface {
	CPUPercent(ctx context.Context) (float64, error)
	CPUCores(ctx context.Context) (int, error)
	CPUFreq(ctx context.Context) (*CPUFreq, error)
	Memory(ctx context.Context) (MemoryInfo, error)
	// Partitions lists mounts with Device, Mountpoint and Fstype set.
	Partitions(ctx context.Context) ([]DiskInfo, error)
	// DiskUsage fills the size fields of d.
	DiskUsage(ctx context.Context, d DiskInfo) (DiskInfo, error)
	Network(ctx context.Context) (*NetworkInfo, error)
	// CoreTemperatures returns per-core CPU readings from the kernel's
	// hwmon drivers, used when lm-sensors is not installed.
	CoreTemperatures(ctx context.Context) ([]float64, error)
	Host(ctx context.Context) (SystemInfo, error)
}

// cpuSensorKeys are the hwmon drivers that report CPU core temperatures.
var cpuSensorKeys = []string{"coretemp", "k10temp"}

// psSource implements SystemSource with gopsutil.
type psSource struct{}

// NewSystemSource returns the gopsutil-backed source for this machine.
func NewSystemSource() SystemSource {
	return psSource{}
}

// CPUPercent is non-blocking: gopsutil measures since the previous call.
func (psSource) CPUPercent(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, nil
	}
	return pcts[0], nil
}

func (psSource) CPUCores(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

func (psSource) CPUFreq(ctx context.Context) (*CPUFreq, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 || infos[0].Mhz == 0 {
		return nil, nil
	}
	return &CPUFreq{Current: infos[0].Mhz}, nil
}

func (psSource) Memory(ctx context.Context) (MemoryInfo, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryInfo{}, err
	}
	info := MemoryInfo{
		Total:     vm.Total,
		Available: vm.Available,
		Used:      vm.Used,
		Percent:   vm.UsedPercent,
	}

	// Swap is optional; a machine without it still has memory figures.
	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		info.SwapTotal = sw.Total
		info.SwapUsed = sw.Used
		info.SwapPercent = sw.UsedPercent
	}
	return info, nil
}

func (psSource) Partitions(ctx context.Context) ([]DiskInfo, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]DiskInfo, 0, len(parts))
	for _, p := range parts {
		out = append(out, DiskInfo{Device: p.Device, Mountpoint: p.Mountpoint, Fstype: p.Fstype})
	}
	return out, nil
}

func (psSource) DiskUsage(ctx context.Context, d DiskInfo) (DiskInfo, error) {
	u, err := disk.UsageWithContext(ctx, d.Mountpoint)
	if err != nil {
		return d, err
	}
	d.Total = u.Total
	d.Used = u.Used
	d.Free = u.Free
	d.Percent = u.UsedPercent
	return d, nil
}

func (psSource) Network(ctx context.Context) (*NetworkInfo, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(counters) == 0 {
		return nil, nil
	}
	c := counters[0]
	return &NetworkInfo{
		BytesSent:   c.BytesSent,
		BytesRecv:   c.BytesRecv,
		PacketsSent: c.PacketsSent,
		PacketsRecv: c.PacketsRecv,
	}, nil
}

func (psSource) CoreTemperatures(ctx context.Context) ([]float64, error) {
	// gopsutil returns partial readings alongside a warnings error, so
	// only give up when nothing came back.
	stats, err := sensors.TemperaturesWithContext(ctx)
	if len(stats) == 0 {
		return nil, err
	}

	var temps []float64
	for _, s := range stats {
		if !isCPUCoreSensor(s.SensorKey) || s.Temperature <= 0 {
			continue
		}
		temps = append(temps, s.Temperature)
	}
	return temps, nil
}

func (psSource) Host(ctx context.Context) (SystemInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return SystemInfo{}, err
	}
	osName := info.Platform
	if info.PlatformVersion != "" {
		osName += " " + info.PlatformVersion
	}
	if osName == "" {
		osName = info.OS
	}
	return SystemInfo{
		Hostname: info.Hostname,
		OS:       osName,
		Kernel:   info.KernelVersion,
		Uptime:   time.Duration(info.Uptime) * time.Second,
	}, nil
}

// isCPUCoreSensor matches keys like "coretemp_core_0_input" or
// "k10temp_tctl", but not the package-level coretemp reading.
func isCPUCoreSensor(key string) bool {
	key = strings.ToLower(key)
	for _, prefix := range cpuSensorKeys {
		if !strings.Contains(key, prefix) {
			continue
		}
		if prefix == "coretemp" {
			return strings.Contains(key, "core_")
		}
		return true
	}
	return false
}
