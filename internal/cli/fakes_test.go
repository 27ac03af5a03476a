package cli

import (
	"context"
	"fmt"
	osexec "os/exec"
	"time"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/monitor"
)

// stubSource is a SystemSource for a small quiet machine.
type stubSource struct {
	coreTemps []float64
}

func (stubSource) CPUPercent(context.Context) (float64, error) { return 12.5, nil }
func (stubSource) CPUCores(context.Context) (int, error)       { return 4, nil }
func (stubSource) CPUFreq(context.Context) (*monitor.CPUFreq, error) {
	return &monitor.CPUFreq{Current: 3100}, nil
}

func (stubSource) Memory(context.Context) (monitor.MemoryInfo, error) {
	return monitor.MemoryInfo{Total: 8 << 30, Available: 6 << 30, Used: 2 << 30, Percent: 25}, nil
}

func (stubSource) Partitions(context.Context) ([]monitor.DiskInfo, error) {
	return []monitor.DiskInfo{{Device: "/dev/nvme0n1p2", Mountpoint: "/", Fstype: "ext4"}}, nil
}

func (stubSource) DiskUsage(_ context.Context, d monitor.DiskInfo) (monitor.DiskInfo, error) {
	d.Total, d.Used, d.Free, d.Percent = 256<<30, 64<<30, 192<<30, 25
	return d, nil
}

func (stubSource) Network(context.Context) (*monitor.NetworkInfo, error) {
	return &monitor.NetworkInfo{BytesSent: 4096, BytesRecv: 8192, PacketsSent: 10, PacketsRecv: 20}, nil
}

func (s stubSource) CoreTemperatures(context.Context) ([]float64, error) {
	return s.coreTemps, nil
}

func (stubSource) Host(context.Context) (monitor.SystemInfo, error) {
	return monitor.SystemInfo{Hostname: "stubhost", OS: "linux", Kernel: "6.8.0", Uptime: 3 * time.Hour}, nil
}

// missingTools behaves like a machine with none of the external tools.
type missingTools struct{}

func (missingTools) Capture(_ context.Context, _ time.Duration, name string, _ ...string) ([]byte, error) {
	return nil, fmt.Errorf("%s: %w", name, osexec.ErrNotFound)
}

func stubCollector(cfg *config.Config) *monitor.Collector {
	return monitor.NewCollectorWith(stubSource{coreTemps: []float64{45, 47}}, missingTools{}, nil, monitor.OptionsFromConfig(cfg))
}
