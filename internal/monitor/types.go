package monitor

import "time"

// Snapshot is everything one collection cycle gathered. Optional readings
// are nil when their source was unavailable.
type Snapshot struct {
	Timestamp time.Time
	CPU       CPUInfo
	Memory    MemoryInfo
	Disks     []DiskInfo
	GPU       *GPUInfo // nil if nvidia-smi is missing or failed

	// GPUTemperature comes from nvidia-settings, separately from GPU.
	GPUTemperature *float64

	Network *NetworkInfo // nil unless the network panel is enabled
	System  SystemInfo
}

// CPUInfo contains CPU usage and temperature.
type CPUInfo struct {
	Percent     float64
	Cores       int
	Freq        *CPUFreq
	Temperature *float64
}

// CPUFreq is the CPU clock in MHz.
type CPUFreq struct {
	Current float64
}

// MemoryInfo contains RAM and swap usage in bytes.
type MemoryInfo struct {
	Total       uint64
	Available   uint64
	Used        uint64
	Percent     float64
	SwapTotal   uint64
	SwapUsed    uint64
	SwapPercent float64
}

// DiskInfo is one mounted partition and its usage in bytes.
type DiskInfo struct {
	Device     string
	Mountpoint string
	Fstype     string
	Total      uint64
	Used       uint64
	Free       uint64
	Percent    float64
}

// GPUInfo contains GPU details from nvidia-smi.
type GPUInfo struct {
	Name          string
	Temperature   *int
	Utilization   *int
	MemoryUsedMB  *int
	MemoryTotalMB *int
	PowerDraw     *float64
}

// MemoryPercent returns VRAM usage, or false when either figure is missing
// or the total is zero.
func (g *GPUInfo) MemoryPercent() (float64, bool) {
	if g == nil || g.MemoryUsedMB == nil || g.MemoryTotalMB == nil || *g.MemoryTotalMB == 0 {
		return 0, false
	}
	return float64(*g.MemoryUsedMB) / float64(*g.MemoryTotalMB) * 100, true
}

// NetworkInfo contains machine-wide network counters since boot.
type NetworkInfo struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
}

// SystemInfo contains general system information.
type SystemInfo struct {
	Hostname string
	OS       string
	Kernel   string
	Uptime   time.Duration
}
