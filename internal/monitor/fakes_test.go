package monitor

import (
	"context"
	"errors"
	"fmt"
	osexec "os/exec"
	"strings"
	"sync"
	"time"
)

var errUnavailable = errors.New("unavailable")

// fakeSource is a SystemSource returning fixed readings.
type fakeSource struct {
	percent    float64
	cores      int
	freq       *CPUFreq
	memory     MemoryInfo
	partitions []DiskInfo
	usage      map[string]DiskInfo // by mountpoint
	network    *NetworkInfo
	coreTemps  []float64
	host       SystemInfo

	failAll bool

	mu      sync.Mutex
	statted []string
}

func (f *fakeSource) CPUPercent(context.Context) (float64, error) {
	if f.failAll {
		return 0, errUnavailable
	}
	return f.percent, nil
}

func (f *fakeSource) CPUCores(context.Context) (int, error) {
	if f.failAll {
		return 0, errUnavailable
	}
	return f.cores, nil
}

func (f *fakeSource) CPUFreq(context.Context) (*CPUFreq, error) {
	if f.failAll || f.freq == nil {
		return nil, errUnavailable
	}
	return f.freq, nil
}

func (f *fakeSource) Memory(context.Context) (MemoryInfo, error) {
	if f.failAll {
		return MemoryInfo{}, errUnavailable
	}
	return f.memory, nil
}

func (f *fakeSource) Partitions(context.Context) ([]DiskInfo, error) {
	if f.failAll {
		return nil, errUnavailable
	}
	return f.partitions, nil
}

func (f *fakeSource) DiskUsage(_ context.Context, d DiskInfo) (DiskInfo, error) {
	f.mu.Lock()
	f.statted = append(f.statted, d.Mountpoint)
	f.mu.Unlock()

	u, ok := f.usage[d.Mountpoint]
	if !ok {
		return DiskInfo{}, errUnavailable
	}
	d.Total, d.Used, d.Free, d.Percent = u.Total, u.Used, u.Free, u.Percent
	return d, nil
}

func (f *fakeSource) Network(context.Context) (*NetworkInfo, error) {
	if f.failAll || f.network == nil {
		return nil, errUnavailable
	}
	return f.network, nil
}

func (f *fakeSource) CoreTemperatures(context.Context) ([]float64, error) {
	if f.failAll {
		return nil, errUnavailable
	}
	return f.coreTemps, nil
}

func (f *fakeSource) Host(context.Context) (SystemInfo, error) {
	if f.failAll {
		return SystemInfo{}, errUnavailable
	}
	return f.host, nil
}

// fakeRunner returns canned output per tool. Tools without an entry behave
// as if they were not installed.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error

	mu    sync.Mutex
	calls []string
}

func (r *fakeRunner) Capture(_ context.Context, _ time.Duration, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	r.mu.Unlock()

	if err, ok := r.errs[name]; ok {
		return nil, err
	}
	out, ok := r.outputs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, osexec.ErrNotFound)
	}
	return []byte(out), nil
}

// callCount counts invocations of the named tool.
func (r *fakeRunner) callCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c == name || strings.HasPrefix(c, name+" ") {
			n++
		}
	}
	return n
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

const sensorsOutput = `coretemp-isa-0000
Adapter: ISA adapter
Package id 0:  +48.0°C  (high = +80.0°C, crit = +100.0°C)
Core 0:        +45.0°C  (high = +80.0°C, crit = +100.0°C)
Core 1:        +47.0°C  (high = +80.0°C, crit = +100.0°C)
`

const nvidiaSettingsOutput = `
  Attribute 'GPUCoreTemp' (host:0[gpu:0]): 52.
    'GPUCoreTemp' is an integer attribute.
`

const nvidiaSMIOutput = "NVIDIA GeForce RTX 3080, 55, 37, 2048, 10240, 120.50\n"

// newTestSource returns a source describing a small Linux box.
func newTestSource() *fakeSource {
	return &fakeSource{
		percent: 23.5,
		cores:   8,
		freq:    &CPUFreq{Current: 2400},
		memory: MemoryInfo{
			Total:       16 << 30,
			Available:   8 << 30,
			Used:        8 << 30,
			Percent:     50,
			SwapTotal:   2 << 30,
			SwapUsed:    1 << 30,
			SwapPercent: 50,
		},
		partitions: []DiskInfo{
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
			{Device: "tmpfs", Mountpoint: "/run", Fstype: "tmpfs"},
			{Device: "/dev/loop3", Mountpoint: "/snap/core/123", Fstype: "squashfs"},
			{Device: "/dev/sdb1", Mountpoint: "/data", Fstype: "xfs"},
		},
		usage: map[string]DiskInfo{
			"/":     {Total: 100 << 30, Used: 40 << 30, Free: 60 << 30, Percent: 40},
			"/data": {Total: 500 << 30, Used: 450 << 30, Free: 50 << 30, Percent: 90},
		},
		network: &NetworkInfo{BytesSent: 2048, BytesRecv: 1 << 20, PacketsSent: 1200, PacketsRecv: 3400},
		host: SystemInfo{
			Hostname: "testbox",
			OS:       "linux",
			Kernel:   "6.1.0",
			Uptime:   26 * time.Hour,
		},
	}
}
