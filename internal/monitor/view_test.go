package monitor

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/graph"
)

var sampleTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

// fullSnapshot is what a collector on a box with an NVIDIA card returns.
func fullSnapshot(ts time.Time) *Snapshot {
	src := newTestSource()
	return &Snapshot{
		Timestamp: ts,
		CPU: CPUInfo{
			Percent:     23.5,
			Cores:       8,
			Freq:        &CPUFreq{Current: 2400},
			Temperature: floatPtr(46),
		},
		Memory: src.memory,
		Disks: []DiskInfo{
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4", Total: 100 << 30, Used: 40 << 30, Free: 60 << 30, Percent: 40},
			{Device: "/dev/sdb1", Mountpoint: "/data", Fstype: "xfs", Total: 500 << 30, Used: 450 << 30, Free: 50 << 30, Percent: 90},
		},
		GPU: &GPUInfo{
			Name:          "NVIDIA GeForce RTX 3080",
			Temperature:   intPtr(55),
			Utilization:   intPtr(37),
			MemoryUsedMB:  intPtr(2048),
			MemoryTotalMB: intPtr(10240),
			PowerDraw:     floatPtr(120.5),
		},
		GPUTemperature: floatPtr(52),
		Network:        src.network,
		System:         src.host,
	}
}

func newViewModel(cfg *config.Config) Model {
	lipgloss.SetColorProfile(termenv.Ascii)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return NewModel(nil, cfg)
}

func TestFrame_BeforeFirstSample(t *testing.T) {
	m := newViewModel(nil)

	out := m.Frame()

	assert.Contains(t, out, "SYSTEM DASHBOARD")
	assert.Contains(t, out, "waiting for first sample")
	assert.Contains(t, out, graph.NoDataText)
	assert.Contains(t, out, "No disks found")
	assert.Contains(t, out, "Not detected")
}

func TestFrame_AllPanels(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.ShowNetwork = true
	m := newViewModel(cfg)
	m.ApplySnapshot(fullSnapshot(sampleTime))

	out := m.Frame()

	for _, want := range []string{
		"SYSTEM DASHBOARD",
		"2024-03-09 14:05:07",
		"testbox",
		"Temperatures & History",
		"46°C",
		"52°C",
		graph.CollectingText,
		"System Info",
		"23.5%",
		"Frequency: 2400 MHz",
		"8.0 GB used of 16.0 GB",
		"up 1d 2h 0m",
		"GPU Info",
		"NVIDIA GeForce RTX 3080",
		"2048 MB / 10240 MB (20.0%)",
		"120.5 W",
		"Network",
		"1.0 MB",
		"3,400 packets",
		"Disk Usage",
		"Filesystem",
		"Mounted on",
		"107,374,182,400",
		"500G",
		"90%",
		"q quit",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFrame_HidesOptionalPanels(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.ShowGPU = false
	cfg.Display.ShowNetwork = false
	m := newViewModel(cfg)
	m.ApplySnapshot(fullSnapshot(sampleTime))

	out := m.Frame()

	assert.NotContains(t, out, "GPU Info")
	assert.NotContains(t, out, "Network")
	assert.NotContains(t, out, "52°C", "no GPU temperature row")
}

func TestFrame_MissingReadings(t *testing.T) {
	m := newViewModel(nil)
	snap := fullSnapshot(sampleTime)
	snap.CPU.Temperature = nil
	snap.GPU = &GPUInfo{Name: "Tesla T4"}
	snap.Memory.SwapTotal = 0
	m.ApplySnapshot(snap)

	out := m.Frame()

	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Tesla T4")
	assert.Contains(t, out, "none")
}

func TestFrame_GraphAfterTwoSamples(t *testing.T) {
	m := newViewModel(nil)
	m.ApplySnapshot(fullSnapshot(sampleTime))
	next := fullSnapshot(sampleTime.Add(time.Second))
	next.CPU.Temperature = floatPtr(48)
	m.ApplySnapshot(next)

	out := m.Frame()

	assert.Contains(t, out, "Current: 48°C | Min: 46° | Max: 48°")
	assert.Contains(t, out, "█")
}

func TestFrame_PanelWidths(t *testing.T) {
	m := newViewModel(nil)
	m.SetSize(120, 50)
	m.ApplySnapshot(fullSnapshot(sampleTime))

	body := m.renderBody()
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "╭") || strings.HasPrefix(line, "╰") {
			assert.Equal(t, 120, lipgloss.Width(line))
		}
	}
}

func TestFrame_NarrowTerminalUsesMinimumWidth(t *testing.T) {
	m := newViewModel(nil)
	m.SetSize(30, 20)

	first := strings.Split(m.renderBody(), "\n")[0]
	assert.Equal(t, minFrameWidth, lipgloss.Width(first))
}

func TestGraphOptions(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		length    int
		wantWidth int
	}{
		{"wide terminal", 200, 100, 100},
		{"graph_length caps", 200, 60, 60},
		{"fits", 120, 100, 88},
		{"floored", 70, 100, graph.MinWidth},
		{"floor wins over graph_length", 200, 20, graph.MinWidth},
		{"graph_length at the floor", 200, graph.MinWidth, graph.MinWidth},
		{"narrow terminal and short graph_length", 40, 10, graph.MinWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Display.GraphLength = tt.length
			m := newViewModel(cfg)

			opts := m.graphOptions(tt.width)

			assert.Equal(t, tt.wantWidth, opts.Width)
			assert.Equal(t, cfg.Display.GraphHeight, opts.Height)
			assert.InDelta(t, 70.0, opts.Thresholds.Warning, 0.001)
			assert.InDelta(t, 80.0, opts.Thresholds.Critical, 0.001)
		})
	}
}

func TestView_WithViewport(t *testing.T) {
	m := newViewModel(nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, snapshotMsg{snap: fullSnapshot(sampleTime)})

	out := m.View()
	lines := strings.Split(out, "\n")

	assert.True(t, strings.HasPrefix(lines[0], "SYSTEM DASHBOARD"))
	assert.Contains(t, lines[len(lines)-1], "q quit")
	assert.LessOrEqual(t, len(lines), 30)
}

func TestView_HelpOverlay(t *testing.T) {
	m := newViewModel(nil)
	m.showHelp = true

	out := m.View()

	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "Clear history")

	m.SetSize(100, 30)
	assert.Len(t, strings.Split(m.View(), "\n"), 30, "overlay fills the terminal")
}

func TestRenderFooter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RefreshRate = 2
	m := newViewModel(cfg)

	footer := m.renderFooter()

	assert.Contains(t, footer, "r refresh")
	assert.Contains(t, footer, "c clear history")
	assert.Contains(t, footer, "every 2.0s")
}

func TestDiskRows_ColorUsePercent(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	defer lipgloss.SetColorProfile(termenv.Ascii)

	m := NewModel(nil, config.DefaultConfig())
	m.palette = Palette{Normal: "#00ff00", Warning: "#ffff00", Critical: "#ff0000"}

	rows := m.diskRows(fullSnapshot(sampleTime).Disks, FormatBytesGB)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"/dev/sda1", "100G", "40G", "60G"}, rows[0][:4])
	assert.Contains(t, rows[0][4], "38;2;0;255;0")
	assert.Contains(t, rows[1][4], "38;2;255;0;0")
	assert.Equal(t, "/data", rows[1][5])
}
