package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sysmon/internal/graph"
	"github.com/rileyhilliard/sysmon/internal/history"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

// Layout constants for the dashboard panels.
const (
	// graphMargin is the frame width not available to a temperature graph:
	// borders, the label column and the band labels.
	graphMargin = 32

	// tempLabelWidth is the column holding "CPU" and the current reading.
	tempLabelWidth = 8

	usageBarWidth  = 20
	sparkWidth     = 30
	infoLabelWidth = 12

	// minFrameWidth keeps the panels readable on very narrow terminals.
	minFrameWidth = 60
)

const timestampLayout = "2006-01-02 15:04:05"

// Frame renders the whole dashboard without a viewport: header, every panel
// and the footer. Used for --once output and before the first resize.
func (m Model) Frame() string {
	return m.renderHeader() + "\n\n" + m.renderBody() + "\n\n" + m.renderFooter()
}

// renderHeader renders the title line with the sample time and hostname.
func (m Model) renderHeader() string {
	title := HeaderStyle.Render("SYSTEM DASHBOARD")

	when := "waiting for first sample"
	if !m.lastUpdate.IsZero() {
		when = m.lastUpdate.Format(timestampLayout)
	}
	parts := []string{title, ValueStyle.Render(when)}

	if m.snapshot != nil && m.snapshot.System.Hostname != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(ColorTextSecondary).Render(m.snapshot.System.Hostname))
	}
	if m.activity.Busy() {
		parts = append(parts, m.activity.View())
	}

	return strings.Join(parts, MutedStyle.Render(" | "))
}

// renderBody stacks the panels.
func (m Model) renderBody() string {
	width := max(m.frameWidth(), minFrameWidth)

	panels := []string{
		m.renderTemperatures(width),
		m.renderSystemInfo(width),
	}
	if m.cfg.Display.ShowGPU {
		panels = append(panels, m.renderGPUInfo(width))
	}
	if m.cfg.Display.ShowNetwork {
		panels = append(panels, m.renderNetwork(width))
	}
	panels = append(panels, m.renderDisks(width))

	return strings.Join(panels, "\n")
}

// renderFooter renders the keyboard hints.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r refresh",
		"c clear history",
		"↑↓ scroll",
		"? help",
		fmt.Sprintf("every %.1fs", m.cfg.RefreshRate),
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

// graphOptions sizes a temperature graph for the frame width. graph_length
// caps the width but never below graph.MinWidth.
func (m Model) graphOptions(width int) graph.Options {
	w := graph.FitWidth(width - graphMargin)
	if limit := m.cfg.Display.GraphLength; limit > 0 && w > limit {
		w = max(limit, graph.MinWidth)
	}
	return graph.Options{
		Height: m.cfg.Display.GraphHeight,
		Width:  w,
		Thresholds: graph.Thresholds{
			Warning:  m.cfg.TemperatureThresholds.Warning,
			Critical: m.cfg.TemperatureThresholds.Critical,
		},
	}
}

// renderTemperatures renders the CPU and GPU temperature rows.
func (m Model) renderTemperatures(width int) string {
	opts := m.graphOptions(width)

	var cpuTemp, gpuTemp *float64
	if m.snapshot != nil {
		cpuTemp = m.snapshot.CPU.Temperature
		gpuTemp = m.snapshot.GPUTemperature
	}

	lines := m.temperatureRow("CPU", cpuTemp, history.SeriesCPU, opts)
	if m.cfg.Display.ShowGPU {
		lines = append(lines, "")
		lines = append(lines, m.temperatureRow("GPU", gpuTemp, history.SeriesGPU, opts)...)
	}

	return Section("Temperatures & History", lines, width, ColorAccent)
}

// temperatureRow places the label and current reading to the left of the graph.
func (m Model) temperatureRow(label string, current *float64, series string, opts graph.Options) []string {
	reading := MutedStyle.Render("N/A")
	if current != nil {
		reading = m.palette.PercentStyle(TempPercent(*current)).Render(FormatTemp(*current))
	}

	left := lipgloss.NewStyle().Width(tempLabelWidth).Render(
		LabelStyle.Render(label) + "\n" + reading)

	g := graph.Render(m.store.Snapshot(series), opts)
	right := strings.Join(PaintGraph(g, m.palette), "\n")

	return strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, left, right), "\n")
}

// renderSystemInfo renders CPU, memory, swap and host details.
func (m Model) renderSystemInfo(width int) string {
	snap := m.snapshot
	if snap == nil {
		return Section("System Info", []string{MutedStyle.Render(graph.CollectingText)}, width, ColorAccent)
	}

	cpu := snap.CPU
	mem := snap.Memory

	cpuLine := infoLabel("CPU Usage") +
		m.palette.UsageBar(usageBarWidth, cpu.Percent) + " " +
		m.palette.PercentStyle(cpu.Percent).Render(fmt.Sprintf("%5.1f%%", cpu.Percent)) + "  " +
		Sparkline(m.store.Snapshot(history.SeriesCPUUsage), sparkWidth, m.palette)

	cores := infoLabel("CPU Cores") + ValueStyle.Render(fmt.Sprint(cpu.Cores))
	if cpu.Freq != nil {
		cores += MutedStyle.Render("   Frequency: ") + ValueStyle.Render(fmt.Sprintf("%.0f MHz", cpu.Freq.Current))
	}

	memLine := infoLabel("Memory") +
		m.palette.UsageBar(usageBarWidth, mem.Percent) + " " +
		m.palette.PercentStyle(mem.Percent).Render(fmt.Sprintf("%5.1f%%", mem.Percent)) + "  " +
		Sparkline(m.store.Snapshot(history.SeriesMemory), sparkWidth, m.palette)

	memUsed := infoLabel("") + MutedStyle.Render(fmt.Sprintf("%s used of %s (%s available)",
		FormatBytes(mem.Used), FormatBytes(mem.Total), FormatBytes(mem.Available)))

	swap := infoLabel("Swap") + MutedStyle.Render("none")
	if mem.SwapTotal > 0 {
		swap = infoLabel("Swap") +
			m.palette.PercentStyle(mem.SwapPercent).Render(fmt.Sprintf("%.1f%%", mem.SwapPercent)) +
			MutedStyle.Render(fmt.Sprintf("  %s / %s", FormatBytes(mem.SwapUsed), FormatBytes(mem.SwapTotal)))
	}

	lines := []string{cpuLine, cores, memLine, memUsed, swap}

	if sys := snap.System; sys.OS != "" {
		host := infoLabel("System") + ValueStyle.Render(sys.OS)
		if sys.Kernel != "" {
			host += MutedStyle.Render(" " + sys.Kernel)
		}
		if sys.Uptime > 0 {
			host += MutedStyle.Render("   up " + FormatUptime(sys.Uptime))
		}
		lines = append(lines, host)
	}

	return Section("System Info", lines, width, ColorAccent)
}

// renderGPUInfo renders the nvidia-smi details, or "Not detected".
func (m Model) renderGPUInfo(width int) string {
	var gpu *GPUInfo
	if m.snapshot != nil {
		gpu = m.snapshot.GPU
	}
	if gpu == nil {
		return Section("GPU Info", []string{MutedStyle.Render("Not detected")}, width, ColorGPUAccent)
	}

	usage := MutedStyle.Render("N/A")
	if gpu.Utilization != nil {
		pct := float64(*gpu.Utilization)
		usage = m.palette.UsageBar(usageBarWidth, pct) + " " +
			m.palette.PercentStyle(pct).Render(fmt.Sprintf("%d%%", *gpu.Utilization))
	}

	vram := MutedStyle.Render("N/A")
	if gpu.MemoryUsedMB != nil && gpu.MemoryTotalMB != nil {
		vram = ValueStyle.Render(fmt.Sprintf("%d MB / %d MB", *gpu.MemoryUsedMB, *gpu.MemoryTotalMB))
		if pct, ok := gpu.MemoryPercent(); ok {
			vram += " " + m.palette.PercentStyle(pct).Render(fmt.Sprintf("(%.1f%%)", pct))
		}
	}

	power := MutedStyle.Render("N/A")
	if gpu.PowerDraw != nil {
		power = ValueStyle.Render(fmt.Sprintf("%.1f W", *gpu.PowerDraw))
	}

	lines := []string{
		infoLabel("Name") + ValueStyle.Render(gpu.Name),
		infoLabel("Usage") + usage,
		infoLabel("VRAM") + vram,
		infoLabel("Power") + power,
	}
	return Section("GPU Info", lines, width, ColorGPUAccent)
}

// renderNetwork renders the cumulative network counters.
func (m Model) renderNetwork(width int) string {
	var n *NetworkInfo
	if m.snapshot != nil {
		n = m.snapshot.Network
	}
	if n == nil {
		return Section("Network", []string{MutedStyle.Render("No data available")}, width, ColorAccent)
	}

	lines := []string{
		infoLabel("Sent") + ValueStyle.Render(FormatBytes(n.BytesSent)) +
			MutedStyle.Render(fmt.Sprintf("  %s packets", FormatCount(n.PacketsSent))),
		infoLabel("Received") + ValueStyle.Render(FormatBytes(n.BytesRecv)) +
			MutedStyle.Render(fmt.Sprintf("  %s packets", FormatCount(n.PacketsRecv))),
	}
	return Section("Network", lines, width, ColorAccent)
}

// diskColumns are shared by both disk tables.
var diskColumns = []ui.TableColumn{
	{Title: "Filesystem", Width: 16},
	{Title: "Size", Width: 6, Right: true},
	{Title: "Used", Width: 6, Right: true},
	{Title: "Avail", Width: 6, Right: true},
	{Title: "Use%", Width: 5, Right: true},
	{Title: "Mounted on", Width: 10},
}

// renderDisks renders the disk table twice: exact byte counts, then whole GB.
func (m Model) renderDisks(width int) string {
	var disks []DiskInfo
	if m.snapshot != nil {
		disks = m.snapshot.Disks
	}
	if len(disks) == 0 {
		return Section("Disk Usage", []string{MutedStyle.Render("No disks found")}, width, ColorAccent)
	}

	lines := strings.Split(ui.RenderAlignedTable(diskColumns, m.diskRows(disks, FormatBytesExact)), "\n")
	lines = append(lines, "")
	lines = append(lines, strings.Split(ui.RenderAlignedTable(diskColumns, m.diskRows(disks, FormatBytesGB)), "\n")...)

	return Section("Disk Usage", lines, width, ColorAccent)
}

func (m Model) diskRows(disks []DiskInfo, size func(uint64) string) [][]string {
	rows := make([][]string, 0, len(disks))
	for _, d := range disks {
		rows = append(rows, []string{
			d.Device,
			size(d.Total),
			size(d.Used),
			size(d.Free),
			m.palette.PercentStyle(d.Percent).Render(fmt.Sprintf("%.0f%%", d.Percent)),
			d.Mountpoint,
		})
	}
	return rows
}

// infoLabel renders a fixed-width muted label for the info panels.
func infoLabel(label string) string {
	if label == "" {
		return strings.Repeat(" ", infoLabelWidth)
	}
	return MutedStyle.Width(infoLabelWidth).Render(label + ":")
}
