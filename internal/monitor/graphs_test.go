package monitor

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/graph"
	"github.com/rileyhilliard/sysmon/internal/history"
)

func samplesOf(values ...float64) []history.Sample {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	out := make([]history.Sample, len(values))
	for i, v := range values {
		out[i] = history.Sample{Timestamp: start.Add(time.Duration(i) * time.Second), Value: v}
	}
	return out
}

var testThresholds = graph.Thresholds{Warning: 70, Critical: 80}

func TestPaintGraph_Placeholders(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	opts := graph.Options{Height: 3, Width: 50, Thresholds: testThresholds}

	assert.Equal(t, []string{graph.NoDataText}, PaintGraph(graph.Render(nil, opts), DefaultPalette()))
	assert.Equal(t, []string{graph.CollectingText}, PaintGraph(graph.Render(samplesOf(42), opts), DefaultPalette()))
}

func TestPaintGraph_Grid(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	opts := graph.Options{Height: 3, Width: 50, Thresholds: testThresholds}

	g := graph.Render(samplesOf(10, 20, 30, 40, 50, 60, 70, 80, 90, 100), opts)
	lines := PaintGraph(g, DefaultPalette())

	// Three rows, the ruler, the summary.
	require.Len(t, lines, 5)
	assert.Equal(t, "70° "+strings.Repeat(" ", 6)+strings.Repeat("█", 4), lines[0])
	assert.Equal(t, "40° "+strings.Repeat(" ", 3)+strings.Repeat("█", 7), lines[1])
	assert.Equal(t, "10° "+strings.Repeat("█", 10), lines[2])
	assert.Equal(t, "    │───────── 10s", lines[3])
	assert.Equal(t, "Current: 100°C | Min: 10° | Max: 100°", lines[4])
}

func TestPaintGraph_NoRulerForShortSeries(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	opts := graph.Options{Height: 2, Width: 50, Thresholds: testThresholds}

	lines := PaintGraph(graph.Render(samplesOf(40, 45, 50), opts), DefaultPalette())

	require.Len(t, lines, 3)
	assert.NotContains(t, strings.Join(lines, "\n"), "│")
	assert.Equal(t, "Current: 50°C | Min: 40° | Max: 50°", lines[2])
}

func TestPaintGraph_LabelsAreRightAligned(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	opts := graph.Options{Height: 2, Width: 50, Thresholds: testThresholds}

	lines := PaintGraph(graph.Render(samplesOf(5, 105), opts), DefaultPalette())

	// Bands are 55 and 5; the shorter label is padded to match.
	assert.True(t, strings.HasPrefix(lines[0], "55° "))
	assert.True(t, strings.HasPrefix(lines[1], " 5° "))
}

func TestPaintGraph_ColorsBySeverity(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	defer lipgloss.SetColorProfile(termenv.Ascii)

	p := Palette{Normal: "#00ff00", Warning: "#ffff00", Critical: "#ff0000"}
	opts := graph.Options{Height: 1, Width: 50, Thresholds: testThresholds}

	lines := PaintGraph(graph.Render(samplesOf(10, 70, 80), opts), p)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "38;2;0;255;0", "normal cells")
	assert.Contains(t, joined, "38;2;255;255;0", "warning cells")
	assert.Contains(t, joined, "38;2;255;0;0", "critical cells and current value")
}

func TestPaintRow_GroupsRuns(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	defer lipgloss.SetColorProfile(termenv.Ascii)

	p := Palette{Normal: "#00ff00", Warning: "#ffff00", Critical: "#ff0000"}
	row := []graph.Cell{
		{Filled: true}, {Filled: true}, {Filled: true},
		{},
		{Filled: true, Severity: graph.SeverityCritical},
	}

	out := paintRow(row, p)

	assert.Equal(t, 1, strings.Count(out, "38;2;0;255;0"), "one escape for the green run")
	assert.Equal(t, 1, strings.Count(out, "38;2;255;0;0"))
	assert.Equal(t, 5, lipgloss.Width(out))
}

func TestSparkline(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	p := DefaultPalette()

	assert.Empty(t, Sparkline(nil, 10, p))
	assert.Empty(t, Sparkline(samplesOf(50), 0, p))

	assert.Equal(t, "▁▄█", Sparkline(samplesOf(0, 50, 100), 10, p))

	// Only the newest width samples are drawn.
	assert.Equal(t, "█▁", Sparkline(samplesOf(0, 0, 100, 0), 2, p))
}

func TestSparklineBlock(t *testing.T) {
	tests := []struct {
		percent float64
		want    rune
	}{
		{-10, '▁'},
		{0, '▁'},
		{50, '▄'},
		{99, '▇'},
		{100, '█'},
		{150, '█'},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sparklineBlock(tt.percent), "percent %v", tt.percent)
	}
}
