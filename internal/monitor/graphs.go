package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sysmon/internal/graph"
	"github.com/rileyhilliard/sysmon/internal/history"
)

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// PaintGraph styles a rendered temperature graph, one string per line.
// Each grid row starts with its band label ("72° "), filled cells take the
// palette color of their severity, and the ruler and summary follow.
func PaintGraph(g graph.Graph, p Palette) []string {
	if g.Mode != graph.ModeGrid {
		return []string{MutedStyle.Render(g.Placeholder)}
	}

	labels := make([]string, len(g.Bands))
	labelWidth := 0
	for i, band := range g.Bands {
		labels[i] = fmt.Sprintf("%.0f° ", band)
		if w := lipgloss.Width(labels[i]); w > labelWidth {
			labelWidth = w
		}
	}

	lines := make([]string, 0, len(g.Rows)+2)
	for r, row := range g.Rows {
		label := strings.Repeat(" ", labelWidth-lipgloss.Width(labels[r])) + labels[r]
		lines = append(lines, MutedStyle.Render(label)+paintRow(row, p))
	}

	if g.Ruler != nil {
		lines = append(lines, strings.Repeat(" ", labelWidth)+MutedStyle.Render(g.Ruler.String()))
	}

	s := g.Summary
	lines = append(lines,
		MutedStyle.Render("Current: ")+
			p.Style(s.Severity).Render(graph.FormatValue(s.Current)+"°C")+
			MutedStyle.Render(fmt.Sprintf(" | Min: %s° | Max: %s°", graph.FormatValue(s.Min), graph.FormatValue(s.Max))))

	return lines
}

// paintRow styles runs of identical cells together so a row carries one
// escape sequence per color change rather than one per cell.
func paintRow(row []graph.Cell, p Palette) string {
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		for j < len(row) && row[j] == row[i] {
			j++
		}
		n := j - i
		if row[i].Filled {
			b.WriteString(p.Style(row[i].Severity).Render(strings.Repeat(string(graph.FilledGlyph), n)))
		} else {
			b.WriteString(strings.Repeat(string(graph.EmptyGlyph), n))
		}
		i = j
	}
	return b.String()
}

// Sparkline renders the newest width samples of a 0-100 series as a single
// row of block characters, colored by the newest value.
func Sparkline(samples []history.Sample, width int, p Palette) string {
	if len(samples) == 0 || width <= 0 {
		return ""
	}
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	var b strings.Builder
	for _, s := range samples {
		b.WriteRune(sparklineBlock(s.Value))
	}

	last := samples[len(samples)-1].Value
	return p.PercentStyle(last).Render(b.String())
}

// sparklineBlock maps a percentage onto one of the eight block heights.
func sparklineBlock(percent float64) rune {
	idx := int(percent / 100 * float64(len(sparklineBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx > len(sparklineBlocks)-1 {
		idx = len(sparklineBlocks) - 1
	}
	return sparklineBlocks[idx]
}
