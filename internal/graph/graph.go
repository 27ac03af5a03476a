// Package graph rasterizes a metric history into a fixed-size bar grid.
//
// Render maps each visible sample onto a column of cells. A cell in row r is
// filled when the sample value reaches that row's band, so every column is a
// vertical bar whose height is proportional to the sample's position within
// the observed range:
//
//	row 0         ██     <- band = max
//	row 1      █ ███
//	row h-1  ████████    <- band = min
//
// The vertical scale comes from the whole retained history, while only the
// newest Width samples are drawn. Old extremes scrolling off-screen therefore
// do not rescale the graph every frame.
//
// The package has no terminal dependency. Cells carry a Severity and the
// presentation layer decides how to color them.
package graph

import (
	"strconv"
	"strings"

	"github.com/rileyhilliard/sysmon/internal/history"
)

// Placeholder text for series too short to scale.
const (
	NoDataText     = "No data available"
	CollectingText = "Collecting data..."
)

// Glyphs used by the plain-text rendering.
const (
	FilledGlyph = '█'
	EmptyGlyph  = ' '
	TickGlyph   = '│'
	FillGlyph   = '─'
)

// MinWidth is the narrowest graph the dashboard will ask for.
const MinWidth = 50

// RulerMinSamples is the history length from which the tick ruler is drawn.
const RulerMinSamples = 10

// TickEvery is the column spacing between ruler ticks.
const TickEvery = 10

// Mode says which kind of output Render produced.
type Mode int

const (
	// ModeNoData means the series has no samples.
	ModeNoData Mode = iota
	// ModeCollecting means the series has a single sample, too few to fit a scale.
	ModeCollecting
	// ModeGrid means Rows, Bands, and Summary are populated.
	ModeGrid
)

// Options describes the grid to produce.
type Options struct {
	Height     int
	Width      int
	Thresholds Thresholds
}

// Cell is one grid position.
type Cell struct {
	Filled   bool
	Severity Severity
}

// Ruler is the tick line drawn under the grid.
type Ruler struct {
	// Columns is the number of visible columns the ruler spans.
	Columns int
	// Total is the number of samples in the whole series.
	Total int
}

// Ticks returns the ruler line: a tick every TickEvery columns, filler elsewhere.
func (r Ruler) Ticks() string {
	var b strings.Builder
	for i := 0; i < r.Columns; i++ {
		if i%TickEvery == 0 {
			b.WriteRune(TickGlyph)
		} else {
			b.WriteRune(FillGlyph)
		}
	}
	return b.String()
}

// Label returns the sample-count label shown after the ticks.
func (r Ruler) Label() string {
	return strconv.Itoa(r.Total) + "s"
}

// String returns the ticks followed by the label.
func (r Ruler) String() string {
	return r.Ticks() + " " + r.Label()
}

// Summary is the "Current / Min / Max" line under the graph.
type Summary struct {
	Current  float64
	Min      float64
	Max      float64
	Severity Severity
}

// Graph is the result of Render.
type Graph struct {
	Mode Mode

	// Placeholder is set for ModeNoData and ModeCollecting.
	Placeholder string

	// Bands holds the threshold value of each row, top row first.
	Bands []float64

	// Rows holds Height rows of up to Width cells each.
	Rows [][]Cell

	// Ruler is nil when the series is shorter than RulerMinSamples.
	Ruler *Ruler

	Summary Summary
}

// Columns returns the number of drawn columns.
func (g Graph) Columns() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

// Render turns a series snapshot into a grid. It never panics on any
// snapshot: zero and one sample produce placeholders, a flat series is
// scaled with a unit range, and non-positive dimensions give an empty grid.
func Render(samples []history.Sample, opts Options) Graph {
	switch len(samples) {
	case 0:
		return Graph{Mode: ModeNoData, Placeholder: NoDataText}
	case 1:
		return Graph{Mode: ModeCollecting, Placeholder: CollectingText}
	}

	minVal, maxVal := findMinMax(samples)
	scaleMin, valueRange := minVal, maxVal-minVal
	if valueRange == 0 {
		// Flat series: a unit range ending at the value, so every band is
		// at or below it and the bars fill the whole grid. The band labels
		// run from v-1 up to v, not from v upward.
		valueRange = 1
		scaleMin = maxVal - valueRange
	}

	height := opts.Height
	if height < 0 {
		height = 0
	}
	bands := make([]float64, height)
	for r := 0; r < height; r++ {
		bands[r] = scaleMin + valueRange*float64(height-r-1)/float64(height)
	}

	visible := visibleWindow(samples, opts.Width)

	rows := make([][]Cell, height)
	for r := range rows {
		row := make([]Cell, len(visible))
		for c, s := range visible {
			if s.Value >= bands[r] {
				row[c] = Cell{Filled: true, Severity: opts.Thresholds.Classify(s.Value)}
			}
		}
		rows[r] = row
	}

	var ruler *Ruler
	if len(samples) >= RulerMinSamples {
		ruler = &Ruler{Columns: len(visible), Total: len(samples)}
	}

	current := samples[len(samples)-1].Value
	return Graph{
		Mode:  ModeGrid,
		Bands: bands,
		Rows:  rows,
		Ruler: ruler,
		Summary: Summary{
			Current:  current,
			Min:      minVal,
			Max:      maxVal,
			Severity: opts.Thresholds.Classify(current),
		},
	}
}

// FitWidth floors an available column count at MinWidth so narrow
// terminals still get a readable graph.
func FitWidth(available int) int {
	if available < MinWidth {
		return MinWidth
	}
	return available
}

// Lines renders the graph as uncolored text, one string per line. Useful
// for plain output and tests; the dashboard styles cells itself.
func (g Graph) Lines() []string {
	if g.Mode != ModeGrid {
		return []string{g.Placeholder}
	}

	lines := make([]string, 0, len(g.Rows)+2)
	for _, row := range g.Rows {
		var b strings.Builder
		for _, cell := range row {
			if cell.Filled {
				b.WriteRune(FilledGlyph)
			} else {
				b.WriteRune(EmptyGlyph)
			}
		}
		lines = append(lines, b.String())
	}
	if g.Ruler != nil {
		lines = append(lines, g.Ruler.String())
	}
	lines = append(lines, g.Summary.String())
	return lines
}

// String renders the summary without units.
func (s Summary) String() string {
	return "Current: " + FormatValue(s.Current) +
		" | Min: " + FormatValue(s.Min) +
		" | Max: " + FormatValue(s.Max)
}

// FormatValue prints whole numbers without a decimal point and everything
// else with one decimal.
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// findMinMax scans the full snapshot, not just the visible window.
func findMinMax(samples []history.Sample) (minVal, maxVal float64) {
	minVal, maxVal = samples[0].Value, samples[0].Value
	for _, s := range samples[1:] {
		if s.Value < minVal {
			minVal = s.Value
		}
		if s.Value > maxVal {
			maxVal = s.Value
		}
	}
	return minVal, maxVal
}

// visibleWindow returns the newest width samples. Fewer samples than width
// means fewer columns; nothing is stretched or padded.
func visibleWindow(samples []history.Sample, width int) []history.Sample {
	if width <= 0 {
		return nil
	}
	if len(samples) > width {
		return samples[len(samples)-width:]
	}
	return samples
}
