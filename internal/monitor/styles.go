package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/graph"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

// Dashboard chrome colors. Severity colors come from the config palette.
const (
	ColorBorder        = lipgloss.Color("8") // Gray
	ColorTextPrimary   = lipgloss.Color("7") // White
	ColorTextSecondary = lipgloss.Color("6") // Cyan
	ColorTextMuted     = lipgloss.Color("8") // Gray
	ColorAccent        = lipgloss.Color("4") // Blue
	ColorGPUAccent     = lipgloss.Color("5") // Magenta
)

// Percentage thresholds for CPU, memory, disk and GPU usage coloring.
const (
	PercentWarning  = 50.0
	PercentCritical = 75.0
)

// TempScaleMax is the temperature treated as 100% when coloring a current
// reading with the percentage rule.
const TempScaleMax = 90.0

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Palette maps severities to colors.
type Palette struct {
	Normal   lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color
}

// DefaultPalette is green, yellow, red.
func DefaultPalette() Palette {
	return Palette{
		Normal:   ui.ColorSuccess,
		Warning:  ui.ColorWarning,
		Critical: ui.ColorError,
	}
}

// PaletteFromConfig resolves configured color names. Unknown names keep
// the default for that severity.
func PaletteFromConfig(c config.ColorConfig) Palette {
	d := DefaultPalette()
	return Palette{
		Normal:   ui.ColorOr(c.Normal, d.Normal),
		Warning:  ui.ColorOr(c.Warning, d.Warning),
		Critical: ui.ColorOr(c.Critical, d.Critical),
	}
}

// Color returns the color for a severity.
func (p Palette) Color(s graph.Severity) lipgloss.Color {
	switch s {
	case graph.SeverityCritical:
		return p.Critical
	case graph.SeverityWarning:
		return p.Warning
	default:
		return p.Normal
	}
}

// Style returns a foreground style for a severity.
func (p Palette) Style(s graph.Severity) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Color(s))
}

// PercentSeverity grades a usage percentage: below 50 is normal, below 75
// is a warning, anything else is critical.
func PercentSeverity(percent float64) graph.Severity {
	return graph.Thresholds{Warning: PercentWarning, Critical: PercentCritical}.Classify(percent)
}

// TempPercent expresses a temperature as a share of TempScaleMax.
func TempPercent(temp float64) float64 {
	return temp * 100 / TempScaleMax
}

// PercentColor returns the palette color for a usage percentage.
func (p Palette) PercentColor(percent float64) lipgloss.Color {
	return p.Color(PercentSeverity(percent))
}

// PercentStyle returns a style with the appropriate foreground color for the percentage.
func (p Palette) PercentStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.PercentColor(percent))
}

// UsageBar renders a thin bar for a percentage, colored by PercentSeverity.
// Uses ━ for filled segments and ─ for empty segments.
func (p Palette) UsageBar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}

	// Clamp percentage to 0-100
	clamped := percent
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}

	filled := int(clamped / 100.0 * float64(width))
	bar := strings.Repeat("━", filled) + strings.Repeat("─", width-filled)

	return p.PercentStyle(percent).Render(bar)
}

// SectionHeader renders a section header with the title on the left.
// Format: ╭─ Title ─────────────────────────────────────────────╮
func SectionHeader(title string, width int, accent lipgloss.Color) string {
	if width < 10 {
		width = 10
	}

	// Left: "╭─ " (3 chars) + title + " " (1 char); right: "╮"
	leftWidth := 3 + lipgloss.Width(title) + 1
	fillWidth := width - leftWidth - 1
	if fillWidth < 1 {
		fillWidth = 1
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	return borderStyle.Render("╭─ ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat("─", fillWidth)+"╮")
}

// SectionFooter renders the bottom border of a section.
// Format: ╰────────────────────────────────────────────────────╯
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	return borderStyle.Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine renders a content line with left and right borders, properly padded to width.
// Format: │ content                                              │
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	// Inner width is total width minus "│ " on the left and " │" on the right
	padding := width - 4 - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}

// Section renders a bordered block of lines.
func Section(title string, lines []string, width int, accent lipgloss.Color) string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, SectionHeader(title, width, accent))
	for _, l := range lines {
		out = append(out, SectionContentLine(l, width))
	}
	out = append(out, SectionFooter(width))
	return strings.Join(out, "\n")
}
