package ui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette using ANSI color codes for terminal compatibility.
//   red     -> ANSI 1
//   green   -> ANSI 2
//   yellow  -> ANSI 3
//   blue    -> ANSI 4
//   cyan    -> ANSI 6
//   gray    -> ANSI 8 (bright black)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// namedColors maps the color names accepted in config files to ANSI codes.
var namedColors = map[string]lipgloss.Color{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"gray":           "8",
	"grey":           "8",
	"bright_black":   "8",
	"bright_red":     "9",
	"bright_green":   "10",
	"bright_yellow":  "11",
	"bright_blue":    "12",
	"bright_magenta": "13",
	"bright_cyan":    "14",
	"bright_white":   "15",
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParseColor resolves a color name, a 0-255 ANSI code, or a #RRGGBB hex
// string. Names are case-insensitive and may use spaces or dashes in place
// of underscores ("bright red", "bright-red").
func ParseColor(name string) (lipgloss.Color, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if c, ok := namedColors[key]; ok {
		return c, true
	}
	if hexColor.MatchString(key) {
		return lipgloss.Color(key), true
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(key), true
	}
	return "", false
}

// ColorOr returns the parsed color, or fallback when name is not a color.
func ColorOr(name string, fallback lipgloss.Color) lipgloss.Color {
	if c, ok := ParseColor(name); ok {
		return c
	}
	return fallback
}
