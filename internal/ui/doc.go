// Package ui provides the shared terminal building blocks for sysmon's
// CLI output and dashboard.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Normal readings, successful operations
//	ColorError     (red)    - Critical readings, failures
//	ColorWarning   (yellow) - Warning readings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, labels
//	ColorSecondary (blue)   - In-progress indicators
//
// ParseColor turns the color names, ANSI codes and hex strings that users
// put in their config file into lipgloss colors.
//
// # Tables
//
// RenderSimpleTable wraps the Bubbles table for plain-text cells.
// RenderAlignedTable lays out cells that already carry color, measuring
// visible width rather than byte length.
//
// # Activity
//
// Activity wraps the Bubbles spinner for embedding in a Bubble Tea model:
//
//	a := ui.NewActivity("collecting")
//	cmd := a.Start()
//	// ... route spinner.TickMsg through a.Update ...
//	a.Stop()
package ui
