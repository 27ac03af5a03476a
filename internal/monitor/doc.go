// Package monitor implements sysmon's local metric collection and the
// real-time TUI dashboard that displays it.
//
// # Architecture
//
// The dashboard uses the Bubble Tea framework, which follows The Elm
// Architecture (Model-Update-View pattern):
//
//   - Model: holds the history store, the latest Snapshot and the config
//   - Update: processes keystrokes, ticks, snapshots and config reloads
//   - View: renders the header, the scrolling panels and the footer
//
// # Key Components
//
//	Collector    - Gathers one Snapshot per cycle from gopsutil and vendor tools
//	SystemSource - gopsutil-backed system readings, replaceable in tests
//	Model        - The Bubble Tea model containing all dashboard state
//	PaintGraph   - Colors a graph.Graph with the configured palette
//
// # Message Flow
//
// Cycles never overlap:
//
//  1. Init (or a tickMsg) runs Collector.Collect on a goroutine
//  2. snapshotMsg arrives; temperatures and usage go into the history store
//  3. The next tickMsg is scheduled refresh_rate after the snapshot landed
//  4. View() renders the graphs from the store's snapshots
//
// A manual refresh (r) bumps the tick id so the pending tick is dropped.
// Config reloads arrive as configMsg and take effect on the next frame.
//
// # Temperature Sources
//
// CPU temperature is the floor of the mean per-core reading reported by
// lm-sensors, falling back to the kernel's coretemp/k10temp sensors.
// GPU temperature comes from nvidia-settings, falling back to nvidia-smi.
// A tool that is not installed is skipped on every later cycle.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C      - Quit
//	r              - Refresh now
//	c              - Clear history
//	j/k, ↑/↓, PgUp - Scroll
//	?              - Toggle help overlay
package monitor
