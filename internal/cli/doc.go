// Package cli implements the sysmon command-line interface.
//
// The root command runs the dashboard itself; everything else is a
// subcommand around it:
//
//	sysmon                     - Full-screen dashboard
//	sysmon --once              - Print one frame and exit
//	sysmon config [path|show|get|set|init]
//	sysmon doctor              - Check config and temperature sources
//	sysmon version
//	sysmon completion <shell>
//
// # Flags
//
// --config and --no-color are persistent and apply to every subcommand.
// --interval and --history belong to the root command and override
// refresh_rate and max_history_points. The overrides are applied again
// to every hot-reloaded config, so editing the file while the dashboard
// runs doesn't undo them.
//
// # Output
//
// Commands write to cmd.OutOrStdout() so tests can capture it. Errors are
// returned to cobra with SilenceErrors set and printed once by Execute as
// structured errors (message, cause, suggestion).
//
// # Logging
//
// While the dashboard owns the terminal, the standard logger is discarded,
// or sent to sysmon-debug.log when SYSMON_DEBUG is set.
package cli
