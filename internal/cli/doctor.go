package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/doctor"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/exec"
	"github.com/rileyhilliard/sysmon/internal/monitor"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

var (
	doctorJSON bool
	doctorFix  bool
)

// doctorCmd checks the config and every temperature source.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the config and temperature sources",
	Long: `Run diagnostic checks to find out why a reading shows N/A.

Checks:
  - Config file location and validity
  - lm-sensors and kernel hwmon CPU temperatures
  - nvidia-settings and nvidia-smi (when the GPU panel is on)

Examples:
  sysmon doctor
  sysmon doctor --fix
  sysmon doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.LoadOrDefault(cfgFile)
		if err != nil {
			cfg = config.DefaultConfig()
		}
		checks := collectChecks(cfgFile, cfg, exec.LocalRunner{}, monitor.NewSystemSource())
		return doctorCommand(cmd.OutOrStdout(), checks, doctorFix, doctorJSON)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Results []doctor.CheckResult `json:"results"`
	Summary DoctorSummary        `json:"summary"`
}

// DoctorSummary holds the counts shown at the end of the report.
type DoctorSummary struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

func collectChecks(cfgPath string, cfg *config.Config, runner exec.Runner, source monitor.SystemSource) []doctor.Check {
	var checks []doctor.Check
	checks = append(checks, doctor.NewConfigChecks(cfgPath)...)
	checks = append(checks, doctor.NewSensorChecks(runner, source, cfg.Display.ShowGPU)...)
	return checks
}

// doctorCommand runs checks and prints the report. It fails only when a
// check failed; warnings still exit zero.
func doctorCommand(out io.Writer, checks []doctor.Check, fix, asJSON bool) error {
	results := doctor.RunAllParallel(checks)

	if fix {
		results = doctor.AttemptFixes(checks, results)
	}

	if asJSON {
		if err := outputDoctorJSON(out, results); err != nil {
			return err
		}
	} else {
		outputDoctorText(out, checks, results, fix)
	}

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrConfig,
			doctor.Summary(results),
			"Fix the failing checks above and rerun 'sysmon doctor'.")
	}
	return nil
}

func outputDoctorJSON(out io.Writer, results []doctor.CheckResult) error {
	counts := doctor.CountByStatus(results)
	output := DoctorOutput{
		Results: results,
		Summary: DoctorSummary{
			Pass:     counts[doctor.StatusPass],
			Warn:     counts[doctor.StatusWarn],
			Fail:     counts[doctor.StatusFail],
			Fixable:  doctor.FixableCount(results),
			AllClear: !doctor.HasIssues(results),
		},
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputDoctorText(out io.Writer, checks []doctor.Check, results []doctor.CheckResult, fixed bool) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("sysmon Diagnostic Report"))
	fmt.Fprintln(out)

	grouped := doctor.GroupByCategory(checks)
	for _, category := range doctor.CategoryOrder {
		indices := grouped[category]
		if len(indices) == 0 {
			continue
		}

		fmt.Fprintln(out, headerStyle.Render(category))
		for _, idx := range indices {
			renderCheckResult(out, results[idx], successStyle, errorStyle, warnStyle, mutedStyle)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintln(out)

	if !doctor.HasIssues(results) {
		fmt.Fprintf(out, "%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	} else {
		fmt.Fprintf(out, "%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))

		if doctor.FixableCount(results) > 0 && !fixed {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  Run with %s to attempt automatic fixes where possible.\n",
				mutedStyle.Render("--fix"))
		}
	}
	fmt.Fprintln(out)
}

func renderCheckResult(out io.Writer, result doctor.CheckResult, successStyle, errorStyle, warnStyle, mutedStyle lipgloss.Style) {
	var symbol string
	var style lipgloss.Style

	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.SymbolComplete
		style = successStyle
	case doctor.StatusWarn:
		symbol = ui.SymbolWarning
		style = warnStyle
	default:
		symbol = ui.SymbolFail
		style = errorStyle
	}

	fmt.Fprintf(out, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(out, "    %s\n", mutedStyle.Render(line))
		}
	}
}
