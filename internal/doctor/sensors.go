package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/exec"
	"github.com/rileyhilliard/sysmon/internal/monitor"
)

// ToolTimeout bounds each tool probe.
const ToolTimeout = 5 * time.Second

// ToolCheck runs an external tool the collector depends on and reports
// whether it answers. Missing tools are warnings since the dashboard shows
// N/A in their place.
type ToolCheck struct {
	Tool     string
	Args     []string
	Provides string // What the dashboard loses without it
	Group    string
	Runner   exec.Runner
}

func (c *ToolCheck) Name() string     { return "tool_" + strings.ReplaceAll(c.Tool, "-", "_") }
func (c *ToolCheck) Category() string { return c.Group }

func (c *ToolCheck) Run() CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), ToolTimeout)
	defer cancel()

	out, err := c.Runner.Capture(ctx, ToolTimeout, c.Tool, c.Args...)
	if err != nil {
		result := CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s unavailable, %s will show N/A", c.Tool, c.Provides),
		}
		reason := err.Error()
		var se *errors.Error
		if stderrors.As(err, &se) {
			reason = se.Message
			result.Suggestion = se.Suggestion
		}
		if !exec.IsNotFound(err) {
			result.Message = fmt.Sprintf("%s failed: %s", c.Tool, reason)
		}
		return result
	}

	msg := fmt.Sprintf("%s responds", c.Tool)
	if first := firstLine(string(out)); first != "" {
		msg = fmt.Sprintf("%s: %s", c.Tool, first)
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: msg,
	}
}

func (c *ToolCheck) Fix() error {
	return nil // Package installation is out of scope
}

// HwmonCheck reads core temperatures straight from the kernel, the
// fallback when lm-sensors is missing.
type HwmonCheck struct {
	Source monitor.SystemSource
}

func (c *HwmonCheck) Name() string     { return "hwmon" }
func (c *HwmonCheck) Category() string { return CategorySensors }

func (c *HwmonCheck) Run() CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), ToolTimeout)
	defer cancel()

	readings, err := c.Source.CoreTemperatures(ctx)
	if len(readings) == 0 {
		result := CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No CPU core temperatures from the kernel",
			Suggestion: "Load the coretemp (Intel) or k10temp (AMD) module",
		}
		if err != nil {
			result.Message = fmt.Sprintf("%s: %v", result.Message, err)
		}
		return result
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d core sensor%s readable", len(readings), pluralize(len(readings))),
	}
}

func (c *HwmonCheck) Fix() error {
	return nil
}

// NewSensorChecks returns the temperature source checks. GPU tools are
// only probed when the GPU panel is enabled.
func NewSensorChecks(runner exec.Runner, source monitor.SystemSource, showGPU bool) []Check {
	checks := []Check{
		&ToolCheck{Tool: "sensors", Provides: "CPU temperature", Group: CategorySensors, Runner: runner},
		&HwmonCheck{Source: source},
	}
	if showGPU {
		checks = append(checks,
			&ToolCheck{
				Tool:     "nvidia-settings",
				Args:     []string{"-q", "[gpu:0]/GPUCoreTemp", "-t"},
				Provides: "GPU temperature",
				Group:    CategoryGPU,
				Runner:   runner,
			},
			&ToolCheck{
				Tool:     "nvidia-smi",
				Args:     []string{"-L"},
				Provides: "GPU info",
				Group:    CategoryGPU,
				Runner:   runner,
			},
		)
	}
	return checks
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
