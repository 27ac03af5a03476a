package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/monitor"
)

// MinInterval is the shortest --interval accepted.
const MinInterval = 100 * time.Millisecond

// debugLogFile receives log output while the dashboard owns the screen
// and SYSMON_DEBUG is set.
const debugLogFile = "sysmon-debug.log"

// Global flags
var (
	cfgFile      string
	noColor      bool
	intervalFlag string
	historyFlag  int
	onceFlag     bool
)

// rootCmd runs the dashboard.
var rootCmd = &cobra.Command{
	Use:   "sysmon",
	Short: "Terminal dashboard for temperatures, load, memory, disks and network",
	Long: `sysmon polls CPU and GPU temperatures, CPU load, memory, disks and
network counters, and draws them as a refreshing terminal dashboard with
a scrolling history graph for each temperature.

Config is read from ~/.config/system-monitor/config.yaml (or --config),
and edits to that file apply while the dashboard is running.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Refresh now
  c           Clear history
  up/down     Scroll
  ?           Show help

Examples:
  sysmon
  sysmon --interval 2s
  sysmon --once --no-color > snapshot.txt`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides, err := overridesFromFlags(cmd)
		if err != nil {
			return err
		}

		cfg, path, err := config.LoadOrDefault(cfgFile)
		if err != nil {
			return err
		}
		if err := overrides.apply(cfg); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		collector := monitor.NewCollector(monitor.OptionsFromConfig(cfg))
		if onceFlag {
			return runOnce(ctx, cmd.OutOrStdout(), collector, cfg, terminalWidth())
		}
		return runDashboard(ctx, collector, cfg, path, overrides)
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/system-monitor/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.Flags().StringVar(&intervalFlag, "interval", "", "refresh interval, overrides refresh_rate (e.g., 2s, 500ms, 1.5)")
	rootCmd.Flags().IntVar(&historyFlag, "history", 0, "samples kept per graph, overrides max_history_points")
	rootCmd.Flags().BoolVar(&onceFlag, "once", false, "print a single frame and exit")
}

// overrides holds root flags that replace config values. They are applied
// again to every hot-reloaded config so a file edit doesn't undo them.
type overrides struct {
	interval time.Duration
	history  int
}

func overridesFromFlags(cmd *cobra.Command) (overrides, error) {
	var o overrides

	interval, err := ParseInterval(intervalFlag)
	if err != nil {
		return o, err
	}
	o.interval = interval

	if cmd.Flags().Changed("history") {
		if historyFlag < 1 {
			return o, errors.New(errors.ErrConfig,
				fmt.Sprintf("--history must be at least 1, got %d", historyFlag),
				"Pass how many samples each graph keeps, like --history 200.")
		}
		o.history = historyFlag
	}
	return o, nil
}

func (o overrides) apply(cfg *config.Config) error {
	if o.interval > 0 {
		cfg.RefreshRate = o.interval.Seconds()
	}
	if o.history > 0 {
		cfg.MaxHistoryPoints = o.history
	}
	return config.Validate(cfg)
}

// ParseInterval parses --interval as a Go duration or as bare seconds.
// Returns zero duration if the flag is empty.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		secs, ferr := strconv.ParseFloat(flag, 64)
		if ferr != nil {
			return 0, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
				"Try something like 2s, 500ms, or 1.5.")
		}
		d = time.Duration(secs * float64(time.Second))
	}

	if d < MinInterval {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", flag),
			fmt.Sprintf("Minimum interval is %s.", MinInterval))
	}
	return d, nil
}

// runDashboard runs the full-screen TUI until the user quits or ctx ends.
func runDashboard(ctx context.Context, collector *monitor.Collector, cfg *config.Config, path string, o overrides) error {
	if logger.DebugEnabled() {
		f, err := tea.LogToFile(debugLogFile, "sysmon")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to open "+debugLogFile,
				"Unset "+logger.DebugEnv+" or run from a writable directory.")
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	model := monitor.NewModel(collector, cfg)
	if path != "" {
		model = model.WithConfigUpdates(watchConfig(path, o))
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Dashboard stopped unexpectedly",
			"Rerun with "+logger.DebugEnv+"=1 and check "+debugLogFile+".")
	}
	return nil
}

// watchConfig streams reloaded configs. Only the latest reload is kept if
// the dashboard hasn't picked up the previous one yet.
func watchConfig(path string, o overrides) <-chan *config.Config {
	ch := make(chan *config.Config, 1)
	err := config.Watch(path, func(cfg *config.Config) {
		if err := o.apply(cfg); err != nil {
			logger.Default().Warn("ignoring reloaded config: %v", err)
			return
		}
		select {
		case ch <- cfg:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- cfg
		}
	})
	if err != nil {
		logger.Default().Warn("config changes won't apply until restart: %v", err)
	}
	return ch
}

// runOnce prints a single frame. It samples twice, one refresh interval
// apart, so CPU load has a baseline and graphs have a second point.
func runOnce(ctx context.Context, out io.Writer, collector *monitor.Collector, cfg *config.Config, width int) error {
	model := monitor.NewModel(collector, cfg)
	model.SetSize(width, 0)

	model.ApplySnapshot(collectOnce(ctx, collector))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(cfg.RefreshInterval()):
	}

	model.ApplySnapshot(collectOnce(ctx, collector))

	_, err := fmt.Fprintln(out, model.Frame())
	return err
}

func collectOnce(ctx context.Context, collector *monitor.Collector) *monitor.Snapshot {
	ctx, cancel := context.WithTimeout(ctx, monitor.CollectTimeout)
	defer cancel()
	return collector.Collect(ctx)
}

// terminalWidth returns stdout's width, or monitor.DefaultWidth when
// stdout isn't a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return monitor.DefaultWidth
	}
	return w
}
