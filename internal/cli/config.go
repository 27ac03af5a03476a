package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

var (
	initForce          bool
	initNonInteractive bool
)

// configCmd groups the config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the sysmon config file",
	Long: `Inspect and edit the sysmon config file.

Keys use dot notation matching the file layout, for example
display.graph_height or temperature_thresholds.warning.

Examples:
  sysmon config show
  sysmon config get refresh_rate
  sysmon config set display.show_network true
  sysmon config init`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configPath(cmd.OutOrStdout(), cfgFile)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every effective config value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShow(cmd.OutOrStdout(), cfgFile)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one effective config value",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return config.Keys(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return configGet(cmd.OutOrStdout(), cfgFile, args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one value in the config file",
	Long: `Change one value in the config file, creating the file if needed.

Comments and key order in YAML files are preserved. The change is
refused if the result would not validate.`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.Keys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSet(cmd.OutOrStdout(), cfgFile, args[0], args[1])
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file",
	Long: `Create a config file with the default settings.

Prompts for temperature thresholds and the refresh rate unless
--non-interactive is set.

Examples:
  sysmon config init
  sysmon config init --non-interactive
  sysmon config init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInit(cmd.OutOrStdout(), InitOptions{
			Path:           cfgFile,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
		})
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	configInitCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and write the defaults")

	configCmd.AddCommand(configPathCmd, configShowCmd, configGetCmd, configSetCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// targetPath is the file config set/init write to: --config, then an
// existing file found by the usual search, then the default location.
func targetPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if found, err := config.Find(""); err == nil && found != "" {
		return found
	}
	return config.DefaultPath()
}

func configPath(out io.Writer, explicit string) error {
	path, err := config.Find(explicit)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintf(out, "%s (not created yet)\n", config.DefaultPath())
		return nil
	}
	fmt.Fprintln(out, path)
	return nil
}

func configShow(out io.Writer, explicit string) error {
	cfg, path, err := config.LoadOrDefault(explicit)
	if err != nil {
		return err
	}

	keys := config.Keys()
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		value, err := config.Get(cfg, key)
		if err != nil {
			return err
		}
		rows = append(rows, []string{key, formatValue(value)})
	}

	source := "built-in defaults"
	if path != "" {
		source = path
	}
	fmt.Fprintf(out, "Source: %s\n\n", source)
	fmt.Fprintln(out, ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "Key", Width: 36},
		{Title: "Value", Width: 12},
	}, rows))
	return nil
}

func configGet(out io.Writer, explicit, key string) error {
	cfg, _, err := config.LoadOrDefault(explicit)
	if err != nil {
		return err
	}
	value, err := config.Get(cfg, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatValue(value))
	return nil
}

func configSet(out io.Writer, explicit, key, value string) error {
	path := targetPath(explicit)
	if path == "" {
		return errors.New(errors.ErrConfig,
			"Can't work out where to write the config",
			"Pass --config with a file path.")
	}
	if err := config.SetValue(path, key, value); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s Set %s = %s in %s\n", ui.SymbolSuccess, key, value, path)
	return nil
}

// formatValue prints floats without trailing zeros and everything else
// with its default format.
func formatValue(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// InitOptions configures config init.
type InitOptions struct {
	Path           string // Empty means the default location
	Overwrite      bool
	NonInteractive bool
}

func configInit(out io.Writer, opts InitOptions) error {
	path := opts.Path
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"Can't work out where to write the config",
			"Pass --config with a file path.")
	}

	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s already exists", path),
			"Use --force to overwrite it, or 'sysmon config set' to change single values.")
	}

	cfg := config.DefaultConfig()
	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SymbolSuccess, path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  sysmon               - Start the dashboard")
	fmt.Fprintln(out, "  sysmon config show   - Review every setting")
	fmt.Fprintln(out, "  sysmon doctor        - Check temperature sources")
	return nil
}

// promptConfig asks for the values people most often change.
func promptConfig(cfg *config.Config) error {
	warning := formatValue(cfg.TemperatureThresholds.Warning)
	critical := formatValue(cfg.TemperatureThresholds.Critical)
	refresh := formatValue(cfg.RefreshRate)
	showGPU := cfg.Display.ShowGPU
	showNetwork := cfg.Display.ShowNetwork

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Warning temperature (°C)").
				Description("Graph bars turn yellow at this temperature").
				Placeholder(warning).
				Value(&warning).
				Validate(validateNumber),
			huh.NewInput().
				Title("Critical temperature (°C)").
				Description("Graph bars turn red at this temperature").
				Placeholder(critical).
				Value(&critical).
				Validate(validateNumber),
			huh.NewInput().
				Title("Refresh rate (seconds)").
				Placeholder(refresh).
				Value(&refresh).
				Validate(validateNumber),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show the GPU panel?").
				Description("Needs nvidia-smi or nvidia-settings").
				Value(&showGPU),
			huh.NewConfirm().
				Title("Show the network panel?").
				Value(&showNetwork),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running in an interactive terminal, or use --non-interactive")
	}

	// Validated by the form
	cfg.TemperatureThresholds.Warning, _ = strconv.ParseFloat(warning, 64)
	cfg.TemperatureThresholds.Critical, _ = strconv.ParseFloat(critical, 64)
	cfg.RefreshRate, _ = strconv.ParseFloat(refresh, 64)
	cfg.Display.ShowGPU = showGPU
	cfg.Display.ShowNetwork = showNetwork
	return nil
}

func validateNumber(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}
