package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Global         bool // Write ~/.config/sysdash/config.yaml instead of ./.sysdash.yaml
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use defaults
}

// initAnswers holds the values collected by the init form.
type initAnswers struct {
	Interval string
	Clusters bool
	K        int
	Mouse    bool
	Global   bool
}

// Init writes a new config file populated from prompts or defaults.
func Init(opts InitOptions, out io.Writer) error {
	def := config.DefaultConfig()
	answers := initAnswers{
		Interval: def.Interval.String(),
		Clusters: def.Clusters.Enabled,
		K:        def.Clusters.K,
		Mouse:    def.UI.Mouse,
		Global:   opts.Global,
	}

	if !opts.NonInteractive {
		if err := promptInit(&answers); err != nil {
			return err
		}
	}

	configPath, err := initPath(answers.Global)
	if err != nil {
		return err
	}

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg, err := answers.config()
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Save(cfg, configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  sysdash            - Start the dashboard")
	fmt.Fprintln(out, "  sysdash snapshot   - Print a single frame")
	fmt.Fprintln(out, "  sysdash config     - Show the effective config")
	return nil
}

// promptInit asks for each setting, starting from the values in a.
func promptInit(a *initAnswers) error {
	location := "local"
	if a.Global {
		location = "global"
	}

	kOptions := make([]huh.Option[int], 0, config.MaxClusters-1)
	for k := 2; k <= config.MaxClusters; k++ {
		kOptions = append(kOptions, huh.NewOption(strconv.Itoa(k), k))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sampling interval").
				Description("How often to read CPU, memory, disk and network counters").
				Placeholder("1s").
				Value(&a.Interval).
				Validate(validateIntervalInput),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Color samples by behavioral cluster?").
				Value(&a.Clusters),
			huh.NewSelect[int]().
				Title("Number of clusters").
				Options(kOptions...).
				Value(&a.K),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable mouse support for the control buttons?").
				Value(&a.Mouse),
			huh.NewSelect[string]().
				Title("Where should the config live?").
				Options(
					huh.NewOption("This directory ("+config.ConfigFileName+")", "local"),
					huh.NewOption("User config (~/"+config.GlobalConfigDir+"/"+config.GlobalConfigFile+")", "global"),
				).
				Value(&location),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	a.Global = location == "global"
	return nil
}

func validateIntervalInput(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("not a duration, try 1s or 500ms")
	}
	if d < config.MinInterval {
		return fmt.Errorf("must be at least %s", config.MinInterval)
	}
	return nil
}

func (a initAnswers) config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	interval, err := ParseInterval(a.Interval)
	if err != nil {
		return nil, err
	}
	if interval > 0 {
		cfg.Interval = interval
	}
	cfg.Clusters.Enabled = a.Clusters
	cfg.Clusters.K = a.K
	cfg.UI.Mouse = a.Mouse
	return cfg, nil
}

// initPath returns where init writes: ./.sysdash.yaml or the user config.
func initPath(global bool) (string, error) {
	if !global {
		return filepath.Join(".", config.ConfigFileName), nil
	}
	path := config.GlobalPath()
	if path == "" {
		return "", errors.New(errors.ErrConfig,
			"Cannot determine your home directory",
			"Set $HOME, or run init without --global")
	}
	return path, nil
}

func newInitCmd() *cobra.Command {
	var opts InitOptions
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sysdash config file",
		Long: `Create a config file with the sampling interval, clustering and
mouse settings. Prompts for each value unless --non-interactive is given.

Examples:
  sysdash init
  sysdash init --global
  sysdash init --non-interactive --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Init(opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(&opts.Overwrite, "force", "f", false, "overwrite existing config")
	cmd.Flags().BoolVar(&opts.Global, "global", false, "write the user config instead of ./"+config.ConfigFileName)
	cmd.Flags().BoolVarP(&opts.NonInteractive, "non-interactive", "y", false, "skip prompts and write defaults")
	return cmd
}
