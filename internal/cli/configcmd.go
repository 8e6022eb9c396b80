package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// showConfig prints where the config came from and the effective values
// after flags and environment overrides.
func showConfig(out io.Writer) error {
	_, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	source := path
	if source == "" {
		source = "defaults (no config file found)"
	}
	fmt.Fprintln(out, ui.MutedStyle().Render("# source: "+source))
	_, err = out.Write(data)
	return err
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration sysdash would run with, after layering defaults,
the config file, SYSDASH_* environment variables and global flags.

Examples:
  sysdash config
  SYSDASH_INTERVAL=2s sysdash config
  sysdash config --config ./other.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout())
		},
	}
}
