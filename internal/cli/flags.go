package cli

import (
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// SamplingFlags holds the flags shared by every command that samples.
type SamplingFlags struct {
	Interval   string
	NoClusters bool
}

// AddSamplingFlags registers --interval and --no-clusters on a command.
func AddSamplingFlags(cmd *cobra.Command, flags *SamplingFlags) {
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "sampling interval (e.g., 1s, 500ms); overrides config")
	cmd.Flags().BoolVar(&flags.NoClusters, "no-clusters", false, "start with cluster coloring off")
}

// Apply writes the flag overrides into cfg.
func (f SamplingFlags) Apply(cfg *config.Config) error {
	interval, err := ParseInterval(f.Interval)
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Interval = interval
	}
	if f.NoClusters {
		cfg.Clusters.Enabled = false
	}
	return nil
}

// ParseInterval parses an interval flag into a duration.
// Returns zero duration if the flag is empty.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 1s, 2s, or 500ms.")
	}
	return duration, nil
}

// loadConfig resolves the effective configuration: file and environment,
// then global flags, then the command's overrides. The result is validated
// and the color mode is applied.
func loadConfig(overrides ...func(*config.Config) error) (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}

	if noColor {
		cfg.UI.Color = ui.ColorNever
	}
	if logFile != "" {
		cfg.UI.LogFile = logFile
	}
	for _, o := range overrides {
		if err := o(cfg); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	ui.ApplyColorMode(cfg.UI.Color)
	return cfg, nil
}

// commandLogger returns the logger for a command, honoring --verbose.
func commandLogger(name string) logger.Logger {
	prefix := "[" + name + "]"
	if verbose {
		return logger.NewVerboseLogger(prefix)
	}
	return logger.NewEnvLogger(prefix)
}

// setupLogOutput points the standard logger at path. When path is empty
// and the dashboard owns the terminal, log output is discarded. The
// returned closer is always non-nil.
func setupLogOutput(path string, tui bool) (io.Closer, error) {
	if path != "" {
		f, err := tea.LogToFile(path, "sysdash")
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to open log file",
				"Check that "+path+" is writable")
		}
		return f, nil
	}
	if tui {
		log.SetOutput(io.Discard)
	}
	return io.NopCloser(nil), nil
}
