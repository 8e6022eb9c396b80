package cli

import (
	"context"
	stderrors "errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/monitor"
)

// monitorFlags backs the flags of the root command, which runs the dashboard.
var monitorFlags SamplingFlags

// monitorCommand starts the poller and the dashboard and blocks until the
// user quits or ctx is cancelled. A sampling fault does not end the
// command: the dashboard shows it and keeps handling input.
func monitorCommand(parent context.Context, flags SamplingFlags) error {
	cfg, err := loadConfig(flags.Apply)
	if err != nil {
		return err
	}

	closer, err := setupLogOutput(cfg.UI.LogFile, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	log := commandLogger("monitor")

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	src := newSource()
	p := buildPoller(cfg, src, log)

	model := monitor.NewModel(monitor.Options{
		Controls:  p.Controls(),
		Updates:   p.Updates(),
		Hostname:  describeHost(ctx, src, log),
		Capacity:  cfg.History.Capacity,
		Interval:  cfg.Interval,
		Recommend: recommendConfig(cfg),
		Mouse:     cfg.UI.Mouse,
		Logger:    log,
	})
	defer model.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := p.Run(gctx); err != nil {
			log.Error("poller halted: %s", errors.Summary(err))
		}
		return nil
	})

	_, runErr := tea.NewProgram(model, programOptions(ctx, cfg)...).Run()
	cancel()
	_ = g.Wait()

	if runErr != nil {
		if stderrors.Is(runErr, tea.ErrProgramKilled) && parent.Err() != nil {
			return nil
		}
		return errors.WrapWithCode(runErr, errors.ErrRender,
			"Dashboard exited unexpectedly",
			"Try a larger terminal, or run 'sysdash snapshot' for a single frame")
	}
	return nil
}

// programOptions builds the Bubble Tea options for cfg. The program stops
// when ctx is cancelled.
func programOptions(ctx context.Context, cfg *config.Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

func newMonitorCmd() *cobra.Command {
	var flags SamplingFlags
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Live dashboard (the default command)",
		Long: `Start the interactive dashboard. Same as running sysdash with no subcommand.

Keyboard shortcuts:
  p / space   Pause or resume monitoring
  c           Toggle cluster coloring
  r           Show recommendations
  o           Start optimization
  ?           Show help
  esc         Close overlay
  q / Ctrl+C  Quit

Examples:
  sysdash monitor
  sysdash monitor --interval 500ms
  sysdash monitor --no-clusters`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return monitorCommand(cmd.Context(), flags)
		},
	}
	AddSamplingFlags(cmd, &flags)
	return cmd
}
