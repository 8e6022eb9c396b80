package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
	logFile string
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "sysdash",
	Short: "Live host metrics dashboard with behavioral clustering",
	Long: `sysdash samples CPU, memory, disk and network usage once per interval,
keeps a rolling history, groups recent samples into behavioral clusters,
and renders everything as a live terminal dashboard.

Running sysdash with no subcommand starts the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd.Context(), monitorFlags)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./.sysdash.yaml, then ~/.config/sysdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	AddSamplingFlags(rootCmd, &monitorFlags)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err in the structured multi-line format when possible.
func printError(w io.Writer, err error) {
	var sdErr *errors.Error
	if stderrors.As(err, &sdErr) {
		fmt.Fprint(w, ui.ErrorStyle().Render(sdErr.Error()))
		return
	}
	fmt.Fprintln(w, ui.ErrorStyle().Render(ui.SymbolFail+" "+err.Error()))
}
