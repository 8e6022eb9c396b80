package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/sysdash/internal/analysis"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/metrics"
	"github.com/rileyhilliard/sysdash/internal/monitor"
	"github.com/rileyhilliard/sysdash/internal/poller"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// Frame size used when stdout is not a terminal.
const (
	fallbackWidth  = 100
	fallbackHeight = 40
)

// SnapshotOptions holds the flags of the snapshot command.
type SnapshotOptions struct {
	SamplingFlags
	Samples int
	Width   int
	Height  int
	JSON    bool
}

// SnapshotOutput is the --json payload of the snapshot command.
type SnapshotOutput struct {
	Host            string           `json:"host"`
	Interval        string           `json:"interval"`
	Samples         []metrics.Sample `json:"samples"`
	Rates           metrics.Rates    `json:"rates"`
	Clusters        *ClusterOutput   `json:"clusters,omitempty"`
	Recommendations []string         `json:"recommendations"`
}

// ClusterOutput describes one clustering pass in --json output. Labels
// cover the last Window samples.
type ClusterOutput struct {
	Window    int         `json:"window"`
	Features  []string    `json:"features"`
	Labels    []int       `json:"labels"`
	Centroids [][]float64 `json:"centroids"`
	Sizes     []int       `json:"sizes"`
}

// snapshot collects samples in the foreground and renders them once.
func snapshot(ctx context.Context, opts SnapshotOptions, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.SamplingFlags.Apply)
	if err != nil {
		return err
	}
	n, err := sampleCount(opts.Samples, cfg)
	if err != nil {
		return err
	}

	closer, err := setupLogOutput(cfg.UI.LogFile, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	log := commandLogger("snapshot")
	src := newSource()
	host := describeHost(ctx, src, log)
	p := buildPoller(cfg, src, log)

	spinner := ui.NewSpinner(fmt.Sprintf("Sampling %s (0/%d)", host, n))
	spinner.SetOutput(stderr)
	spinner.Start()

	last, err := collect(ctx, p, n, func(u poller.Update) {
		spinner.SetLabel(fmt.Sprintf("Sampling %s (%d/%d)", host, u.Seq, n))
	})
	if err != nil {
		spinner.Fail()
		return errors.WrapWithCode(err, errors.ErrSample,
			"Sampling stopped before the snapshot was complete",
			"Run with --verbose to see which reading failed")
	}
	spinner.SetLabel(fmt.Sprintf("Sampled %s (%d samples)", host, last.Seq))
	spinner.Success()

	if opts.JSON {
		return WriteJSONSuccess(stdout, snapshotOutput(host, cfg, last))
	}

	width, height := frameSize(opts.Width, opts.Height)
	frame := monitor.RenderFrame(last, monitor.Options{
		Controls:  p.Controls(),
		Hostname:  host,
		Capacity:  cfg.History.Capacity,
		Interval:  cfg.Interval,
		Recommend: recommendConfig(cfg),
	}, width, height)
	_, err = fmt.Fprintln(stdout, frame)
	return err
}

// sampleCount resolves --samples. Zero means one more than the clustering
// threshold so the frame includes clusters.
func sampleCount(flag int, cfg *config.Config) (int, error) {
	if flag < 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("--samples must be positive, got %d", flag),
			"Try --samples 20")
	}
	if flag == 0 {
		flag = cfg.Clusters.MinSamples + 1
	}
	if flag > cfg.History.Capacity {
		flag = cfg.History.Capacity
	}
	return flag, nil
}

// frameSize fills unset dimensions from the terminal, or the fallback
// size when stdout is not a terminal.
func frameSize(width, height int) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}
	tw, th, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || tw <= 0 || th <= 0 {
		tw, th = fallbackWidth, fallbackHeight
	}
	if width <= 0 {
		width = tw
	}
	if height <= 0 {
		height = th
	}
	return width, height
}

func snapshotOutput(host string, cfg *config.Config, u poller.Update) SnapshotOutput {
	out := SnapshotOutput{
		Host:            host,
		Interval:        cfg.Interval.String(),
		Samples:         u.Snapshot,
		Rates:           metrics.LatestRates(u.Snapshot),
		Recommendations: analysis.Recommend(u.Snapshot, recommendConfig(cfg)),
	}
	if a := u.Assignment; a != nil {
		out.Clusters = &ClusterOutput{
			Window:    len(a.Samples),
			Features:  metrics.FeatureNames,
			Labels:    a.Labels,
			Centroids: a.Centroids,
			Sizes:     a.Sizes(),
		}
	}
	return out
}

func newSnapshotCmd() *cobra.Command {
	var opts SnapshotOptions
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Sample for a few seconds and print one dashboard frame",
		Long: `Collect samples in the foreground, then print a single dashboard frame
and exit. Useful for scripts, CI logs, and terminals without mouse support.

By default enough samples are taken for clustering to kick in.

Examples:
  sysdash snapshot
  sysdash snapshot --samples 5 --interval 200ms
  sysdash snapshot --json | jq '.data.recommendations'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := snapshot(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil && opts.JSON {
				_ = WriteJSONFromError(cmd.OutOrStdout(), err)
			}
			return err
		},
	}
	AddSamplingFlags(cmd, &opts.SamplingFlags)
	cmd.Flags().IntVarP(&opts.Samples, "samples", "n", 0, "number of samples to collect (default: enough to cluster)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "frame width (default: terminal width)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "frame height (default: terminal height)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print samples, clusters and recommendations as JSON")
	return cmd
}
