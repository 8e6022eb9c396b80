package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/rileyhilliard/sysdash/internal/analysis"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/metrics"
	"github.com/rileyhilliard/sysdash/internal/poller"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// RecommendOptions holds the flags of the recommend command.
type RecommendOptions struct {
	Interval string
	Samples  int
	JSON     bool
}

// RecommendOutput is the --json payload of the recommend command.
type RecommendOutput struct {
	Samples         int      `json:"samples"`
	MeanCPU         float64  `json:"mean_cpu"`
	MeanMemory      float64  `json:"mean_memory"`
	Recommendations []string `json:"recommendations"`
}

// recommend samples the host and prints advisories for the collected window.
func recommend(ctx context.Context, opts RecommendOptions, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(SamplingFlags{Interval: opts.Interval}.Apply)
	if err != nil {
		return err
	}
	n := opts.Samples
	if n < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("--samples must be positive, got %d", n),
			"Try --samples 10")
	}
	if n == 0 {
		n = cfg.Recommend.MinSamples
	}
	if n > cfg.History.Capacity {
		n = cfg.History.Capacity
	}

	closer, err := setupLogOutput(cfg.UI.LogFile, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	log := commandLogger("recommend")
	p := buildPoller(cfg, newSource(), log)
	p.Controls().SetShowClusters(false)

	spinner := ui.NewSpinner(fmt.Sprintf("Sampling (0/%d)", n))
	spinner.SetOutput(stderr)
	spinner.Start()
	last, err := collect(ctx, p, n, func(u poller.Update) {
		spinner.SetLabel(fmt.Sprintf("Sampling (%d/%d)", u.Seq, n))
	})
	if err != nil {
		spinner.Fail()
		return errors.WrapWithCode(err, errors.ErrSample,
			"Sampling failed before recommendations were ready",
			"Run with --verbose to see which reading failed")
	}
	spinner.SetLabel(fmt.Sprintf("Sampled %d readings", last.Seq))
	spinner.Success()

	recs := analysis.Recommend(last.Snapshot, recommendConfig(cfg))

	if opts.JSON {
		cpu, mem := means(last.Snapshot)
		return WriteJSONSuccess(stdout, RecommendOutput{
			Samples:         len(last.Snapshot),
			MeanCPU:         cpu,
			MeanMemory:      mem,
			Recommendations: recs,
		})
	}

	for _, line := range recommendationLines(recs) {
		fmt.Fprintln(stdout, line)
	}
	return nil
}

// recommendationLines numbers recs from 1. Advisories are highlighted as
// warnings and the all-clear message as success.
func recommendationLines(recs []string) []string {
	if len(recs) == 1 && recs[0] == analysis.MsgInsufficientData {
		return []string{ui.MutedStyle().Render(recs[0])}
	}
	out := make([]string, len(recs))
	for i, r := range recs {
		style := ui.WarningStyle()
		if r == analysis.MsgOptimized {
			style = ui.SuccessStyle()
		}
		out[i] = style.Render(fmt.Sprintf("%d. %s", i+1, r))
	}
	return out
}

func means(samples []metrics.Sample) (cpu, mem float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	c := make([]float64, len(samples))
	m := make([]float64, len(samples))
	for i, s := range samples {
		c[i] = s.CPU
		m[i] = s.Memory
	}
	return stat.Mean(c, nil), stat.Mean(m, nil)
}

func newRecommendCmd() *cobra.Command {
	var opts RecommendOptions
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Sample briefly and print optimization advice",
		Long: `Collect a short window of samples and print advisories based on the
mean CPU and memory usage over that window.

Examples:
  sysdash recommend
  sysdash recommend --samples 10 --interval 500ms
  sysdash recommend --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := recommend(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil && opts.JSON {
				_ = WriteJSONFromError(cmd.OutOrStdout(), err)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&opts.Interval, "interval", "", "sampling interval (e.g., 1s, 500ms); overrides config")
	cmd.Flags().IntVarP(&opts.Samples, "samples", "n", 0, "number of samples to average (default: recommend.min_samples)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print recommendations as JSON")
	return cmd
}
