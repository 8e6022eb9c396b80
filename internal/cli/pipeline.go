package cli

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rileyhilliard/sysdash/internal/analysis"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/history"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/metrics"
	"github.com/rileyhilliard/sysdash/internal/poller"
)

// describeTimeout bounds the host lookup done before the first sample.
const describeTimeout = 2 * time.Second

// newSource returns the metrics source used by every command. Tests swap
// it for a scripted source.
var newSource = func() metrics.Source {
	return metrics.NewHostSource()
}

// hostDescriber is implemented by sources that can identify the machine.
type hostDescriber interface {
	Describe(ctx context.Context) (metrics.HostInfo, error)
}

// buildPoller wires a sampler, history, analyzer and controls from cfg.
func buildPoller(cfg *config.Config, src metrics.Source, log logger.Logger) *poller.Poller {
	return poller.New(
		metrics.NewSampler(src),
		history.New(cfg.History.Capacity),
		analysis.NewAnalyzer(analysisConfig(cfg)),
		poller.NewControls(cfg.Clusters.Enabled),
		poller.Options{
			Interval: cfg.Interval,
			Logger:   log,
		},
	)
}

func analysisConfig(cfg *config.Config) analysis.Config {
	ac := analysis.DefaultConfig()
	ac.Window = cfg.Clusters.Window
	ac.Clusters = cfg.Clusters.K
	ac.MinSamples = cfg.Clusters.MinSamples
	ac.Seed = cfg.Clusters.Seed
	ac.StableLabels = cfg.Clusters.StableLabels
	return ac
}

func recommendConfig(cfg *config.Config) analysis.RecommendConfig {
	return analysis.RecommendConfig{
		MinSamples:      cfg.Recommend.MinSamples,
		CPUThreshold:    cfg.Recommend.CPUThreshold,
		MemoryThreshold: cfg.Recommend.MemoryThreshold,
	}
}

// describeHost returns the hostname reported by src, or "localhost" when
// the source cannot say.
func describeHost(ctx context.Context, src metrics.Source, log logger.Logger) string {
	d, ok := src.(hostDescriber)
	if !ok {
		return "localhost"
	}

	ctx, cancel := context.WithTimeout(ctx, describeTimeout)
	defer cancel()

	info, err := d.Describe(ctx)
	if err != nil || info.Hostname == "" {
		if err != nil {
			log.Debug("host lookup failed: %v", err)
		}
		return "localhost"
	}
	log.Debug("host %s (%s %s)", info.Hostname, info.Platform, info.Kernel)
	return info.Hostname
}

// collect runs p until it has produced n samples, then stops it and returns
// the last update. progress, when non-nil, is called after every sample.
// A sampling fault ends collection early with that fault.
func collect(ctx context.Context, p *poller.Poller, n int, progress func(poller.Update)) (poller.Update, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.Run(gctx)
	})

	var last poller.Update
	for u := range p.Updates() {
		if u.Err != nil {
			break
		}
		last = u
		if progress != nil {
			progress(u)
		}
		if u.Seq >= uint64(n) {
			cancel()
		}
	}

	if err := g.Wait(); err != nil {
		return last, err
	}
	if err := ctx.Err(); err != nil && last.Seq < uint64(n) {
		return last, err
	}
	return last, nil
}
