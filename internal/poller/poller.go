// Package poller runs the background sampling loop.
//
// Each tick the poller samples the host, appends to the rolling history,
// optionally clusters the recent window, and posts an Update on a channel.
// The dashboard is the only consumer of that channel, so all rendering
// happens on the UI goroutine.
//
// A sampling failure is fatal to the loop: the poller posts a final Update
// carrying the error, closes the channel, and never samples again.
package poller

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/sysdash/internal/analysis"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/history"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/metrics"
)

const (
	// DefaultInterval is the time between ticks.
	DefaultInterval = time.Second

	// DefaultBufferSize is the capacity of the updates channel.
	DefaultBufferSize = 16
)

// ErrStopped is returned by Tick once the poller has halted on a fault.
var ErrStopped = stderrors.New("poller stopped")

// Sampler produces one sample per call.
type Sampler interface {
	Sample(ctx context.Context) (metrics.Sample, error)
}

// Update is one message from the poller to the dashboard. Snapshot is an
// immutable copy of the history taken right after Sample was appended.
type Update struct {
	Seq        uint64
	Sample     metrics.Sample
	Snapshot   []metrics.Sample
	Assignment *analysis.Assignment // nil when clustering is off or not yet possible
	Err        error                // set on the final update of a halted poller
}

// Options configures a Poller.
type Options struct {
	Interval   time.Duration
	BufferSize int
	Logger     logger.Logger
}

// Poller owns the history and analyzer and is their only writer.
type Poller struct {
	sampler  Sampler
	history  *history.History
	analyzer *analysis.Analyzer
	controls *Controls
	interval time.Duration
	log      logger.Logger

	updates   chan Update
	closeOnce sync.Once
	seq       uint64

	mu      sync.Mutex
	err     error
	stopped atomic.Bool
}

// New creates a poller. The analyzer may be nil to disable clustering.
func New(s Sampler, h *history.History, a *analysis.Analyzer, c *Controls, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	return &Poller{
		sampler:  s,
		history:  h,
		analyzer: a,
		controls: c,
		interval: opts.Interval,
		log:      opts.Logger,
		updates:  make(chan Update, opts.BufferSize),
	}
}

// Updates returns the channel the dashboard drains. It is closed when Run returns.
func (p *Poller) Updates() <-chan Update {
	return p.updates
}

// Controls returns the shared pause/cluster flags.
func (p *Poller) Controls() *Controls {
	return p.controls
}

// History returns the history the poller writes to.
func (p *Poller) History() *history.History {
	return p.history
}

// Stopped reports whether the poller halted on a sampling fault.
func (p *Poller) Stopped() bool {
	return p.stopped.Load()
}

// Err returns the fault that halted the poller, if any.
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Run ticks until ctx is cancelled or sampling fails. The first tick fires
// immediately. Returns nil on cancellation and the sampling error otherwise.
func (p *Poller) Run(ctx context.Context) error {
	defer p.closeUpdates()

	p.log.Debug("polling every %s", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			p.log.Debug("poller cancelled after %d samples", p.seq)
			return nil
		}
		u, ok, err := p.Tick(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if stderrors.Is(err, ErrStopped) {
				err = p.Err()
			}
			p.send(ctx, Update{Seq: p.seq, Err: err})
			return err
		}
		if ok {
			p.send(ctx, u)
		}

		select {
		case <-ctx.Done():
			p.log.Debug("poller cancelled after %d samples", p.seq)
			return nil
		case <-ticker.C:
		}
	}
}

// Tick performs one iteration. ok is false when the tick was skipped
// because monitoring is paused. A sampling failure halts the poller: this
// and every later call return an error without sampling.
func (p *Poller) Tick(ctx context.Context) (u Update, ok bool, err error) {
	if p.stopped.Load() {
		return Update{}, false, ErrStopped
	}
	if !p.controls.Active() {
		return Update{}, false, nil
	}

	s, err := p.sampler.Sample(ctx)
	if err != nil {
		// A cancelled context is shutdown, not a fault.
		if ctx.Err() != nil {
			return Update{}, false, ctx.Err()
		}
		p.halt(err)
		return Update{}, false, err
	}

	p.history.Append(s)
	p.seq++

	u = Update{
		Seq:      p.seq,
		Sample:   s,
		Snapshot: p.history.All(),
	}

	// A clustering failure only costs this tick its colors.
	a, err := p.cluster(u.Snapshot)
	if err != nil {
		p.log.Warn("%s", errors.Summary(err))
	}
	u.Assignment = a

	return u, true, nil
}

// cluster returns the assignment for snapshot, or nil when clustering is
// off or not yet possible. Turning clustering off forgets the previous
// centroids so labels start fresh when it comes back on.
func (p *Poller) cluster(snapshot []metrics.Sample) (*analysis.Assignment, error) {
	if p.analyzer == nil {
		return nil, nil
	}
	if !p.controls.ShowClusters() {
		p.analyzer.Reset()
		return nil, nil
	}
	if !p.analyzer.Ready(len(snapshot)) {
		return nil, nil
	}

	a, err := p.analyzer.Cluster(snapshot)
	switch {
	case err == nil:
		return &a, nil
	case stderrors.Is(err, analysis.ErrInsufficientSamples):
		return nil, nil
	default:
		return nil, errors.WrapWithCode(err, errors.ErrCluster,
			"Clustering skipped for this tick",
			"Check that clusters.window is at least clusters.k")
	}
}

func (p *Poller) halt(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
	p.stopped.Store(true)
	p.log.Error("sampling failed, monitoring stopped: %s", errors.Summary(err))
}

func (p *Poller) send(ctx context.Context, u Update) {
	if ctx.Err() != nil {
		return
	}
	select {
	case p.updates <- u:
	case <-ctx.Done():
	}
}

func (p *Poller) closeUpdates() {
	p.closeOnce.Do(func() { close(p.updates) })
}
