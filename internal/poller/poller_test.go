package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rileyhilliard/sysdash/internal/analysis"
	sderrors "github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/history"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/metrics"
	mtesting "github.com/rileyhilliard/sysdash/internal/metrics/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	source   *mtesting.FakeSource
	history  *history.History
	controls *Controls
	log      *logger.BufferLogger
	poller   *Poller
}

func newFixture(t *testing.T, interval time.Duration) *fixture {
	t.Helper()
	src := mtesting.NewFakeSource(50, 50).
		WithDisk(metrics.DiskCounters{}, 4096).
		WithNetwork(metrics.NetCounters{}, 1024)
	f := &fixture{
		source:   src,
		history:  history.New(history.DefaultCapacity),
		controls: NewControls(true),
		log:      logger.NewBufferLogger(),
	}
	f.poller = New(metrics.NewSampler(src), f.history, analysis.NewAnalyzer(analysis.DefaultConfig()), f.controls, Options{
		Interval: interval,
		Logger:   f.log,
	})
	return f
}

func (f *fixture) tickN(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, _, err := f.poller.Tick(context.Background())
		require.NoError(t, err)
	}
}

func TestTick_AppendsAndSnapshots(t *testing.T) {
	f := newFixture(t, time.Second)

	u, ok, err := f.poller.Tick(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(1), u.Seq)
	assert.Equal(t, 50.0, u.Sample.CPU)
	assert.Len(t, u.Snapshot, 1)
	assert.Nil(t, u.Assignment)
	assert.Equal(t, 1, f.history.Len())

	// snapshot is a copy
	u.Snapshot[0].CPU = 1
	last, _ := f.history.Last()
	assert.Equal(t, 50.0, last.CPU)
}

func TestTick_PauseSkipsSampling(t *testing.T) {
	f := newFixture(t, time.Second)
	f.tickN(t, 3)

	f.controls.Pause()
	for i := 0; i < 5; i++ {
		_, ok, err := f.poller.Tick(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 3, f.history.Len(), "no appends while paused")
	assert.Equal(t, 3, f.source.Reads(), "no OS reads while paused")

	f.controls.Resume()
	f.tickN(t, 2)
	assert.Equal(t, 5, f.history.Len(), "appends continue after resume")
}

func TestTick_ClustersOnceEnoughSamples(t *testing.T) {
	f := newFixture(t, time.Second)

	for i := 1; i < analysis.DefaultMinSamples; i++ {
		u, _, err := f.poller.Tick(context.Background())
		require.NoError(t, err)
		assert.Nil(t, u.Assignment, "tick %d", i)
	}

	u, _, err := f.poller.Tick(context.Background())
	require.NoError(t, err)
	require.NotNil(t, u.Assignment)
	assert.Len(t, u.Assignment.Labels, analysis.DefaultMinSamples)
	for _, l := range u.Assignment.Labels {
		assert.Contains(t, []int{0, 1, 2}, l)
	}
}

func TestTick_ClusterToggle(t *testing.T) {
	f := newFixture(t, time.Second)
	f.tickN(t, 20)

	f.controls.SetShowClusters(false)
	u, ok, err := f.poller.Tick(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, u.Assignment)

	f.controls.SetShowClusters(true)
	u, _, err = f.poller.Tick(context.Background())
	require.NoError(t, err)
	require.NotNil(t, u.Assignment)
	assert.Len(t, u.Assignment.Labels, analysis.DefaultWindow)
}

func TestTick_ClusterFailureKeepsSampling(t *testing.T) {
	f := newFixture(t, time.Second)
	f.poller = New(metrics.NewSampler(f.source), f.history,
		analysis.NewAnalyzer(analysis.Config{Window: 2, Clusters: 3}), f.controls,
		Options{Interval: time.Second, Logger: f.log})
	f.tickN(t, analysis.DefaultMinSamples)

	_, err := f.poller.cluster(f.history.All())
	require.Error(t, err)
	assert.True(t, sderrors.IsCode(err, sderrors.ErrCluster))
	assert.Contains(t, err.Error(), "need at least 3 points")

	u, ok, err := f.poller.Tick(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, u.Assignment)
	assert.False(t, f.poller.Stopped())
	assert.True(t, f.log.HasLevel("warn"))
}

func TestTick_HistoryCapped(t *testing.T) {
	f := newFixture(t, time.Second)
	f.tickN(t, 100)
	assert.Equal(t, history.DefaultCapacity, f.history.Len())

	u, _, err := f.poller.Tick(context.Background())
	require.NoError(t, err)
	assert.Len(t, u.Snapshot, history.DefaultCapacity)
	assert.Equal(t, uint64(101), u.Seq)
}

func TestTick_FaultHaltsPermanently(t *testing.T) {
	f := newFixture(t, time.Second)
	f.tickN(t, 4)

	boom := errors.New("counters vanished")
	f.source.Fail(boom)

	_, ok, err := f.poller.Tick(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.True(t, sderrors.IsCode(err, sderrors.ErrSample))
	assert.True(t, f.poller.Stopped())
	assert.ErrorIs(t, f.poller.Err(), boom)
	assert.True(t, f.log.HasLevel("error"))

	// recovering the source does not restart the loop
	f.source.Fail(nil)
	readsBefore := f.source.Reads()
	for i := 0; i < 3; i++ {
		_, ok, err := f.poller.Tick(context.Background())
		assert.ErrorIs(t, err, ErrStopped)
		assert.False(t, ok)
	}
	assert.Equal(t, readsBefore, f.source.Reads())
	assert.Equal(t, 4, f.history.Len())
}

func TestRun_StreamsUpdates(t *testing.T) {
	f := newFixture(t, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.poller.Run(ctx) }()

	var last uint64
	for i := 0; i < 3; i++ {
		select {
		case u := <-f.poller.Updates():
			require.NoError(t, u.Err)
			assert.Greater(t, u.Seq, last)
			last = u.Seq
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for update")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// drain; channel must be closed
	for range f.poller.Updates() {
	}
}

func TestRun_CancelledBeforeStartSamplesNothing(t *testing.T) {
	f := newFixture(t, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.poller.Run(ctx))

	assert.Equal(t, 0, f.source.Reads())
	assert.Equal(t, 0, f.history.Len())
	_, ok := <-f.poller.Updates()
	assert.False(t, ok)
}

func TestSend_DropsUpdateAfterCancel(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the channel has room, so only the cancellation check keeps it empty
	f.poller.send(ctx, Update{Seq: 1})
	assert.Len(t, f.poller.updates, 0)
}

func TestRun_FaultClosesChannel(t *testing.T) {
	f := newFixture(t, 5*time.Millisecond)
	boom := errors.New("no /proc")
	f.source.Fail(boom)

	err := f.poller.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	u, ok := <-f.poller.Updates()
	require.True(t, ok, "final update carries the error")
	assert.ErrorIs(t, u.Err, boom)

	_, ok = <-f.poller.Updates()
	assert.False(t, ok, "channel closed after the fault")
	assert.Equal(t, 0, f.history.Len())
}

func TestRun_PausedProducesNothing(t *testing.T) {
	f := newFixture(t, 5*time.Millisecond)
	f.controls.Pause()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	require.NoError(t, f.poller.Run(ctx))

	assert.Equal(t, 0, f.history.Len())
	_, ok := <-f.poller.Updates()
	assert.False(t, ok)
}

func TestNew_Defaults(t *testing.T) {
	p := New(metrics.NewSampler(mtesting.NewFakeSource(1, 1)), history.New(0), nil, NewControls(true), Options{})
	assert.Equal(t, DefaultInterval, p.interval)
	assert.Equal(t, DefaultBufferSize, cap(p.updates))

	// nil analyzer never clusters
	for i := 0; i < 15; i++ {
		u, _, err := p.Tick(context.Background())
		require.NoError(t, err)
		assert.Nil(t, u.Assignment)
	}
}
