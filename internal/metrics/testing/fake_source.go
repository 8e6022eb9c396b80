// Package testing provides test doubles for the metrics package.
package testing

import (
	"context"
	"sync"

	"github.com/rileyhilliard/sysdash/internal/metrics"
)

// FakeSource returns scripted readings without touching the OS.
// Disk and network counters advance by the configured step on every read
// so that rate calculations see activity.
type FakeSource struct {
	mu sync.Mutex

	cpu      float64
	memory   float64
	disk     metrics.DiskCounters
	net      metrics.NetCounters
	diskStep uint64
	netStep  uint64
	err      error

	// Reads counts completed CPU reads, one per Sample call.
	reads int
}

// NewFakeSource creates a source reporting the given CPU and memory percentages.
func NewFakeSource(cpu, memory float64) *FakeSource {
	return &FakeSource{cpu: cpu, memory: memory}
}

// Set changes the reported CPU and memory percentages.
func (f *FakeSource) Set(cpu, memory float64) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cpu = cpu
	f.memory = memory
	return f
}

// WithDisk sets the starting disk counters and per-read increment.
func (f *FakeSource) WithDisk(start metrics.DiskCounters, step uint64) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disk = start
	f.diskStep = step
	return f
}

// WithNetwork sets the starting network counters and per-read increment.
func (f *FakeSource) WithNetwork(start metrics.NetCounters, step uint64) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.net = start
	f.netStep = step
	return f
}

// Fail makes every subsequent CPU read return err. Pass nil to recover.
func (f *FakeSource) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Reads returns how many successful CPU reads have happened.
func (f *FakeSource) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *FakeSource) CPUPercent(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.reads++
	return f.cpu, nil
}

func (f *FakeSource) MemoryPercent(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.memory, nil
}

func (f *FakeSource) DiskCounters(ctx context.Context) (metrics.DiskCounters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.disk
	f.disk.ReadBytes += f.diskStep
	f.disk.WriteBytes += f.diskStep
	return c, nil
}

func (f *FakeSource) NetworkCounters(ctx context.Context) (metrics.NetCounters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.net
	f.net.BytesRecv += f.netStep
	f.net.BytesSent += f.netStep
	return c, nil
}

var _ metrics.Source = (*FakeSource)(nil)
