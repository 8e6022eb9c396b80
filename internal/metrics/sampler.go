package metrics

import (
	"context"
	"math"
	"time"

	"github.com/rileyhilliard/sysdash/internal/errors"
)

// DefaultTimeout bounds a single read of all counters.
const DefaultTimeout = 5 * time.Second

// Sampler turns raw Source readings into timestamped Samples.
type Sampler struct {
	source  Source
	timeout time.Duration
	now     func() time.Time
}

// NewSampler creates a sampler reading from src.
func NewSampler(src Source) *Sampler {
	return &Sampler{
		source:  src,
		timeout: DefaultTimeout,
		now:     time.Now,
	}
}

// SetTimeout sets the per-sample read timeout. Zero disables it.
func (s *Sampler) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// SetClock replaces the timestamp source. Used by tests.
func (s *Sampler) SetClock(now func() time.Time) {
	s.now = now
}

// Sample reads every counter once. The first failing read aborts the sample
// and is returned as an ErrSample error; no retry is attempted.
func (s *Sampler) Sample(ctx context.Context) (Sample, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cpuPct, err := s.source.CPUPercent(ctx)
	if err != nil {
		return Sample{}, errors.WrapWithCode(err, errors.ErrSample,
			"Failed to read CPU utilisation",
			"Check that the process can read system statistics")
	}

	memPct, err := s.source.MemoryPercent(ctx)
	if err != nil {
		return Sample{}, errors.WrapWithCode(err, errors.ErrSample,
			"Failed to read memory usage",
			"Check that the process can read system statistics")
	}

	disk, err := s.source.DiskCounters(ctx)
	if err != nil {
		return Sample{}, errors.WrapWithCode(err, errors.ErrSample,
			"Failed to read disk I/O counters",
			"Containers and some VMs hide block device statistics")
	}

	nic, err := s.source.NetworkCounters(ctx)
	if err != nil {
		return Sample{}, errors.WrapWithCode(err, errors.ErrSample,
			"Failed to read network counters",
			"Check that network statistics are exposed to this process")
	}

	return Sample{
		Timestamp: s.now(),
		CPU:       clampPercent(cpuPct),
		Memory:    clampPercent(memPct),
		DiskRead:  disk.ReadBytes,
		DiskWrite: disk.WriteBytes,
		NetRecv:   nic.BytesRecv,
		NetSent:   nic.BytesSent,
	}, nil
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
