package metrics

import "time"

// Sample is one observation of host resource usage. Byte counters are
// cumulative since boot, as reported by the OS.
type Sample struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	CPU       float64   `json:"cpu" yaml:"cpu"`       // 0-100
	Memory    float64   `json:"memory" yaml:"memory"` // 0-100
	DiskRead  uint64    `json:"disk_read" yaml:"disk_read"`
	DiskWrite uint64    `json:"disk_write" yaml:"disk_write"`
	NetRecv   uint64    `json:"net_recv" yaml:"net_recv"`
	NetSent   uint64    `json:"net_sent" yaml:"net_sent"`
}

// FeatureNames labels the columns returned by Features.
var FeatureNames = []string{"cpu", "memory", "disk_read"}

// Features returns the vector used for behavioural clustering.
func (s Sample) Features() []float64 {
	return []float64{s.CPU, s.Memory, float64(s.DiskRead)}
}

// Rates holds per-second throughput derived from two consecutive samples.
type Rates struct {
	DiskReadPerSec  float64
	DiskWritePerSec float64
	NetRecvPerSec   float64
	NetSentPerSec   float64
}

// ComputeRates derives throughput between prev and cur. A counter that went
// backwards (reset or wraparound) yields a zero rate for that counter.
// Returns zero Rates if the timestamps are not strictly increasing.
func ComputeRates(prev, cur Sample) Rates {
	secs := cur.Timestamp.Sub(prev.Timestamp).Seconds()
	if secs <= 0 {
		return Rates{}
	}
	return Rates{
		DiskReadPerSec:  counterRate(prev.DiskRead, cur.DiskRead, secs),
		DiskWritePerSec: counterRate(prev.DiskWrite, cur.DiskWrite, secs),
		NetRecvPerSec:   counterRate(prev.NetRecv, cur.NetRecv, secs),
		NetSentPerSec:   counterRate(prev.NetSent, cur.NetSent, secs),
	}
}

// LatestRates computes rates from the last two entries of a chronological slice.
func LatestRates(samples []Sample) Rates {
	if len(samples) < 2 {
		return Rates{}
	}
	return ComputeRates(samples[len(samples)-2], samples[len(samples)-1])
}

func counterRate(prev, cur uint64, secs float64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur-prev) / secs
}
