package analysis

import (
	"github.com/rileyhilliard/sysdash/internal/metrics"
	"gonum.org/v1/gonum/stat"
)

// Advisory messages produced by Recommend.
const (
	MsgInsufficientData = "Insufficient data"
	MsgHighCPU          = "High CPU: Close background apps"
	MsgHighRAM          = "High RAM: Check for memory leaks"
	MsgOptimized        = "System is well optimized"
)

// RecommendConfig holds the thresholds used by Recommend.
type RecommendConfig struct {
	MinSamples      int
	CPUThreshold    float64 // mean CPU % above which MsgHighCPU is raised
	MemoryThreshold float64 // mean memory % above which MsgHighRAM is raised
}

// DefaultRecommendConfig returns the standard thresholds.
func DefaultRecommendConfig() RecommendConfig {
	return RecommendConfig{
		MinSamples:      5,
		CPUThreshold:    70,
		MemoryThreshold: 75,
	}
}

// Recommend derives advisories from the mean CPU and memory usage of samples.
// Thresholds are strict: a mean exactly at the threshold does not trigger.
func Recommend(samples []metrics.Sample, cfg RecommendConfig) []string {
	if len(samples) < cfg.MinSamples || len(samples) == 0 {
		return []string{MsgInsufficientData}
	}

	cpu := make([]float64, len(samples))
	mem := make([]float64, len(samples))
	for i, s := range samples {
		cpu[i] = s.CPU
		mem[i] = s.Memory
	}

	var recs []string
	if stat.Mean(cpu, nil) > cfg.CPUThreshold {
		recs = append(recs, MsgHighCPU)
	}
	if stat.Mean(mem, nil) > cfg.MemoryThreshold {
		recs = append(recs, MsgHighRAM)
	}
	if len(recs) == 0 {
		recs = append(recs, MsgOptimized)
	}
	return recs
}
