package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommend(t *testing.T) {
	cfg := DefaultRecommendConfig()

	tests := []struct {
		name string
		n    int
		cpu  float64
		mem  float64
		want []string
	}{
		{
			name: "high cpu only",
			n:    10, cpu: 80, mem: 60,
			want: []string{MsgHighCPU},
		},
		{
			name: "high memory only",
			n:    10, cpu: 50, mem: 80,
			want: []string{MsgHighRAM},
		},
		{
			name: "both high",
			n:    10, cpu: 95, mem: 95,
			want: []string{MsgHighCPU, MsgHighRAM},
		},
		{
			name: "healthy",
			n:    10, cpu: 50, mem: 50,
			want: []string{MsgOptimized},
		},
		{
			name: "thresholds are strict",
			n:    10, cpu: 70, mem: 75,
			want: []string{MsgOptimized},
		},
		{
			name: "too few samples",
			n:    3, cpu: 99, mem: 99,
			want: []string{MsgInsufficientData},
		},
		{
			name: "exactly the minimum",
			n:    5, cpu: 71, mem: 10,
			want: []string{MsgHighCPU},
		},
		{
			name: "empty",
			n:    0,
			want: []string{MsgInsufficientData},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(constantSamples(tt.n, tt.cpu, tt.mem, 0), cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecommend_UsesMean(t *testing.T) {
	samples := constantSamples(10, 0, 50, 0)
	// five samples at 100% and five idle: mean 50
	for i := 0; i < 5; i++ {
		samples[i].CPU = 100
	}
	assert.Equal(t, []string{MsgOptimized}, Recommend(samples, DefaultRecommendConfig()))

	samples[5].CPU = 100
	samples[6].CPU = 100
	samples[7].CPU = 100
	assert.Equal(t, []string{MsgHighCPU}, Recommend(samples, DefaultRecommendConfig()))
}

func TestRecommend_CustomThresholds(t *testing.T) {
	cfg := RecommendConfig{MinSamples: 2, CPUThreshold: 20, MemoryThreshold: 30}
	got := Recommend(constantSamples(2, 25, 35, 0), cfg)
	assert.Equal(t, []string{MsgHighCPU, MsgHighRAM}, got)
}
