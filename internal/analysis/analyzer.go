package analysis

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/rileyhilliard/sysdash/internal/metrics"
	"gonum.org/v1/gonum/floats"
)

// Defaults for behavioural clustering.
const (
	DefaultWindow     = 30
	DefaultClusters   = 3
	DefaultMinSamples = 11

	// MaxClusters bounds K so label matching stays a brute-force search.
	MaxClusters = 6
)

// ErrInsufficientSamples is returned by Cluster when the history is too
// short to cluster. Callers skip the tick rather than treat it as a fault.
var ErrInsufficientSamples = errors.New("not enough samples to cluster")

// Config controls the Analyzer.
type Config struct {
	Window       int    // most recent samples considered
	Clusters     int    // K
	MinSamples   int    // history length required before clustering
	MaxIter      int    // Lloyd iteration cap (0 = DefaultMaxIter)
	Seed         uint64 // RNG seed for k-means++ seeding
	StableLabels bool   // keep label numbering consistent across ticks
}

// DefaultConfig returns the standard 30-sample, 3-cluster configuration.
func DefaultConfig() Config {
	return Config{
		Window:       DefaultWindow,
		Clusters:     DefaultClusters,
		MinSamples:   DefaultMinSamples,
		MaxIter:      DefaultMaxIter,
		Seed:         42,
		StableLabels: true,
	}
}

// Assignment is the result of one clustering pass. Samples and Labels are
// parallel: Labels[i] is the cluster of Samples[i].
type Assignment struct {
	Samples   []metrics.Sample
	Labels    []int
	Centroids [][]float64 // raw units, indexed by label, columns per metrics.FeatureNames
}

// Sizes returns the number of samples carrying each label.
func (a Assignment) Sizes() []int {
	sizes := make([]int, len(a.Centroids))
	for _, l := range a.Labels {
		if l >= 0 && l < len(sizes) {
			sizes[l]++
		}
	}
	return sizes
}

// Analyzer clusters the recent window of samples by their
// {cpu, memory, disk_read} features. It is owned by a single goroutine.
type Analyzer struct {
	cfg  Config
	rng  *rand.Rand
	prev [][]float64 // previous centroids in raw units
}

// NewAnalyzer creates an analyzer, filling unset fields from DefaultConfig.
func NewAnalyzer(cfg Config) *Analyzer {
	def := DefaultConfig()
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.Clusters <= 0 {
		cfg.Clusters = def.Clusters
	}
	if cfg.Clusters > MaxClusters {
		cfg.Clusters = MaxClusters
	}
	if cfg.MinSamples < cfg.Clusters {
		cfg.MinSamples = max(def.MinSamples, cfg.Clusters)
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = def.MaxIter
	}
	return &Analyzer{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Ready reports whether n samples of history are enough to cluster.
func (a *Analyzer) Ready(n int) bool {
	return n >= a.cfg.MinSamples
}

// Reset forgets the previous centroids used for label matching.
func (a *Analyzer) Reset() {
	a.prev = nil
}

// Cluster normalises the last Window samples and partitions them into
// Clusters groups. samples must be chronological.
func (a *Analyzer) Cluster(samples []metrics.Sample) (Assignment, error) {
	if !a.Ready(len(samples)) {
		return Assignment{}, ErrInsufficientSamples
	}

	window := samples
	if len(window) > a.cfg.Window {
		window = window[len(window)-a.cfg.Window:]
	}

	raw := make([][]float64, len(window))
	for i, s := range window {
		raw[i] = s.Features()
	}
	normalized, stats := Normalize(raw)

	km := KMeans{K: a.cfg.Clusters, MaxIter: a.cfg.MaxIter, Rand: a.rng}
	labels, centroids, err := km.FitPredict(normalized)
	if err != nil {
		return Assignment{}, err
	}

	if a.cfg.StableLabels && len(a.prev) == len(centroids) {
		perm := matchCentroids(centroids, a.prev, stats)
		labels, centroids = relabel(labels, centroids, perm)
	}

	rawCentroids := make([][]float64, len(centroids))
	for c, centroid := range centroids {
		rawCentroids[c] = UnscaleRow(centroid, stats)
	}
	a.prev = rawCentroids

	out := Assignment{
		Samples:   make([]metrics.Sample, len(window)),
		Labels:    labels,
		Centroids: rawCentroids,
	}
	copy(out.Samples, window)
	return out, nil
}

// matchCentroids finds the permutation perm minimising the summed distance
// between cur[i] and prev[perm[i]], with prev re-expressed in the current
// window's normalised space. The identity wins ties.
func matchCentroids(cur, prevRaw [][]float64, stats []ColumnStats) []int {
	prev := make([][]float64, len(prevRaw))
	for i, p := range prevRaw {
		prev[i] = ScaleRow(p, stats)
	}

	k := len(cur)
	best := identity(k)
	bestCost := math.Inf(1)
	permute(identity(k), 0, func(perm []int) {
		var cost float64
		for i, j := range perm {
			cost += floats.Distance(cur[i], prev[j], 2)
		}
		if cost < bestCost-1e-12 {
			bestCost = cost
			copy(best, perm)
		}
	})
	return best
}

// relabel renames cluster i to perm[i].
func relabel(labels []int, centroids [][]float64, perm []int) ([]int, [][]float64) {
	outLabels := make([]int, len(labels))
	for i, l := range labels {
		outLabels[i] = perm[l]
	}
	outCentroids := make([][]float64, len(centroids))
	for i, c := range centroids {
		outCentroids[perm[i]] = c
	}
	return outLabels, outCentroids
}

func identity(k int) []int {
	p := make([]int, k)
	for i := range p {
		p[i] = i
	}
	return p
}

// permute visits every ordering of p[start:]. The first one visited is p
// as given.
func permute(p []int, start int, visit func([]int)) {
	if start == len(p) {
		visit(p)
		return
	}
	for i := start; i < len(p); i++ {
		p[start], p[i] = p[i], p[start]
		permute(p, start+1, visit)
		p[start], p[i] = p[i], p[start]
	}
}
