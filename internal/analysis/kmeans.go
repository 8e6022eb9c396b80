package analysis

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// DefaultMaxIter bounds Lloyd iterations when KMeans.MaxIter is unset.
const DefaultMaxIter = 100

// KMeans partitions points into K groups minimising within-cluster variance.
// Seeding uses k-means++; refinement is Lloyd's algorithm.
type KMeans struct {
	K       int
	MaxIter int
	Rand    *rand.Rand
}

// FitPredict clusters points and returns one label in [0, K) per point,
// along with the final centroids. Returns an error if there are fewer
// points than clusters.
func (km KMeans) FitPredict(points [][]float64) ([]int, [][]float64, error) {
	if km.K < 1 {
		return nil, nil, fmt.Errorf("kmeans: k must be positive, got %d", km.K)
	}
	if len(points) < km.K {
		return nil, nil, fmt.Errorf("kmeans: need at least %d points, got %d", km.K, len(points))
	}
	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}
	rng := km.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}

	centroids := seedPlusPlus(points, km.K, rng)
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	converged := false
	for iter := 0; iter < maxIter; iter++ {
		changed := assign(points, centroids, labels)
		if !changed && iter > 0 {
			converged = true
			break
		}
		recompute(points, centroids, labels)
	}
	// The last step moved the centroids; labels must match where they ended up.
	if !converged {
		assign(points, centroids, labels)
	}

	return labels, centroids, nil
}

// seedPlusPlus picks K initial centroids, each new one drawn with
// probability proportional to its squared distance from the nearest
// centroid already chosen.
func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.IntN(len(points))]))

	d2 := make([]float64, len(points))
	for len(centroids) < k {
		var sum float64
		for i, p := range points {
			d2[i] = nearestSq(p, centroids)
			sum += d2[i]
		}

		// Every point coincides with a centroid; any choice is equivalent.
		if sum == 0 {
			centroids = append(centroids, clone(points[rng.IntN(len(points))]))
			continue
		}

		target := rng.Float64() * sum
		pick := len(points) - 1
		for i, d := range d2 {
			target -= d
			if target <= 0 {
				pick = i
				break
			}
		}
		centroids = append(centroids, clone(points[pick]))
	}
	return centroids
}

// assign labels each point with its nearest centroid (lowest index wins ties)
// and reports whether any label changed.
func assign(points, centroids [][]float64, labels []int) bool {
	changed := false
	for i, p := range points {
		best, bestDist := 0, math.Inf(1)
		for c, centroid := range centroids {
			if d := floats.Distance(p, centroid, 2); d < bestDist {
				best, bestDist = c, d
			}
		}
		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

// recompute moves each centroid to the mean of its members. An empty
// cluster takes over the point farthest from its own centroid, provided
// that point is not already sitting on it.
func recompute(points, centroids [][]float64, labels []int) {
	dims := len(points[0])
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, dims)
	}
	for i, p := range points {
		floats.Add(sums[labels[i]], p)
		counts[labels[i]]++
	}

	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		floats.Scale(1/float64(counts[c]), sums[c])
		centroids[c] = sums[c]
	}

	for c := range centroids {
		if counts[c] > 0 {
			continue
		}
		far, farDist := -1, 0.0
		for i, p := range points {
			if counts[labels[i]] <= 1 {
				continue
			}
			if d := floats.Distance(p, centroids[labels[i]], 2); d > farDist {
				far, farDist = i, d
			}
		}
		if far < 0 {
			continue
		}
		counts[labels[far]]--
		labels[far] = c
		counts[c] = 1
		centroids[c] = clone(points[far])
	}
}

func nearestSq(p []float64, centroids [][]float64) float64 {
	best := math.Inf(1)
	for _, c := range centroids {
		d := floats.Distance(p, c, 2)
		if d*d < best {
			best = d * d
		}
	}
	return best
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
