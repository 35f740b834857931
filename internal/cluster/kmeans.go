package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrTooFewWords reports a cluster count larger than the number of points.
var ErrTooFewWords = errors.New("fewer words than clusters")

// KMeans is Lloyd's algorithm with k-means++ seeding and squared Euclidean
// distance. The best of Inits runs by inertia wins.
type KMeans struct {
	K       int
	MaxIter int
	Tol     float64
	Inits   int
	Rand    *rand.Rand
}

// Fit is the outcome of a k-means run.
type Fit struct {
	Labels     []int
	Centroids  *mat.Dense
	Inertia    float64
	Iterations int
}

// Fit clusters the rows of data.
func (km KMeans) Fit(data *mat.Dense) (Fit, error) {
	if data == nil {
		return Fit{}, errors.New("kmeans: no data")
	}
	n, _ := data.Dims()
	if km.K <= 0 {
		return Fit{}, fmt.Errorf("kmeans: cluster count must be positive, got %d", km.K)
	}
	if km.K > n {
		return Fit{}, fmt.Errorf("%w: %d clusters for %d words", ErrTooFewWords, km.K, n)
	}
	if km.MaxIter <= 0 {
		km.MaxIter = 300
	}
	if km.Tol <= 0 {
		km.Tol = 1e-4
	}
	if km.Inits <= 0 {
		km.Inits = 10
	}
	if km.Rand == nil {
		km.Rand = rand.New(rand.NewSource(1))
	}

	var best Fit
	for run := 0; run < km.Inits; run++ {
		fit := km.run(data)
		if run == 0 || fit.Inertia < best.Inertia {
			best = fit
		}
	}
	return best, nil
}

func (km KMeans) run(data *mat.Dense) Fit {
	n, _ := data.Dims()
	centroids := km.seed(data)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	iterations := 0
	for iterations < km.MaxIter {
		iterations++
		changed := assign(data, centroids, labels)
		if !changed && iterations > 1 {
			break
		}
		next := km.update(data, labels)
		shift := centroidShift(centroids, next)
		centroids = next
		if shift < km.Tol {
			break
		}
	}
	assign(data, centroids, labels)
	// Reassignment can empty a cluster again when points or centroids
	// coincide.
	fillEmpty(data, centroids, labels)
	return Fit{
		Labels:     labels,
		Centroids:  centroids,
		Inertia:    inertia(data, centroids, labels),
		Iterations: iterations,
	}
}

// seed picks initial centroids with k-means++.
func (km KMeans) seed(data *mat.Dense) *mat.Dense {
	n, d := data.Dims()
	centroids := mat.NewDense(km.K, d, nil)
	centroids.SetRow(0, data.RawRowView(km.Rand.Intn(n)))

	distances := make([]float64, n)
	for i := range distances {
		distances[i] = math.Inf(1)
	}
	for c := 1; c < km.K; c++ {
		last := centroids.RawRowView(c - 1)
		total := 0.0
		for j := 0; j < n; j++ {
			if dist := squaredDistance(data.RawRowView(j), last); dist < distances[j] {
				distances[j] = dist
			}
			total += distances[j]
		}
		if total == 0 {
			// All remaining points coincide with a chosen centroid.
			centroids.SetRow(c, data.RawRowView(km.Rand.Intn(n)))
			continue
		}
		target := km.Rand.Float64() * total
		chosen := n - 1
		cumulative := 0.0
		for j, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				chosen = j
				break
			}
		}
		centroids.SetRow(c, data.RawRowView(chosen))
	}
	return centroids
}

// update recomputes centroids as member means and repairs empty clusters.
func (km KMeans) update(data *mat.Dense, labels []int) *mat.Dense {
	n, d := data.Dims()
	centroids := mat.NewDense(km.K, d, nil)
	counts := make([]int, km.K)
	for i := 0; i < n; i++ {
		row := centroids.RawRowView(labels[i])
		floats.Add(row, data.RawRowView(i))
		counts[labels[i]]++
	}
	for c := 0; c < km.K; c++ {
		if counts[c] > 0 {
			floats.Scale(1/float64(counts[c]), centroids.RawRowView(c))
		}
	}
	fillEmpty(data, centroids, labels)
	return centroids
}

// fillEmpty gives every empty cluster the point farthest from its current
// centroid, taken from a cluster with more than one member. With at least
// as many points as clusters no cluster stays empty.
func fillEmpty(data, centroids *mat.Dense, labels []int) {
	n, _ := data.Dims()
	k, _ := centroids.Dims()
	counts := make([]int, k)
	for _, label := range labels {
		counts[label]++
	}
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			continue
		}
		far, farDist := -1, -1.0
		for i := 0; i < n; i++ {
			if counts[labels[i]] <= 1 {
				continue
			}
			if dist := squaredDistance(data.RawRowView(i), centroids.RawRowView(labels[i])); dist > farDist {
				far, farDist = i, dist
			}
		}
		if far < 0 {
			continue
		}
		counts[labels[far]]--
		labels[far] = c
		counts[c] = 1
		centroids.SetRow(c, data.RawRowView(far))
	}
}

// assign labels every row with its nearest centroid and reports whether any
// label changed.
func assign(data, centroids *mat.Dense, labels []int) bool {
	n, _ := data.Dims()
	k, _ := centroids.Dims()
	changed := false
	for i := 0; i < n; i++ {
		point := data.RawRowView(i)
		best, bestDist := 0, math.Inf(1)
		for c := 0; c < k; c++ {
			if dist := squaredDistance(point, centroids.RawRowView(c)); dist < bestDist {
				best, bestDist = c, dist
			}
		}
		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

func inertia(data, centroids *mat.Dense, labels []int) float64 {
	total := 0.0
	for i, label := range labels {
		total += squaredDistance(data.RawRowView(i), centroids.RawRowView(label))
	}
	return total
}

func centroidShift(old, next *mat.Dense) float64 {
	k, _ := old.Dims()
	total := 0.0
	for c := 0; c < k; c++ {
		total += squaredDistance(old.RawRowView(c), next.RawRowView(c))
	}
	return total
}

func squaredDistance(a, b []float64) float64 {
	dist := floats.Distance(a, b, 2)
	return dist * dist
}
