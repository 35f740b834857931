package cluster

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"subvec/internal/logging"
)

// Affinity kinds.
const (
	AffinityRBF       = "rbf"
	AffinityNeighbors = "nearest_neighbors"
)

// Spectral clusters points through the leading eigenvectors of a normalized
// affinity matrix.
type Spectral struct {
	K         int
	Affinity  string
	Gamma     float64
	Neighbors int
	Inits     int
	Rand      *rand.Rand
	Logger    *slog.Logger
}

// FitPredict returns one label per row of data.
func (s Spectral) FitPredict(data *mat.Dense) ([]int, error) {
	if data == nil {
		return nil, fmt.Errorf("spectral: no data")
	}
	n, _ := data.Dims()
	if s.K <= 0 {
		return nil, fmt.Errorf("spectral: cluster count must be positive, got %d", s.K)
	}
	if s.K > n {
		return nil, fmt.Errorf("%w: %d clusters for %d words", ErrTooFewWords, s.K, n)
	}

	var affinity *mat.SymDense
	switch s.Affinity {
	case AffinityRBF, "":
		if s.Gamma <= 0 {
			return nil, fmt.Errorf("spectral: gamma must be positive, got %v", s.Gamma)
		}
		affinity = rbfAffinity(data, s.Gamma)
	case AffinityNeighbors:
		if s.Neighbors <= 0 {
			return nil, fmt.Errorf("spectral: neighbors must be positive, got %d", s.Neighbors)
		}
		if s.Neighbors >= n {
			return nil, fmt.Errorf("%w: %d neighbors requested for %d words", ErrTooFewWords, s.Neighbors, n)
		}
		affinity = neighborAffinity(data, s.Neighbors)
		if parts := components(affinity); parts > 1 {
			logging.WarnWithContext(s.Logger, "affinity graph is not fully connected", "affinity_disconnected",
				logging.Int("components", parts),
				logging.Int("neighbors", s.Neighbors),
				logging.String(logging.FieldErrorHint, "raise --neighbors to connect the graph"),
				logging.String(logging.FieldImpact, "spectral embedding may be unreliable"),
			)
		}
	default:
		return nil, fmt.Errorf("spectral: unknown affinity %q (want %s or %s)", s.Affinity, AffinityRBF, AffinityNeighbors)
	}

	embedded, err := spectralEmbedding(affinity, s.K)
	if err != nil {
		return nil, err
	}
	fit, err := KMeans{K: s.K, Inits: s.Inits, Rand: s.Rand}.Fit(embedded)
	if err != nil {
		return nil, err
	}
	return fit.Labels, nil
}

func rbfAffinity(data *mat.Dense, gamma float64) *mat.SymDense {
	n, _ := data.Dims()
	affinity := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		affinity.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			affinity.SetSym(i, j, math.Exp(-gamma*squaredDistance(data.RawRowView(i), data.RawRowView(j))))
		}
	}
	return affinity
}

// neighborAffinity builds the k-nearest-neighbour connectivity graph, with
// every point counted among its own neighbours, and symmetrizes it as
// (C + Cᵀ) / 2.
func neighborAffinity(data *mat.Dense, k int) *mat.SymDense {
	n, _ := data.Dims()
	connectivity := mat.NewDense(n, n, nil)
	order := make([]int, n)
	dist := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			order[j] = j
			dist[j] = squaredDistance(data.RawRowView(i), data.RawRowView(j))
		}
		dist[i] = -1
		sort.SliceStable(order, func(a, b int) bool { return dist[order[a]] < dist[order[b]] })
		for _, j := range order[:k] {
			connectivity.Set(i, j, 1)
		}
	}
	affinity := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			affinity.SetSym(i, j, 0.5*(connectivity.At(i, j)+connectivity.At(j, i)))
		}
	}
	return affinity
}

// components counts connected components of the graph with edges where the
// affinity is positive.
func components(affinity *mat.SymDense) int {
	n := affinity.SymmetricDim()
	seen := make([]bool, n)
	count := 0
	for start := 0; start < n; start++ {
		if seen[start] {
			continue
		}
		count++
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for j := 0; j < n; j++ {
				if !seen[j] && affinity.At(i, j) > 0 {
					seen[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
	return count
}

// spectralEmbedding returns the k leading eigenvectors of D^-1/2 A D^-1/2 as
// rows normalized to unit length.
func spectralEmbedding(affinity *mat.SymDense, k int) (*mat.Dense, error) {
	n := affinity.SymmetricDim()
	scale := make([]float64, n)
	for i := 0; i < n; i++ {
		degree := 0.0
		for j := 0; j < n; j++ {
			degree += affinity.At(i, j)
		}
		if degree > 0 {
			scale[i] = 1 / math.Sqrt(degree)
		}
	}
	normalized := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			normalized.SetSym(i, j, scale[i]*affinity.At(i, j)*scale[j])
		}
	}

	var eigen mat.EigenSym
	if ok := eigen.Factorize(normalized, true); !ok {
		return nil, fmt.Errorf("spectral: eigendecomposition did not converge")
	}
	var vectors mat.Dense
	eigen.VectorsTo(&vectors)

	// Eigenvalues come back ascending; the leading ones are the last columns.
	embedded := mat.NewDense(n, k, nil)
	column := make([]float64, n)
	for c := 0; c < k; c++ {
		mat.Col(column, n-1-c, &vectors)
		flipSign(column)
		embedded.SetCol(c, column)
	}
	for i := 0; i < n; i++ {
		row := embedded.RawRowView(i)
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
	}
	return embedded, nil
}

// flipSign makes the largest magnitude entry positive so results do not
// depend on the solver's sign choice.
func flipSign(v []float64) {
	idx := 0
	for i := range v {
		if math.Abs(v[i]) > math.Abs(v[idx]) {
			idx = i
		}
	}
	if v[idx] < 0 {
		floats.Scale(-1, v)
	}
}
