package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"subvec/internal/logging"
)

// Clustering methods.
const (
	MethodKMeans   = "kmeans"
	MethodSpectral = "spectral"
)

// Options configures one clustering run.
type Options struct {
	Model         string
	Method        string
	Clusters      int
	Affinity      string
	Gamma         float64
	Neighbors     int
	MaxIterations int
	// Seed is used only when Seeded is set; otherwise runs are seeded from
	// the clock.
	Seed   int64
	Seeded bool
}

// Group is one cluster of the result. Representative is set only by the
// k-means method.
type Group struct {
	ID             int      `json:"id"`
	Representative string   `json:"representative,omitempty"`
	Words          []string `json:"words"`
}

// Result summarizes a clustering run. Groups are ordered by id.
type Result struct {
	Method string  `json:"method"`
	Model  string  `json:"model"`
	Words  int     `json:"words"`
	Groups []Group `json:"clusters"`
}

// Run loads opts.Model and clusters its vocabulary with opts.Method.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (Result, error) {
	if opts.Method == "" {
		opts.Method = MethodKMeans
	}
	if opts.Method != MethodKMeans && opts.Method != MethodSpectral {
		return Result{}, fmt.Errorf("unsupported cluster method %q (want %s or %s)", opts.Method, MethodKMeans, MethodSpectral)
	}
	model, err := Load(ctx, opts.Model)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	settings := []Option{WithLogger(logger), WithMaxIterations(opts.MaxIterations)}
	if opts.Seeded {
		settings = append(settings, WithSeed(opts.Seed))
	}
	logging.NewComponentLogger(logger, "cluster").Info("clustering vocabulary",
		logging.String("model", opts.Model),
		logging.String("method", opts.Method),
		logging.Int("words", model.Len()),
		logging.Int("clusters", opts.Clusters),
	)

	result := Result{Method: opts.Method, Model: opts.Model, Words: model.Len()}
	if opts.Method == MethodKMeans {
		c, err := NewCentroid(model, opts.Clusters, settings...)
		if err != nil {
			return result, err
		}
		reps := c.Representatives()
		sorted := c.SortedWords()
		for _, id := range sortedKeys(reps) {
			result.Groups = append(result.Groups, Group{ID: id, Representative: reps[id], Words: sorted[reps[id]]})
		}
		return result, nil
	}

	g, err := NewSpectral(model, opts.Clusters, opts.Affinity, opts.Gamma, opts.Neighbors, settings...)
	if err != nil {
		return result, err
	}
	sorted := g.SortedWords()
	for _, id := range sortedKeys(sorted) {
		result.Groups = append(result.Groups, Group{ID: id, Words: sorted[id]})
	}
	return result, nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
