package cluster

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"subvec/internal/embedding"
	"subvec/internal/logging"
)

// Centroid is a k-means clustering of a model's vocabulary. Clusters are
// named after their representative word.
type Centroid struct {
	model     *embedding.Model
	labels    []int
	centroids *mat.Dense
	inertia   float64
	logger    *slog.Logger
}

// NewCentroid clusters the vocabulary of model into k groups. Every group is
// non-empty, even when words share identical vectors, so Representatives
// always returns k entries.
func NewCentroid(model *embedding.Model, k int, opts ...Option) (*Centroid, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	s := newSettings(opts)
	data := model.Matrix()
	if data == nil {
		return nil, fmt.Errorf("%w: empty model", ErrTooFewWords)
	}
	fit, err := KMeans{K: k, MaxIter: s.maxIter, Inits: s.inits, Rand: s.rand()}.Fit(data)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("kmeans fitted",
		logging.Int("clusters", k),
		logging.Int("words", model.Len()),
		logging.Int("iterations", fit.Iterations),
		logging.Float64("inertia", fit.Inertia),
	)
	return &Centroid{
		model:     model,
		labels:    fit.Labels,
		centroids: fit.Centroids,
		inertia:   fit.Inertia,
		logger:    s.logger,
	}, nil
}

// Inertia is the sum of squared distances of words to their centroid.
func (c *Centroid) Inertia() float64 {
	return c.inertia
}

// Labels returns the cluster index of every vocabulary word, in model order.
func (c *Centroid) Labels() []int {
	out := make([]int, len(c.labels))
	copy(out, c.labels)
	return out
}

// Representatives maps each non-empty cluster index to the member word most
// similar to the cluster centroid.
func (c *Centroid) Representatives() map[int]string {
	members := make(map[int][]string)
	for i, label := range c.labels {
		members[label] = append(members[label], c.model.Words[i])
	}
	reps := make(map[int]string, len(members))
	for label, words := range members {
		reps[label] = c.representative(label, words)
	}
	return reps
}

func (c *Centroid) representative(label int, words []string) string {
	searcher, err := c.model.Searcher(words...)
	if err == nil {
		found, serr := searcher.SearchVector(c.centroids.RawRowView(label), 1)
		if serr == nil && len(found) > 0 {
			return found[0].Word
		}
		err = serr
	}
	if err == nil {
		err = fmt.Errorf("no neighbours for cluster %d", label)
	}
	logging.WarnWithContext(c.logger, "representative search failed", "representative_fallback",
		logging.Int("cluster", label),
		logging.Error(err),
		logging.String(logging.FieldImpact, "cluster named after its first member"),
	)
	return words[0]
}

// LabeledWords maps every vocabulary word to its cluster's representative.
func (c *Centroid) LabeledWords() map[string]string {
	reps := c.Representatives()
	out := make(map[string]string, len(c.labels))
	for i, label := range c.labels {
		out[c.model.Words[i]] = reps[label]
	}
	return out
}

// SortedWords maps each representative to its cluster's members in
// vocabulary order.
func (c *Centroid) SortedWords() map[string][]string {
	reps := c.Representatives()
	out := make(map[string][]string, len(reps))
	for i, label := range c.labels {
		rep := reps[label]
		out[rep] = append(out[rep], c.model.Words[i])
	}
	return out
}
