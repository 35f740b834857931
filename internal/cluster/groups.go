package cluster

import (
	"fmt"

	"subvec/internal/embedding"
	"subvec/internal/logging"
)

// SpectralGroups is a spectral clustering of a model's vocabulary. Clusters
// are identified by integer ids.
type SpectralGroups struct {
	model  *embedding.Model
	labels []int
}

// NewSpectral clusters the vocabulary of model into k groups over an
// affinity graph. gamma applies to the RBF kernel and neighbors to the
// k-nearest-neighbour graph.
func NewSpectral(model *embedding.Model, k int, affinity string, gamma float64, neighbors int, opts ...Option) (*SpectralGroups, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	s := newSettings(opts)
	data := model.Matrix()
	if data == nil {
		return nil, fmt.Errorf("%w: empty model", ErrTooFewWords)
	}
	labels, err := Spectral{
		K:         k,
		Affinity:  affinity,
		Gamma:     gamma,
		Neighbors: neighbors,
		Inits:     s.inits,
		Rand:      s.rand(),
		Logger:    s.logger,
	}.FitPredict(data)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("spectral clustering fitted",
		logging.Int("clusters", k),
		logging.Int("words", model.Len()),
		logging.String("affinity", affinity),
	)
	return &SpectralGroups{model: model, labels: labels}, nil
}

// Labels returns the cluster id of every vocabulary word, in model order.
func (g *SpectralGroups) Labels() []int {
	out := make([]int, len(g.labels))
	copy(out, g.labels)
	return out
}

// LabeledWords maps every vocabulary word to its cluster id.
func (g *SpectralGroups) LabeledWords() map[string]int {
	out := make(map[string]int, len(g.labels))
	for i, label := range g.labels {
		out[g.model.Words[i]] = label
	}
	return out
}

// SortedWords maps each cluster id to its members in vocabulary order.
func (g *SpectralGroups) SortedWords() map[int][]string {
	out := make(map[int][]string)
	for i, label := range g.labels {
		out[label] = append(out[label], g.model.Words[i])
	}
	return out
}
