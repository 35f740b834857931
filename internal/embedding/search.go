package embedding

import (
	"fmt"

	wegoemb "github.com/ynqa/wego/pkg/embedding"
	"github.com/ynqa/wego/pkg/search"
	"gonum.org/v1/gonum/floats"
)

// FromEmbeddings builds a model from vectors exported by a wego model.
func FromEmbeddings(embs wegoemb.Embeddings, meta Meta) *Model {
	m := &Model{
		Words:   make([]string, 0, len(embs)),
		Vectors: make([][]float64, 0, len(embs)),
		Meta:    meta,
	}
	for _, emb := range embs {
		vec := make([]float64, len(emb.Vector))
		copy(vec, emb.Vector)
		m.Words = append(m.Words, emb.Word)
		m.Vectors = append(m.Vectors, vec)
	}
	return m
}

// Embeddings converts the named words (all words when none are given) into
// wego embeddings with precomputed norms.
func (m *Model) Embeddings(words ...string) (wegoemb.Embeddings, error) {
	if len(words) == 0 {
		words = m.Words
	}
	embs := make(wegoemb.Embeddings, 0, len(words))
	for _, word := range words {
		vec, ok := m.Vector(word)
		if !ok {
			return nil, fmt.Errorf("word %q not in vocabulary", word)
		}
		embs = append(embs, wegoemb.Embedding{
			Word:   word,
			Dim:    len(vec),
			Vector: vec,
			Norm:   floats.Norm(vec, 2),
		})
	}
	return embs, nil
}

// Searcher returns a wego searcher over the named words, or the whole
// vocabulary when none are given.
func (m *Model) Searcher(words ...string) (*search.Searcher, error) {
	embs, err := m.Embeddings(words...)
	if err != nil {
		return nil, err
	}
	searcher, err := search.New(embs...)
	if err != nil {
		return nil, fmt.Errorf("build searcher: %w", err)
	}
	return searcher, nil
}

// Nearest returns the k vocabulary words most similar to vec.
func (m *Model) Nearest(vec []float64, k int) (search.Neighbors, error) {
	searcher, err := m.Searcher()
	if err != nil {
		return nil, err
	}
	neighbors, err := searcher.SearchVector(vec, k)
	if err != nil {
		return nil, fmt.Errorf("search vector: %w", err)
	}
	return neighbors, nil
}

// Similar returns the k words most similar to word, excluding word itself.
func (m *Model) Similar(word string, k int) (search.Neighbors, error) {
	if _, ok := m.Index(word); !ok {
		return nil, fmt.Errorf("word %q not in vocabulary", word)
	}
	searcher, err := m.Searcher()
	if err != nil {
		return nil, err
	}
	neighbors, err := searcher.SearchInternal(word, k)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", word, err)
	}
	return neighbors, nil
}
