package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"subvec/internal/embedding"
)

// GroupedModel builds a model whose words fall into well separated groups.
// Group g occupies axis g; members are spread slightly along the next axis
// so no two vectors are identical.
func GroupedModel(groups ...[]string) *embedding.Model {
	dim := len(groups) + 1
	m := &embedding.Model{Meta: embedding.Meta{Features: dim, MinCount: 1, Window: 2, Epochs: 1}}
	for g, words := range groups {
		for i, word := range words {
			vec := make([]float64, dim)
			vec[g] = 10
			vec[g+1] = 0.1 * float64(i+1)
			m.Words = append(m.Words, word)
			m.Vectors = append(m.Vectors, vec)
		}
	}
	m.Normalize()
	return m
}

// SaveModel persists m under dir and returns the model file path.
func SaveModel(t testing.TB, dir string, m *embedding.Model) string {
	t.Helper()

	path := filepath.Join(dir, embedding.Name(m.Meta.Features, m.Meta.MinCount, m.Meta.Window))
	if err := embedding.Save(context.Background(), path, m); err != nil {
		t.Fatalf("save model: %v", err)
	}
	return path
}
