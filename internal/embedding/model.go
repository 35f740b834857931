package embedding

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Meta records the hyperparameters a model was trained with.
type Meta struct {
	Features   int
	MinCount   int
	Window     int
	Workers    int
	Epochs     int
	Downsample float64
	ModelType  string
	Optimizer  string
	RunID      string
	Sentences  int
	TrainedAt  time.Time
}

// Model is a vocabulary with one vector per word. Words[i] owns Vectors[i].
type Model struct {
	Words   []string
	Vectors [][]float64
	Meta    Meta

	index map[string]int
}

// Name returns the conventional model file name for a hyperparameter set.
func Name(features, minCount, window int) string {
	return fmt.Sprintf("%dFeatures_%dMinWords_%dContext", features, minCount, window)
}

// Len returns the vocabulary size.
func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Words)
}

// Dim returns the vector dimensionality, or 0 for an empty model.
func (m *Model) Dim() int {
	if m == nil || len(m.Vectors) == 0 {
		return 0
	}
	return len(m.Vectors[0])
}

// Validate checks that words and vectors line up.
func (m *Model) Validate() error {
	if m == nil {
		return errors.New("model is nil")
	}
	if len(m.Words) != len(m.Vectors) {
		return fmt.Errorf("model has %d words but %d vectors", len(m.Words), len(m.Vectors))
	}
	dim := m.Dim()
	seen := make(map[string]struct{}, len(m.Words))
	for i, word := range m.Words {
		if word == "" {
			return fmt.Errorf("model word %d is empty", i)
		}
		if _, dup := seen[word]; dup {
			return fmt.Errorf("model word %q appears twice", word)
		}
		seen[word] = struct{}{}
		if len(m.Vectors[i]) != dim {
			return fmt.Errorf("vector for %q has %d dimensions, want %d", word, len(m.Vectors[i]), dim)
		}
	}
	return nil
}

// Index returns the position of word in the vocabulary.
func (m *Model) Index(word string) (int, bool) {
	if m.index == nil || len(m.index) != len(m.Words) {
		m.index = make(map[string]int, len(m.Words))
		for i, w := range m.Words {
			m.index[w] = i
		}
	}
	i, ok := m.index[word]
	return i, ok
}

// Vector returns the vector of word.
func (m *Model) Vector(word string) ([]float64, bool) {
	i, ok := m.Index(word)
	if !ok {
		return nil, false
	}
	return m.Vectors[i], true
}

// Normalize scales every vector to unit L2 norm. Zero vectors are left as is.
func (m *Model) Normalize() {
	for _, vec := range m.Vectors {
		norm := floats.Norm(vec, 2)
		if norm == 0 || math.IsNaN(norm) {
			continue
		}
		floats.Scale(1/norm, vec)
	}
}

// Matrix copies the vectors into a words x dim dense matrix.
func (m *Model) Matrix() *mat.Dense {
	rows, cols := m.Len(), m.Dim()
	if rows == 0 || cols == 0 {
		return nil
	}
	data := mat.NewDense(rows, cols, nil)
	for i, vec := range m.Vectors {
		data.SetRow(i, vec)
	}
	return data
}
