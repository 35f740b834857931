// Package train fits a word2vec model on a cleaned corpus and saves the
// resulting word vectors as a model file.
//
// Training runs to completion in one call; no checkpoints are written and
// the optimizer state is discarded once vectors are exported.
package train
