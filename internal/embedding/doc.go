// Package embedding holds trained word vectors and persists them as a
// single SQLite model file.
//
// A model file carries a schema_version table, a meta table with the
// training hyperparameters, and one row per vocabulary word holding its
// position and vector. Vectors are stored L2-normalized, so the file is
// suitable for similarity queries but cannot resume training. Similarity
// queries are served by the wego search package.
package embedding
