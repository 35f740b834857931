// Package cluster groups the vocabulary of an embedding model.
//
// Two variants share the same engines. Centroid runs k-means on the word
// vectors and names every cluster after the member word closest to its
// centroid. SpectralGroups builds a similarity graph (RBF kernel or
// k-nearest-neighbour connectivity), embeds it with the leading eigenvectors
// of the normalized affinity matrix, and runs k-means in that space.
//
// Both variants keep only the fitted labels; the word maps they expose are
// rebuilt from those labels on every call.
package cluster
