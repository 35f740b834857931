// Package corpus reads and writes the delimited subtitle table and the
// one-sentence-per-line cleaned corpus that flow between pipeline stages.
package corpus
