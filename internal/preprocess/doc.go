// Package preprocess cleans one text column of a subtitle table into a
// training corpus, either as one sentence per line or as a rewritten table.
package preprocess
