// Package textproc turns raw subtitle text into token sentences.
//
// A Pipeline applies the enabled steps in a fixed order: punctuation
// stripping, lowercasing, tokenization, stopword removal, lemmatization and
// stemming. Sentence boundaries come from line breaks and prose's segmenter.
package textproc
