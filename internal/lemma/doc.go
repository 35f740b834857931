// Package lemma reduces English words to dictionary base forms using the
// part of speech reported by a Penn Treebank tagger.
//
// The procedure follows WordNet's morphy: irregular exceptions first, then
// suffix detachment rules for the part of speech, each candidate checked
// against a lemma dictionary. The output depends only on the word and its
// coarse part of speech.
package lemma
