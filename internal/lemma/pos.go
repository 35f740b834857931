package lemma

import "strings"

// POS is a coarse part of speech.
type POS int

const (
	Noun POS = iota
	Verb
	Adjective
	Adverb
)

func (p POS) String() string {
	switch p {
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	case Adverb:
		return "adverb"
	default:
		return "noun"
	}
}

// CoarsePOS maps a Penn Treebank tag to a coarse part of speech by its first
// letter. Tags outside J, V, N and R are treated as nouns.
func CoarsePOS(tag string) POS {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Noun
	}
	switch tag[0] {
	case 'J':
		return Adjective
	case 'V':
		return Verb
	case 'R':
		return Adverb
	default:
		return Noun
	}
}
