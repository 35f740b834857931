package lemma

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Dictionary answers lemma lookups. golem.Lemmatizer satisfies it.
type Dictionary interface {
	InDict(word string) bool
	Lemma(word string) string
}

// Lemmatizer reduces words to base forms.
type Lemmatizer struct {
	dict Dictionary
}

// New wraps a lemma dictionary.
func New(dict Dictionary) *Lemmatizer {
	return &Lemmatizer{dict: dict}
}

// NewEnglish loads the bundled English golem dictionary.
func NewEnglish() (*Lemmatizer, error) {
	dict, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return New(dict), nil
}

// Lemma returns the base form of word for pos. Words the dictionary cannot
// resolve come back unchanged.
func (l *Lemmatizer) Lemma(word string, pos POS) string {
	lower := strings.ToLower(word)
	if lower == "" {
		return word
	}
	lemma := l.lemma(lower, pos)
	if lemma == lower {
		return word
	}
	return lemma
}

func (l *Lemmatizer) lemma(word string, pos POS) string {
	if base, ok := exceptions[pos][word]; ok {
		return base
	}
	if l.isBase(word) {
		return word
	}
	for _, rule := range detachments[pos] {
		if len(word) <= len(rule.suffix) || !strings.HasSuffix(word, rule.suffix) {
			continue
		}
		candidate := word[:len(word)-len(rule.suffix)] + rule.replace
		if l.isBase(candidate) {
			return candidate
		}
	}
	if (pos == Verb || pos == Adjective) && l.dict.InDict(word) {
		if base := l.dict.Lemma(word); base != "" {
			return base
		}
	}
	return word
}

func (l *Lemmatizer) isBase(word string) bool {
	return l.dict.InDict(word) && l.dict.Lemma(word) == word
}
