package textproc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"subvec/internal/lemma"
)

// Steps selects the cleaning steps. Enabled steps always run in field order.
type Steps struct {
	StripPunctuation bool
	Lowercase        bool
	RemoveStopwords  bool
	Lemmatize        bool
	Stem             bool
}

// Pipeline cleans text according to a fixed set of steps.
type Pipeline struct {
	steps      Steps
	lemmatizer *lemma.Lemmatizer
	lower      cases.Caser
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLemmatizer overrides the lemma dictionary used by the Lemmatize step.
func WithLemmatizer(l *lemma.Lemmatizer) Option {
	return func(p *Pipeline) {
		p.lemmatizer = l
	}
}

// NewPipeline builds a pipeline. The English lemma dictionary is loaded only
// when lemmatization is enabled and no lemmatizer was supplied.
func NewPipeline(steps Steps, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		steps: steps,
		lower: cases.Lower(language.English),
	}
	for _, opt := range opts {
		opt(p)
	}
	if steps.Lemmatize && p.lemmatizer == nil {
		l, err := lemma.NewEnglish()
		if err != nil {
			return nil, err
		}
		p.lemmatizer = l
	}
	return p, nil
}

// Steps returns the configured steps.
func (p *Pipeline) Steps() Steps {
	return p.steps
}

// Clean segments text into sentences and cleans each one. Sentences left
// without tokens are dropped.
func (p *Pipeline) Clean(text string) ([][]string, error) {
	sentences, err := SplitSentences(text)
	if err != nil {
		return nil, err
	}
	cleaned := make([][]string, 0, len(sentences))
	for _, sentence := range sentences {
		tokens, err := p.CleanSentence(sentence)
		if err != nil {
			return nil, err
		}
		if len(tokens) > 0 {
			cleaned = append(cleaned, tokens)
		}
	}
	return cleaned, nil
}

// CleanSentence applies the enabled steps to one sentence and returns its tokens.
func (p *Pipeline) CleanSentence(sentence string) ([]string, error) {
	if p.steps.StripPunctuation {
		sentence = StripPunctuation(sentence)
	}
	if p.steps.Lowercase {
		sentence = p.lower.String(sentence)
	}
	if strings.TrimSpace(sentence) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(sentence,
		prose.WithSegmentation(false),
		prose.WithTagging(p.steps.Lemmatize),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tokenize sentence: %w", err)
	}

	proseTokens := doc.Tokens()
	tokens := make([]string, 0, len(proseTokens))
	for _, tok := range proseTokens {
		word := strings.TrimSpace(tok.Text)
		if word == "" {
			continue
		}
		if p.steps.RemoveStopwords && p.isStopword(word) {
			continue
		}
		if p.steps.Lemmatize {
			word = p.lemmatizer.Lemma(word, lemma.CoarsePOS(tok.Tag))
			if p.steps.RemoveStopwords && p.isStopword(word) {
				continue
			}
		}
		if p.steps.Stem {
			word = english.Stem(word, false)
			if p.steps.RemoveStopwords && p.isStopword(word) {
				continue
			}
		}
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens, nil
}

func (p *Pipeline) isStopword(word string) bool {
	return IsStopword(p.lower.String(word))
}

// StripPunctuation replaces every rune that is not a letter with a space.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, s)
}

// SplitSentences segments text into sentences. Line breaks always end a
// sentence; within a line prose's segmenter finds the boundaries.
func SplitSentences(text string) ([]string, error) {
	var sentences []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc, err := prose.NewDocument(line,
			prose.WithTokenization(false),
			prose.WithTagging(false),
			prose.WithExtraction(false),
		)
		if err != nil {
			return nil, fmt.Errorf("segment sentences: %w", err)
		}
		for _, sentence := range doc.Sentences() {
			if s := strings.TrimSpace(sentence.Text); s != "" {
				sentences = append(sentences, s)
			}
		}
	}
	return sentences, nil
}
