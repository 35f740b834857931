package textproc

import (
	"reflect"
	"testing"

	"subvec/internal/lemma"
)

type mapDict map[string]string

func (d mapDict) InDict(word string) bool {
	_, ok := d[word]
	return ok
}

func (d mapDict) Lemma(word string) string {
	if l, ok := d[word]; ok {
		return l
	}
	return word
}

func TestStripPunctuation(t *testing.T) {
	got := StripPunctuation("Hi, you! It's 42 o'clock. Café")
	want := "Hi  you  It s    o clock  Café"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestStopwords(t *testing.T) {
	if len(Stopwords()) != 179 {
		t.Fatalf("expected 179 stopwords, got %d", len(Stopwords()))
	}
	for _, w := range []string{"the", "and", "don't", "t", "ourselves"} {
		if !IsStopword(w) {
			t.Fatalf("expected %q to be a stopword", w)
		}
	}
	if IsStopword("coffee") || IsStopword("The") {
		t.Fatal("unexpected stopword match")
	}
	set := Stopwords()
	delete(set, "the")
	if !IsStopword("the") {
		t.Fatal("Stopwords must return a copy")
	}
}

func TestCleanSentenceRemovesStopwords(t *testing.T) {
	p, err := NewPipeline(Steps{StripPunctuation: true, Lowercase: true, RemoveStopwords: true})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	got, err := p.CleanSentence("The cat, and THE dog!")
	if err != nil {
		t.Fatalf("CleanSentence: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"cat", "dog"}) {
		t.Fatalf("got %q", got)
	}
}

func TestCleanSentenceKeepsCase(t *testing.T) {
	p, err := NewPipeline(Steps{StripPunctuation: true, RemoveStopwords: true})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	got, err := p.CleanSentence("The Cat sat")
	if err != nil {
		t.Fatalf("CleanSentence: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Cat", "sat"}) {
		t.Fatalf("got %q", got)
	}
}

func TestCleanSentenceDropsStopwordLemmas(t *testing.T) {
	dict := mapDict{"them": "them", "thems": "them", "cat": "cat", "cats": "cat"}
	p, err := NewPipeline(
		Steps{StripPunctuation: true, Lowercase: true, RemoveStopwords: true, Lemmatize: true},
		WithLemmatizer(lemma.New(dict)),
	)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	got, err := p.CleanSentence("cats thems")
	if err != nil {
		t.Fatalf("CleanSentence: %v", err)
	}
	for _, tok := range got {
		if IsStopword(tok) {
			t.Fatalf("stopword %q survived in %q", tok, got)
		}
	}
	if len(got) == 0 || got[0] != "cat" {
		t.Fatalf("expected lemmatized cat first, got %q", got)
	}
}

func TestCleanSentenceStems(t *testing.T) {
	p, err := NewPipeline(Steps{StripPunctuation: true, Lowercase: true, Stem: true})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	got, err := p.CleanSentence("Running dogs")
	if err != nil {
		t.Fatalf("CleanSentence: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"run", "dog"}) {
		t.Fatalf("got %q", got)
	}
}

func TestCleanSentenceStemDropsStopwords(t *testing.T) {
	p, err := NewPipeline(Steps{StripPunctuation: true, Lowercase: true, RemoveStopwords: true, Stem: true})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	cases := map[string][]string{
		"The cans are here.":    nil,
		"He wills it.":          nil,
		"the doings":            nil,
		"Several ares of land.": {"sever", "land"},
	}
	for input, want := range cases {
		got, err := p.Clean(input)
		if err != nil {
			t.Fatalf("Clean(%q): %v", input, err)
		}
		var tokens []string
		for _, sentence := range got {
			for _, tok := range sentence {
				if IsStopword(tok) {
					t.Fatalf("stopword %q survived stemming in %q", tok, input)
				}
				tokens = append(tokens, tok)
			}
		}
		if !reflect.DeepEqual(tokens, want) {
			t.Fatalf("Clean(%q) = %q want %q", input, tokens, want)
		}
	}
}

func TestCleanSentenceEnglishLemmas(t *testing.T) {
	p, err := NewPipeline(Steps{StripPunctuation: true, Lowercase: true, Lemmatize: true})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	got, err := p.CleanSentence("The dogs were running.")
	if err != nil {
		t.Fatalf("CleanSentence: %v", err)
	}
	seen := make(map[string]bool)
	for _, tok := range got {
		seen[tok] = true
	}
	if !seen["dog"] || seen["dogs"] {
		t.Fatalf("expected dogs to lemmatize to dog, got %q", got)
	}
}

func TestCleanSplitsSentencesAndLines(t *testing.T) {
	p, err := NewPipeline(Steps{StripPunctuation: true, Lowercase: true})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	got, err := p.Clean("Hello there. How are you?\nFine\n\n...")
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	want := [][]string{{"hello", "there"}, {"how", "are", "you"}, {"fine"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSplitSentencesEmpty(t *testing.T) {
	got, err := SplitSentences(" \n\t\n")
	if err != nil {
		t.Fatalf("SplitSentences: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no sentences, got %q", got)
	}
}
