package train_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"subvec/internal/embedding"
	"subvec/internal/logging"
	"subvec/internal/testsupport"
	"subvec/internal/train"
)

func smallOptions(t *testing.T, corpusText string) train.Options {
	t.Helper()
	dir := t.TempDir()
	opts := train.DefaultOptions()
	opts.Corpus = testsupport.WriteText(t, filepath.Join(dir, "corpus.txt"), corpusText)
	opts.OutputDir = filepath.Join(dir, "models")
	opts.Features = 8
	opts.MinCount = 1
	opts.Workers = 1
	opts.Window = 2
	opts.Epochs = 2
	opts.RunID = "run-test"
	return opts
}

func TestRunTrainsAndSavesModel(t *testing.T) {
	text := strings.Repeat("the coffee shop opens early\nthe tea shop closes late\ncoffee and tea are drinks\n", 20)
	opts := smallOptions(t, text)

	result, err := train.Run(context.Background(), opts, logging.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if filepath.Base(result.Output) != "8Features_1MinWords_2Context" {
		t.Fatalf("unexpected output %q", result.Output)
	}
	if result.Sentences != 60 || result.Tokens != 300 {
		t.Fatalf("unexpected counts %+v", result)
	}

	model, err := embedding.Load(context.Background(), result.Output)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if model.Len() != result.Words || model.Dim() != 8 {
		t.Fatalf("unexpected model shape %d x %d", model.Len(), model.Dim())
	}
	if _, ok := model.Vector("coffee"); !ok {
		t.Fatalf("expected coffee in vocabulary: %v", model.Words)
	}
	for i, vec := range model.Vectors {
		var sum float64
		for _, v := range vec {
			sum += v * v
		}
		if math.Abs(math.Sqrt(sum)-1) > 1e-9 {
			t.Fatalf("vector %q not normalized: norm %v", model.Words[i], math.Sqrt(sum))
		}
	}
	if model.Meta.RunID != "run-test" || model.Meta.ModelType != "cbow" || model.Meta.Optimizer != "ns" {
		t.Fatalf("unexpected meta %+v", model.Meta)
	}
}

func TestRunSkipGramHierarchicalSoftmax(t *testing.T) {
	opts := smallOptions(t, strings.Repeat("red green blue\nblue green red\n", 10))
	opts.ModelType = train.ModelSkipGram
	opts.Optimizer = train.OptimizerHS
	result, err := train.Run(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Words != 3 {
		t.Fatalf("expected 3 words, got %d", result.Words)
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	opts := smallOptions(t, "\n\n")
	_, err := train.Run(context.Background(), opts, nil)
	if !errors.Is(err, train.ErrEmptyVocabulary) {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestRunMinCountFiltersEverything(t *testing.T) {
	opts := smallOptions(t, "one two three\n")
	opts.MinCount = 5
	_, err := train.Run(context.Background(), opts, nil)
	if !errors.Is(err, train.ErrEmptyVocabulary) {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	cases := map[string]func(*train.Options){
		"features":   func(o *train.Options) { o.Features = 0 },
		"model type": func(o *train.Options) { o.ModelType = "glove" },
		"optimizer":  func(o *train.Options) { o.Optimizer = "adam" },
		"epochs":     func(o *train.Options) { o.Epochs = 0 },
		"corpus":     func(o *train.Options) { o.Corpus = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			opts := smallOptions(t, "a b c\n")
			mutate(&opts)
			if _, err := train.Run(context.Background(), opts, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
