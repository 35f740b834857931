package train

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	wegoemb "github.com/ynqa/wego/pkg/embedding"
	"github.com/ynqa/wego/pkg/model/modelutil/vector"
	"github.com/ynqa/wego/pkg/model/word2vec"

	"subvec/internal/corpus"
	"subvec/internal/embedding"
	"subvec/internal/logging"
	"subvec/internal/preflight"
)

// Model architectures and optimizers.
const (
	ModelCBOW     = "cbow"
	ModelSkipGram = "skipgram"
	OptimizerNS   = "ns"
	OptimizerHS   = "hs"
)

// ErrEmptyVocabulary reports a corpus with no word reaching MinCount.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// Options configures one training run.
type Options struct {
	Corpus     string
	OutputDir  string
	Features   int
	MinCount   int
	Workers    int
	Window     int
	Downsample float64
	Epochs     int
	ModelType  string
	Optimizer  string
	RunID      string
}

// DefaultOptions mirrors the documented hyperparameter defaults.
func DefaultOptions() Options {
	return Options{
		OutputDir:  ".",
		Features:   100,
		MinCount:   10,
		Workers:    4,
		Window:     5,
		Downsample: 1e-3,
		Epochs:     5,
		ModelType:  ModelCBOW,
		Optimizer:  OptimizerNS,
	}
}

// Result summarizes a training run.
type Result struct {
	Output    string
	Words     int
	Sentences int
	Tokens    int
	Elapsed   time.Duration
}

func (o Options) validate() error {
	if strings.TrimSpace(o.Corpus) == "" {
		return errors.New("corpus path is required")
	}
	if o.Features <= 0 {
		return errors.New("features must be positive")
	}
	if o.MinCount < 0 {
		return errors.New("min count must not be negative")
	}
	if o.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if o.Window <= 0 {
		return errors.New("window must be positive")
	}
	if o.Epochs <= 0 {
		return errors.New("epochs must be positive")
	}
	if o.Downsample < 0 {
		return errors.New("downsample must not be negative")
	}
	return nil
}

func (o Options) wordOptions() (word2vec.Options, error) {
	var modelType word2vec.ModelType
	switch o.ModelType {
	case ModelCBOW, "":
		modelType = word2vec.Cbow
	case ModelSkipGram:
		modelType = word2vec.SkipGram
	default:
		return word2vec.Options{}, fmt.Errorf("unsupported model type %q", o.ModelType)
	}
	var optimizer word2vec.OptimizerType
	switch o.Optimizer {
	case OptimizerNS, "":
		optimizer = word2vec.NegativeSampling
	case OptimizerHS:
		optimizer = word2vec.HierarchicalSoftmax
	default:
		return word2vec.Options{}, fmt.Errorf("unsupported optimizer %q", o.Optimizer)
	}
	return word2vec.Options{
		BatchSize:          10000,
		Dim:                o.Features,
		DocInMemory:        true,
		Goroutines:         o.Workers,
		Initlr:             0.025,
		Iter:               o.Epochs,
		LogBatch:           100000,
		MaxCount:           -1,
		MaxDepth:           100,
		MinCount:           o.MinCount,
		MinLR:              0.025 * 1.0e-4,
		ModelType:          modelType,
		NegativeSampleSize: 5,
		OptimizerType:      optimizer,
		SubsampleThreshold: o.Downsample,
		ToLower:            false,
		UpdateLRBatch:      100000,
		Verbose:            false,
		Window:             o.Window,
	}, nil
}

// Run trains a model on opts.Corpus and saves it under opts.OutputDir.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (Result, error) {
	logger = logging.NewComponentLogger(logger, "train")
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	wordOpts, err := opts.wordOptions()
	if err != nil {
		return Result{}, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if err := preflight.EnsureWritableDir("model directory", opts.OutputDir); err != nil {
		return Result{}, err
	}

	sentences, err := readCorpus(opts.Corpus)
	if err != nil {
		return Result{}, err
	}
	result := Result{
		Output:    filepath.Join(opts.OutputDir, embedding.Name(opts.Features, opts.MinCount, opts.Window)),
		Sentences: len(sentences),
	}
	counts := make(map[string]int)
	for _, s := range sentences {
		result.Tokens += len(s)
		for _, tok := range s {
			counts[tok]++
		}
	}
	if vocab := vocabularySize(counts, opts.MinCount); vocab == 0 {
		return result, fmt.Errorf("%w: %d tokens, none appear %d or more times", ErrEmptyVocabulary, result.Tokens, opts.MinCount)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	logger.Info("training model",
		logging.String("corpus", opts.Corpus),
		logging.Int("sentences", result.Sentences),
		logging.Int("tokens", result.Tokens),
		logging.Int("features", opts.Features),
		logging.Int("min_count", opts.MinCount),
		logging.Int("window", opts.Window),
		logging.Int("workers", opts.Workers),
		logging.Int("epochs", opts.Epochs),
		logging.String("model_type", opts.ModelType),
		logging.String("optimizer", opts.Optimizer),
	)

	started := time.Now()
	embs, err := fit(wordOpts, sentences)
	if err != nil {
		return result, err
	}
	result.Elapsed = time.Since(started)
	if len(embs) == 0 {
		return result, fmt.Errorf("%w: trainer exported no vectors", ErrEmptyVocabulary)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	model := embedding.FromEmbeddings(embs, embedding.Meta{
		Features:   opts.Features,
		MinCount:   opts.MinCount,
		Window:     opts.Window,
		Workers:    opts.Workers,
		Epochs:     opts.Epochs,
		Downsample: opts.Downsample,
		ModelType:  string(wordOpts.ModelType),
		Optimizer:  string(wordOpts.OptimizerType),
		RunID:      opts.RunID,
		Sentences:  result.Sentences,
		TrainedAt:  time.Now().UTC(),
	})
	model.Normalize()
	if err := embedding.Save(ctx, result.Output, model); err != nil {
		return result, err
	}
	result.Words = model.Len()

	logger.Info("model saved",
		logging.String("output", result.Output),
		logging.Int("words", result.Words),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func readCorpus(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer file.Close()
	return corpus.ReadSentences(file)
}

func vocabularySize(counts map[string]int, minCount int) int {
	n := 0
	for _, c := range counts {
		if c >= minCount {
			n++
		}
	}
	return n
}

// fit trains word2vec in memory and exports the word vectors.
func fit(opts word2vec.Options, sentences [][]string) (wegoemb.Embeddings, error) {
	model, err := word2vec.NewForOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("init word2vec: %w", err)
	}

	var text bytes.Buffer
	if err := corpus.WriteSentences(&text, sentences); err != nil {
		return nil, err
	}
	if err := model.Train(bytes.NewReader(text.Bytes())); err != nil {
		return nil, fmt.Errorf("train word2vec: %w", err)
	}

	var exported bytes.Buffer
	if err := model.Save(&exported, vector.Agg); err != nil {
		return nil, fmt.Errorf("export vectors: %w", err)
	}
	embs, err := wegoemb.Load(&exported)
	if err != nil {
		return nil, fmt.Errorf("load exported vectors: %w", err)
	}
	return embs, nil
}
