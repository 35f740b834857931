package preprocess

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"subvec/internal/corpus"
	"subvec/internal/logging"
	"subvec/internal/preflight"
	"subvec/internal/textproc"
)

// Output formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
)

// ErrLocked reports an output file held by another append run.
var ErrLocked = errors.New("output file is locked")

// Options configures one preprocessing run.
type Options struct {
	Input     string
	Prefix    string
	Column    string
	Steps     textproc.Steps
	Format    string
	Append    bool
	Delimiter rune
	// Dir is the directory the output is written to. Empty means the
	// working directory.
	Dir string
}

// Result summarizes a preprocessing run.
type Result struct {
	Output    string
	Rows      int
	Sentences int
	Tokens    int
	Appended  bool
}

// OutputName returns the deterministic output file name for a step set:
// prefix, then -nopunc, -nostop, -lemma, -stem and -keepcase for each enabled
// step, then .txt or .csv.
func OutputName(prefix string, steps textproc.Steps, format string) string {
	name := prefix
	if steps.StripPunctuation {
		name += "-nopunc"
	}
	if steps.RemoveStopwords {
		name += "-nostop"
	}
	if steps.Lemmatize {
		name += "-lemma"
	}
	if steps.Stem {
		name += "-stem"
	}
	if !steps.Lowercase {
		name += "-keepcase"
	}
	if format == FormatCSV {
		return name + ".csv"
	}
	return name + ".txt"
}

// Run reads opts.Input, cleans opts.Column and writes the result.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (Result, error) {
	logger = logging.NewComponentLogger(logger, "preprocess")
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.Format != FormatText && opts.Format != FormatCSV {
		return Result{}, fmt.Errorf("unsupported output format %q", opts.Format)
	}
	if opts.Column == "" {
		opts.Column = corpus.ColumnText
	}
	if opts.Prefix == "" {
		opts.Prefix = "corpus"
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = corpus.DetectDelimiter(opts.Input)
	}

	if check := preflight.CheckInputFile("preprocess input", opts.Input); !check.Passed {
		return Result{}, errors.New(check.Name + ": " + check.Detail)
	}
	table, err := readTable(opts.Input, opts.Delimiter)
	if err != nil {
		return Result{}, err
	}
	texts, err := table.Column(opts.Column)
	if err != nil {
		return Result{}, err
	}

	pipeline, err := textproc.NewPipeline(opts.Steps)
	if err != nil {
		return Result{}, err
	}

	name := OutputName(opts.Prefix, opts.Steps, opts.Format)
	if opts.Format == FormatCSV && table.Delimiter == '\t' {
		// The table keeps its input delimiter.
		name = strings.TrimSuffix(name, ".csv") + ".tsv"
	}
	output := filepath.Join(opts.Dir, name)
	if err := preflight.EnsureOutputFile("preprocess output", output); err != nil {
		return Result{}, err
	}
	result := Result{Output: output, Rows: len(texts)}

	logger.Info("cleaning column",
		logging.String("input", opts.Input),
		logging.String("column", opts.Column),
		logging.Int("rows", len(texts)),
		logging.Bool("nopunc", opts.Steps.StripPunctuation),
		logging.Bool("nostop", opts.Steps.RemoveStopwords),
		logging.Bool("lemma", opts.Steps.Lemmatize),
		logging.Bool("stem", opts.Steps.Stem),
		logging.Bool("lowercase", opts.Steps.Lowercase),
	)

	cleaned := make([][][]string, len(texts))
	for i, text := range texts {
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
		}
		sentences, err := pipeline.Clean(text)
		if err != nil {
			return result, fmt.Errorf("clean row %d: %w", i+1, err)
		}
		cleaned[i] = sentences
		result.Sentences += len(sentences)
		for _, s := range sentences {
			result.Tokens += len(s)
		}
	}

	appended, err := writeOutput(output, opts, table, cleaned)
	if err != nil {
		return result, err
	}
	result.Appended = appended
	logger.Info("corpus written",
		logging.String("output", output),
		logging.Int("sentences", result.Sentences),
		logging.Int("tokens", result.Tokens),
		logging.Bool("appended", appended),
	)
	return result, nil
}

func readTable(path string, delimiter rune) (*corpus.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()
	return corpus.ReadTable(file, delimiter)
}

// writeOutput reports whether it appended to an existing non-empty file.
func writeOutput(path string, opts Options, table *corpus.Table, cleaned [][][]string) (bool, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	appending := false
	if opts.Append {
		lock := flock.New(path + ".lock")
		locked, err := lock.TryLock()
		if err != nil {
			return false, fmt.Errorf("lock output: %w", err)
		}
		if !locked {
			return false, fmt.Errorf("%w: %s", ErrLocked, path)
		}
		defer func() { _ = lock.Unlock() }()
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			appending = true
		}
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return false, fmt.Errorf("open output: %w", err)
	}
	defer file.Close()

	buffered := bufio.NewWriter(file)
	switch opts.Format {
	case FormatCSV:
		values := make([]string, len(cleaned))
		for i, sentences := range cleaned {
			lines := make([]string, len(sentences))
			for j, s := range sentences {
				lines[j] = strings.Join(s, " ")
			}
			values[i] = strings.Join(lines, "\n")
		}
		if err := table.Set(opts.Column, values); err != nil {
			return false, err
		}
		if err := table.Write(buffered, !appending); err != nil {
			return false, err
		}
	default:
		for _, sentences := range cleaned {
			if err := corpus.WriteSentences(buffered, sentences); err != nil {
				return false, err
			}
		}
	}
	if err := buffered.Flush(); err != nil {
		return false, fmt.Errorf("flush output: %w", err)
	}
	if err := file.Close(); err != nil {
		return false, fmt.Errorf("close output: %w", err)
	}
	return appending, nil
}
