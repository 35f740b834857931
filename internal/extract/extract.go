package extract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"subvec/internal/corpus"
	"subvec/internal/logging"
	"subvec/internal/preflight"
	"subvec/internal/subtitles"
)

// Options configures one extraction run.
type Options struct {
	Paths       []string
	Output      string
	Encoding    string
	Series      string
	Timestamps  bool
	Delimiter   rune
	DropCredits bool
}

// Result summarizes an extraction run.
type Result struct {
	Output  string
	Files   int
	Rows    int
	Dropped int
	// Episodes counts rows per episode label in first-seen order.
	Episodes []EpisodeCount
}

// EpisodeCount is the number of rows written for one episode label.
type EpisodeCount struct {
	Episode string
	Rows    int
}

// Run reads every subtitle file in opts.Paths and writes opts.Output.
// Without timestamps each file becomes one row holding all of its cleaned
// entries joined by a space; with timestamps each entry becomes its own row.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (Result, error) {
	logger = logging.NewComponentLogger(logger, "extract")
	if len(opts.Paths) == 0 {
		return Result{}, errors.New("no subtitle files given")
	}
	if strings.TrimSpace(opts.Output) == "" {
		return Result{}, errors.New("output path is required")
	}
	if err := preflight.EnsureOutputFile("extract output", opts.Output); err != nil {
		return Result{}, err
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return Result{}, fmt.Errorf("create output: %w", err)
	}
	defer file.Close()

	buffered := bufio.NewWriter(file)
	writer := corpus.NewWriter(buffered, corpus.Layout{Delimiter: opts.Delimiter, Timestamps: opts.Timestamps})
	if err := writer.WriteHeader(); err != nil {
		return Result{}, err
	}

	result := Result{Output: opts.Output}
	episodeIndex := make(map[string]int)
	countRows := func(episode string, n int) {
		idx, ok := episodeIndex[episode]
		if !ok {
			idx = len(result.Episodes)
			episodeIndex[episode] = idx
			result.Episodes = append(result.Episodes, EpisodeCount{Episode: episode})
		}
		result.Episodes[idx].Rows += n
		result.Rows += n
	}

	for _, path := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		entries, err := subtitles.Open(path, opts.Encoding)
		if err != nil {
			return result, err
		}
		episode := subtitles.EpisodeLabel(path, opts.Series)
		rows, dropped := buildRows(entries, episode, opts)
		for _, row := range rows {
			if err := writer.Write(row); err != nil {
				return result, err
			}
		}
		result.Files++
		result.Dropped += dropped
		countRows(episode, len(rows))
		logger.Debug("subtitle file extracted",
			logging.String("path", path),
			logging.String("episode", episode),
			logging.Int("entries", len(entries)),
			logging.Int("rows", len(rows)),
			logging.Int("dropped", dropped),
		)
		if episode == subtitles.NoEpisode {
			logging.WarnWithContext(logger, "no episode marker in file name", "episode_unlabeled",
				logging.String("path", path),
				logging.String(logging.FieldErrorHint, "rename the file to include <season>x<episode>, e.g. 1x02"),
				logging.String(logging.FieldImpact, "rows are labelled n/a"),
			)
		}
	}

	if err := writer.Flush(); err != nil {
		return result, err
	}
	if err := buffered.Flush(); err != nil {
		return result, fmt.Errorf("flush output: %w", err)
	}
	if err := file.Close(); err != nil {
		return result, fmt.Errorf("close output: %w", err)
	}
	logger.Info("subtitle table written",
		logging.String("output", opts.Output),
		logging.Int("files", result.Files),
		logging.Int("rows", result.Rows),
		logging.Int("dropped", result.Dropped),
	)
	return result, nil
}

func buildRows(entries []subtitles.Entry, episode string, opts Options) ([]corpus.Row, int) {
	var (
		rows    []corpus.Row
		texts   []string
		dropped int
	)
	for _, entry := range entries {
		text := entry.Text()
		if opts.DropCredits && subtitles.IsCredit(text) {
			dropped++
			continue
		}
		if opts.Timestamps {
			rows = append(rows, corpus.Row{Episode: episode, Text: text, Start: entry.Start})
			continue
		}
		if text != "" {
			texts = append(texts, text)
		}
	}
	if !opts.Timestamps {
		rows = append(rows, corpus.Row{Episode: episode, Text: strings.Join(texts, " ")})
	}
	return rows, dropped
}
