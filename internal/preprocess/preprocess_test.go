package preprocess_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"subvec/internal/corpus"
	"subvec/internal/preprocess"
	"subvec/internal/testsupport"
	"subvec/internal/textproc"
)

func TestOutputName(t *testing.T) {
	cases := []struct {
		steps  textproc.Steps
		format string
		want   string
	}{
		{steps: textproc.Steps{Lowercase: true}, format: "text", want: "corpus.txt"},
		{steps: textproc.Steps{StripPunctuation: true, RemoveStopwords: true, Lowercase: true}, format: "text", want: "corpus-nopunc-nostop.txt"},
		{steps: textproc.Steps{StripPunctuation: true, RemoveStopwords: true, Lemmatize: true, Stem: true, Lowercase: true}, format: "csv", want: "corpus-nopunc-nostop-lemma-stem.csv"},
		{steps: textproc.Steps{Lemmatize: true}, format: "text", want: "corpus-lemma-keepcase.txt"},
	}
	for _, tc := range cases {
		if got := preprocess.OutputName("corpus", tc.steps, tc.format); got != tc.want {
			t.Fatalf("OutputName(%+v, %s) = %q want %q", tc.steps, tc.format, got, tc.want)
		}
	}
}

const table = "episode,text\nS1E01,\"The cat sat. The dog ran!\"\nS1E02,\"And then, nothing.\"\n"

func TestRunWritesSentencesPerLine(t *testing.T) {
	dir := t.TempDir()
	input := testsupport.WriteText(t, filepath.Join(dir, "subtitles.csv"), table)
	result, err := preprocess.Run(context.Background(), preprocess.Options{
		Input:  input,
		Prefix: "corpus",
		Steps:  textproc.Steps{StripPunctuation: true, Lowercase: true, RemoveStopwords: true},
		Dir:    dir,
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if filepath.Base(result.Output) != "corpus-nopunc-nostop.txt" {
		t.Fatalf("unexpected output %q", result.Output)
	}
	want := "cat sat\ndog ran\nnothing\n"
	if got := testsupport.ReadText(t, result.Output); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if result.Rows != 2 || result.Sentences != 3 || result.Tokens != 5 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunAppendAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	input := testsupport.WriteText(t, filepath.Join(dir, "subtitles.csv"), "episode,text\nS1E01,Hello there\n")
	opts := preprocess.Options{
		Input: input,
		Steps: textproc.Steps{Lowercase: true},
		Dir:   dir,
	}
	if _, err := preprocess.Run(context.Background(), opts, nil); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	opts.Append = true
	result, err := preprocess.Run(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("append Run: %v", err)
	}
	if !result.Appended {
		t.Fatal("expected append to existing file")
	}
	if got := testsupport.ReadText(t, result.Output); got != "hello there\nhello there\n" {
		t.Fatalf("unexpected appended corpus %q", got)
	}
	opts.Append = false
	if _, err := preprocess.Run(context.Background(), opts, nil); err != nil {
		t.Fatalf("overwrite Run: %v", err)
	}
	if got := testsupport.ReadText(t, result.Output); got != "hello there\n" {
		t.Fatalf("unexpected overwritten corpus %q", got)
	}
}

func TestRunCSVFormatReplacesColumn(t *testing.T) {
	dir := t.TempDir()
	input := testsupport.WriteText(t, filepath.Join(dir, "subtitles.csv"), table)
	opts := preprocess.Options{
		Input:  input,
		Steps:  textproc.Steps{StripPunctuation: true, Lowercase: true},
		Format: preprocess.FormatCSV,
		Dir:    dir,
	}
	result, err := preprocess.Run(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "episode,text\nS1E01,\"the cat sat\nthe dog ran\"\nS1E02,and then nothing\n"
	if got := testsupport.ReadText(t, result.Output); got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	opts.Append = true
	if _, err := preprocess.Run(context.Background(), opts, nil); err != nil {
		t.Fatalf("append Run: %v", err)
	}
	got := testsupport.ReadText(t, result.Output)
	if got != want+"S1E01,\"the cat sat\nthe dog ran\"\nS1E02,and then nothing\n" {
		t.Fatalf("csv append should skip header, got %q", got)
	}
}

func TestRunUnknownColumn(t *testing.T) {
	dir := t.TempDir()
	input := testsupport.WriteText(t, filepath.Join(dir, "subtitles.csv"), table)
	_, err := preprocess.Run(context.Background(), preprocess.Options{Input: input, Column: "body", Dir: dir}, nil)
	if !errors.Is(err, corpus.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestRunTabInput(t *testing.T) {
	dir := t.TempDir()
	input := testsupport.WriteText(t, filepath.Join(dir, "subtitles.tsv"), "episode\ttext\tstart\nS1E01\tHi, you.\t1000\n")
	result, err := preprocess.Run(context.Background(), preprocess.Options{
		Input: input,
		Steps: textproc.Steps{StripPunctuation: true, Lowercase: true},
		Dir:   dir,
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := testsupport.ReadText(t, result.Output); got != "hi you\n" {
		t.Fatalf("unexpected corpus %q", got)
	}
}

func TestRunMissingInput(t *testing.T) {
	_, err := preprocess.Run(context.Background(), preprocess.Options{Input: filepath.Join(t.TempDir(), "none.csv")}, nil)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestRunTabInputNamedCSV(t *testing.T) {
	dir := t.TempDir()
	input := testsupport.WriteText(t, filepath.Join(dir, "subtitles.csv"), "episode\ttext\nS1E01\tHi, you.\n")
	result, err := preprocess.Run(context.Background(), preprocess.Options{
		Input:  input,
		Steps:  textproc.Steps{StripPunctuation: true, Lowercase: true},
		Format: preprocess.FormatCSV,
		Dir:    dir,
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if filepath.Base(result.Output) != "corpus-nopunc.tsv" {
		t.Fatalf("tab separated table should keep a .tsv name, got %q", result.Output)
	}
	if got := testsupport.ReadText(t, result.Output); got != "episode\ttext\nS1E01\thi you\n" {
		t.Fatalf("unexpected table %q", got)
	}
}

func TestRunAppendHonoursHeldLock(t *testing.T) {
	dir := t.TempDir()
	input := testsupport.WriteText(t, filepath.Join(dir, "subtitles.csv"), "episode,text\nS1E01,Hello\n")
	opts := preprocess.Options{Input: input, Steps: textproc.Steps{Lowercase: true}, Append: true, Dir: dir}
	output := filepath.Join(dir, preprocess.OutputName("corpus", opts.Steps, preprocess.FormatText))

	holder := flock.New(output + ".lock")
	locked, err := holder.TryLock()
	if err != nil || !locked {
		t.Fatalf("TryLock: locked=%v err=%v", locked, err)
	}
	if _, err := preprocess.Run(context.Background(), opts, nil); !errors.Is(err, preprocess.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if err := holder.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if _, err := preprocess.Run(context.Background(), opts, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(output + ".lock"); err != nil {
		t.Fatalf("expected lock file to remain: %v", err)
	}
}
