package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"subvec/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestEnsureWritableDirCreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models", "nested")
	if err := EnsureWritableDir("models", dir); err != nil {
		t.Fatalf("EnsureWritableDir: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist: %v", err)
	}
}

func TestEnsureOutputFileRejectsFileParent(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(parent, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureOutputFile("out", filepath.Join(parent, "out.csv")); err == nil {
		t.Fatal("expected error when parent is a file")
	}
}

func TestCheckInputFile(t *testing.T) {
	dir := t.TempDir()
	if CheckInputFile("in", dir).Passed {
		t.Fatal("directory should not pass as input file")
	}
	if CheckInputFile("in", filepath.Join(dir, "missing")).Passed {
		t.Fatal("missing file should not pass")
	}
	f := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(f, []byte("episode,text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckInputFile("in", f); !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
}

func TestRunAllReportsMissingModelDir(t *testing.T) {
	cfg := config.Default()
	cfg.Train.OutputDir = filepath.Join(t.TempDir(), "missing")
	cfg.Extract.Output = filepath.Join(t.TempDir(), "subtitles.csv")
	results := RunAll(&cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Model directory" {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	if RunAll(nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
