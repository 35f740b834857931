package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"subvec/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "subvec.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Train.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir models: %v", err)
	}
	out, _, err = runCLI(t, []string{"config", "validate"}, writeTestConfig(t, cfg))
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Model directory")
	requireContains(t, out, "Configuration valid")
}

func TestConfigValidateReportsMissingModelDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	out, _, err := runCLI(t, []string{"config", "validate"}, writeTestConfig(t, cfg))
	if !errors.Is(err, errPreflightFailed) {
		t.Fatalf("expected preflight failure, got %v", err)
	}
	requireContains(t, out, "[FAIL] Model directory")
}

func TestMissingConfigFileFails(t *testing.T) {
	_, _, err := runCLI(t, []string{"config", "validate"}, filepath.Join(t.TempDir(), "none.toml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
