package preflight

import (
	"path/filepath"

	"subvec/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks the output locations named by the configuration.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{
		CheckDirectoryAccess("Model directory", cfg.Train.OutputDir),
	}
	if out := cfg.Extract.Output; out != "" {
		dir, err := filepath.Abs(filepath.Dir(out))
		if err != nil {
			dir = filepath.Dir(out)
		}
		results = append(results, CheckDirectoryAccess("Extract output directory", dir))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
