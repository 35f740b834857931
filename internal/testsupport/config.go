package testsupport

import (
	"path/filepath"
	"testing"

	"subvec/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose output locations live in a per-test
// temp directory. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Extract.Output = filepath.Join(base, "subtitles.csv")
	cfgVal.Train.OutputDir = filepath.Join(base, "models")
	cfgVal.Train.MinWordCount = 1
	cfgVal.Train.NumWorkers = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithClusters overrides the cluster count.
func WithClusters(k int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cluster.Clusters = k
	}
}

// WithTimestamps enables per-entry rows in the extract section.
func WithTimestamps() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extract.Timestamps = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Extract.Output)
}
