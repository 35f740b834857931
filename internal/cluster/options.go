package cluster

import (
	"log/slog"
	"math/rand"
	"time"

	"subvec/internal/logging"
)

// Option customizes a clustering run.
type Option func(*settings)

type settings struct {
	seed    int64
	seeded  bool
	maxIter int
	inits   int
	logger  *slog.Logger
}

// WithSeed fixes the random source so runs are reproducible.
func WithSeed(seed int64) Option {
	return func(s *settings) {
		s.seed = seed
		s.seeded = true
	}
}

// WithMaxIterations caps Lloyd iterations per k-means run.
func WithMaxIterations(n int) Option {
	return func(s *settings) {
		s.maxIter = n
	}
}

// WithInits sets how many k-means initializations are tried.
func WithInits(n int) Option {
	return func(s *settings) {
		s.inits = n
	}
}

// WithLogger attaches a logger for warnings raised while clustering.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if !s.seeded {
		s.seed = time.Now().UnixNano()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.logger = logging.NewComponentLogger(s.logger, "cluster")
	return s
}

func (s settings) rand() *rand.Rand {
	return rand.New(rand.NewSource(s.seed))
}
