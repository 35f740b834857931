package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// Extract contains defaults for the subtitle extraction stage.
type Extract struct {
	Output      string `toml:"output"`
	Encoding    string `toml:"encoding"`
	Series      string `toml:"series"`
	Timestamps  bool   `toml:"timestamps"`
	Delimiter   string `toml:"delimiter"`
	DropCredits bool   `toml:"drop_credits"`
}

// Preprocess contains defaults for the text preprocessing stage.
type Preprocess struct {
	WritePrefix      string `toml:"write_prefix"`
	Column           string `toml:"column"`
	StripPunctuation bool   `toml:"strip_punctuation"`
	RemoveStopwords  bool   `toml:"remove_stopwords"`
	Lemmatize        bool   `toml:"lemmatize"`
	Stem             bool   `toml:"stem"`
	Lowercase        bool   `toml:"lowercase"`
	Format           string `toml:"format"`
	Append           bool   `toml:"append"`
}

// Train contains the word-embedding hyperparameters.
type Train struct {
	OutputDir    string  `toml:"output_dir"`
	NumFeatures  int     `toml:"num_features"`
	MinWordCount int     `toml:"min_word_count"`
	NumWorkers   int     `toml:"num_workers"`
	Context      int     `toml:"context"`
	Downsample   float64 `toml:"downsample"`
	Epochs       int     `toml:"epochs"`
	ModelType    string  `toml:"model_type"`
	Optimizer    string  `toml:"optimizer"`
}

// Cluster contains defaults for vocabulary clustering.
type Cluster struct {
	Method        string  `toml:"method"`
	Clusters      int     `toml:"clusters"`
	Affinity      string  `toml:"affinity"`
	Gamma         float64 `toml:"gamma"`
	Neighbors     int     `toml:"neighbors"`
	MaxIterations int     `toml:"max_iterations"`
}

// Config encapsulates all configuration values for subvec.
//
// Configuration sections by stage:
//   - Logging: log format, level, and destination
//   - Extract: subtitle decoding and tabular layout
//   - Preprocess: normalization steps and output naming
//   - Train: word2vec hyperparameters and model directory
//   - Cluster: clustering method and affinity settings
type Config struct {
	Logging    Logging    `toml:"logging"`
	Extract    Extract    `toml:"extract"`
	Preprocess Preprocess `toml:"preprocess"`
	Train      Train      `toml:"train"`
	Cluster    Cluster    `toml:"cluster"`
}

// Load parses and validates a configuration file. An empty path yields the
// built-in defaults. A named file that does not exist is an error, unlike the
// missing-file fallback for the empty path.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	path = strings.TrimSpace(path)
	exists := false
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return nil, false, err
		}
		file, err := os.Open(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, false, fmt.Errorf("config file %s not found (create one with 'subvec config init')", expanded)
			}
			return nil, false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, false, fmt.Errorf("parse config: %w", err)
		}
		exists = true
	}

	if err := cfg.normalize(); err != nil {
		return nil, false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}

	return &cfg, exists, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// DelimiterRune maps the extract delimiter name to the rune written to disk.
func (e Extract) DelimiterRune() rune {
	if e.Delimiter == DelimiterTab {
		return '\t'
	}
	return ','
}
