package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateExtract(); err != nil {
		return err
	}
	if err := c.validatePreprocess(); err != nil {
		return err
	}
	if err := c.validateTrain(); err != nil {
		return err
	}
	if err := c.validateCluster(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateExtract() error {
	switch c.Extract.Delimiter {
	case DelimiterComma, DelimiterTab:
	default:
		return fmt.Errorf("extract.delimiter: unsupported value %q (want comma or tab)", c.Extract.Delimiter)
	}
	return nil
}

func (c *Config) validatePreprocess() error {
	switch c.Preprocess.Format {
	case FormatText, FormatCSV:
	default:
		return fmt.Errorf("preprocess.format: unsupported value %q (want text or csv)", c.Preprocess.Format)
	}
	return nil
}

func (c *Config) validateTrain() error {
	if c.Train.NumFeatures <= 0 {
		return errors.New("train.num_features must be positive")
	}
	if c.Train.MinWordCount < 0 {
		return errors.New("train.min_word_count must not be negative")
	}
	if c.Train.NumWorkers <= 0 {
		return errors.New("train.num_workers must be positive")
	}
	if c.Train.Context <= 0 {
		return errors.New("train.context must be positive")
	}
	if c.Train.Downsample < 0 {
		return errors.New("train.downsample must not be negative")
	}
	if c.Train.Epochs <= 0 {
		return errors.New("train.epochs must be positive")
	}
	switch c.Train.ModelType {
	case "cbow", "skipgram":
	default:
		return fmt.Errorf("train.model_type: unsupported value %q (want cbow or skipgram)", c.Train.ModelType)
	}
	switch c.Train.Optimizer {
	case "ns", "hs":
	default:
		return fmt.Errorf("train.optimizer: unsupported value %q (want ns or hs)", c.Train.Optimizer)
	}
	return nil
}

func (c *Config) validateCluster() error {
	switch c.Cluster.Method {
	case MethodKMeans, MethodSpectral:
	default:
		return fmt.Errorf("cluster.method: unsupported value %q (want kmeans or spectral)", c.Cluster.Method)
	}
	switch c.Cluster.Affinity {
	case AffinityRBF, AffinityNeighbors:
	default:
		return fmt.Errorf("cluster.affinity: unsupported value %q (want rbf or nearest_neighbors)", c.Cluster.Affinity)
	}
	if c.Cluster.Clusters <= 0 {
		return errors.New("cluster.clusters must be positive")
	}
	if c.Cluster.Gamma <= 0 {
		return errors.New("cluster.gamma must be positive")
	}
	if c.Cluster.Neighbors <= 0 {
		return errors.New("cluster.neighbors must be positive")
	}
	return nil
}
