package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeLogging()
	c.normalizeExtract()
	c.normalizePreprocess()
	if err := c.normalizeTrain(); err != nil {
		return err
	}
	c.normalizeCluster()
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Output = strings.TrimSpace(c.Logging.Output)
	if c.Logging.Output == "" {
		c.Logging.Output = defaultLogOutput
	}
}

func (c *Config) normalizeExtract() {
	c.Extract.Output = strings.TrimSpace(c.Extract.Output)
	if c.Extract.Output == "" {
		c.Extract.Output = defaultExtractOutput
	}
	c.Extract.Encoding = strings.TrimSpace(c.Extract.Encoding)
	if c.Extract.Encoding == "" {
		c.Extract.Encoding = defaultEncoding
	}
	c.Extract.Series = strings.TrimSpace(c.Extract.Series)
	c.Extract.Delimiter = strings.ToLower(strings.TrimSpace(c.Extract.Delimiter))
	switch c.Extract.Delimiter {
	case "", ",":
		c.Extract.Delimiter = DelimiterComma
	case "\t", "tsv":
		c.Extract.Delimiter = DelimiterTab
	}
}

func (c *Config) normalizePreprocess() {
	c.Preprocess.WritePrefix = strings.TrimSpace(c.Preprocess.WritePrefix)
	if c.Preprocess.WritePrefix == "" {
		c.Preprocess.WritePrefix = defaultWritePrefix
	}
	c.Preprocess.Column = strings.TrimSpace(c.Preprocess.Column)
	if c.Preprocess.Column == "" {
		c.Preprocess.Column = defaultColumn
	}
	c.Preprocess.Format = strings.ToLower(strings.TrimSpace(c.Preprocess.Format))
	if c.Preprocess.Format == "" {
		c.Preprocess.Format = defaultPreprocessFormat
	}
}

func (c *Config) normalizeTrain() error {
	c.Train.OutputDir = strings.TrimSpace(c.Train.OutputDir)
	if c.Train.OutputDir == "" {
		c.Train.OutputDir = defaultTrainOutputDir
	}
	expanded, err := expandPath(c.Train.OutputDir)
	if err != nil {
		return fmt.Errorf("train.output_dir: %w", err)
	}
	c.Train.OutputDir = expanded
	c.Train.ModelType = strings.ToLower(strings.TrimSpace(c.Train.ModelType))
	if c.Train.ModelType == "" {
		c.Train.ModelType = defaultModelType
	}
	c.Train.Optimizer = strings.ToLower(strings.TrimSpace(c.Train.Optimizer))
	if c.Train.Optimizer == "" {
		c.Train.Optimizer = defaultOptimizer
	}
	return nil
}

func (c *Config) normalizeCluster() {
	c.Cluster.Method = strings.ToLower(strings.TrimSpace(c.Cluster.Method))
	if c.Cluster.Method == "" {
		c.Cluster.Method = defaultClusterMethod
	}
	c.Cluster.Affinity = strings.ToLower(strings.TrimSpace(c.Cluster.Affinity))
	if c.Cluster.Affinity == "" {
		c.Cluster.Affinity = defaultClusterAffinity
	}
	if c.Cluster.MaxIterations <= 0 {
		c.Cluster.MaxIterations = defaultMaxIterations
	}
}
