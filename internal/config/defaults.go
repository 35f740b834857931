package config

const (
	DelimiterComma = "comma"
	DelimiterTab   = "tab"

	FormatText = "text"
	FormatCSV  = "csv"

	MethodKMeans   = "kmeans"
	MethodSpectral = "spectral"

	AffinityRBF       = "rbf"
	AffinityNeighbors = "nearest_neighbors"
)

const (
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogOutput        = "stderr"
	defaultExtractOutput    = "subtitles.csv"
	defaultEncoding         = "ISO-8859-2"
	defaultWritePrefix      = "corpus"
	defaultColumn           = "text"
	defaultNumFeatures      = 100
	defaultMinWordCount     = 10
	defaultNumWorkers       = 4
	defaultContext          = 5
	defaultDownsample       = 1e-3
	defaultEpochs           = 5
	defaultModelType        = "cbow"
	defaultOptimizer        = "ns"
	defaultClusters         = 10
	defaultGamma            = 1.0
	defaultNeighbors        = 10
	defaultMaxIterations    = 300
	defaultTrainOutputDir   = "."
	defaultClusterAffinity  = AffinityRBF
	defaultClusterMethod    = MethodKMeans
	defaultExtractDelimiter = DelimiterComma
	defaultPreprocessFormat = FormatText
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Output: defaultLogOutput,
		},
		Extract: Extract{
			Output:    defaultExtractOutput,
			Encoding:  defaultEncoding,
			Delimiter: defaultExtractDelimiter,
		},
		Preprocess: Preprocess{
			WritePrefix: defaultWritePrefix,
			Column:      defaultColumn,
			Lowercase:   true,
			Format:      defaultPreprocessFormat,
		},
		Train: Train{
			OutputDir:    defaultTrainOutputDir,
			NumFeatures:  defaultNumFeatures,
			MinWordCount: defaultMinWordCount,
			NumWorkers:   defaultNumWorkers,
			Context:      defaultContext,
			Downsample:   defaultDownsample,
			Epochs:       defaultEpochs,
			ModelType:    defaultModelType,
			Optimizer:    defaultOptimizer,
		},
		Cluster: Cluster{
			Method:        defaultClusterMethod,
			Clusters:      defaultClusters,
			Affinity:      defaultClusterAffinity,
			Gamma:         defaultGamma,
			Neighbors:     defaultNeighbors,
			MaxIterations: defaultMaxIterations,
		},
	}
}
