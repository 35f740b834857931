package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subvec/internal/train"
)

func newTrainCommand(ctx *commandContext) *cobra.Command {
	var (
		features   int
		minCount   int
		workers    int
		window     int
		downsample float64
		epochs     int
		modelType  string
		optimizer  string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "train <corpus>",
		Short: "Train a word2vec model on a sentence-per-line corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			section := cfg.Train
			flags := cmd.Flags()
			if flags.Changed("num-features") {
				section.NumFeatures = features
			}
			if flags.Changed("min-word-count") {
				section.MinWordCount = minCount
			}
			if flags.Changed("num-workers") {
				section.NumWorkers = workers
			}
			if flags.Changed("context") {
				section.Context = window
			}
			if flags.Changed("downsample") {
				section.Downsample = downsample
			}
			if flags.Changed("epochs") {
				section.Epochs = epochs
			}
			if flags.Changed("model-type") {
				section.ModelType = modelType
			}
			if flags.Changed("optimizer") {
				section.Optimizer = optimizer
			}
			if flags.Changed("output-dir") {
				section.OutputDir = outputDir
			}

			out := cmd.OutOrStdout()
			progress(out, "Training model...")
			result, err := train.Run(cmd.Context(), train.Options{
				Corpus:     args[0],
				OutputDir:  section.OutputDir,
				Features:   section.NumFeatures,
				MinCount:   section.MinWordCount,
				Workers:    section.NumWorkers,
				Window:     section.Context,
				Downsample: section.Downsample,
				Epochs:     section.Epochs,
				ModelType:  section.ModelType,
				Optimizer:  section.Optimizer,
				RunID:      ctx.runID,
			}, logger)
			if err != nil {
				return err
			}
			progress(out, "done!")
			fmt.Fprintf(out, "Saved %d word vectors to %s\n", result.Words, result.Output)
			return nil
		},
	}

	cmd.Flags().IntVar(&features, "num-features", 0, "Word vector dimensionality (default 100)")
	cmd.Flags().IntVar(&minCount, "min-word-count", 0, "Ignore words rarer than this (default 10)")
	cmd.Flags().IntVar(&workers, "num-workers", 0, "Parallel training workers (default 4)")
	cmd.Flags().IntVar(&window, "context", 0, "Context window size (default 5)")
	cmd.Flags().Float64Var(&downsample, "downsample", 0, "Downsampling threshold for frequent words (default 1e-3)")
	cmd.Flags().IntVar(&epochs, "epochs", 0, "Training epochs (default 5)")
	cmd.Flags().StringVar(&modelType, "model-type", "", "Model architecture (cbow, skipgram)")
	cmd.Flags().StringVar(&optimizer, "optimizer", "", "Optimizer (ns, hs)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the model file (default .)")
	return cmd
}
