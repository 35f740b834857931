package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subvec/internal/preprocess"
	"subvec/internal/textproc"
)

func newPreprocessCommand(ctx *commandContext) *cobra.Command {
	var (
		prefix   string
		column   string
		nopunc   bool
		nostop   bool
		lemma    bool
		stem     bool
		keepCase bool
		format   string
		appendTo bool
	)

	cmd := &cobra.Command{
		Use:   "preprocess <table>",
		Short: "Clean a text column into a training corpus",
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

			section := cfg.Preprocess
			flags := cmd.Flags()
			if flags.Changed("write-prefix") {
				section.WritePrefix = prefix
			}
			if flags.Changed("column") {
				section.Column = column
			}
			if flags.Changed("nopunc") {
				section.StripPunctuation = nopunc
			}
			if flags.Changed("nostop") {
				section.RemoveStopwords = nostop
			}
			if flags.Changed("lemma") {
				section.Lemmatize = lemma
			}
			if flags.Changed("stem") {
				section.Stem = stem
			}
			if flags.Changed("keep-case") {
				section.Lowercase = !keepCase
			}
			if flags.Changed("format") {
				section.Format = format
			}
			if flags.Changed("append") {
				section.Append = appendTo
			}

			out := cmd.OutOrStdout()
			progress(out, "Preprocessing text...")
			result, err := preprocess.Run(cmd.Context(), preprocess.Options{
				Input:  args[0],
				Prefix: section.WritePrefix,
				Column: section.Column,
				Steps: textproc.Steps{
					StripPunctuation: section.StripPunctuation,
					Lowercase:        section.Lowercase,
					RemoveStopwords:  section.RemoveStopwords,
					Lemmatize:        section.Lemmatize,
					Stem:             section.Stem,
				},
				Format: section.Format,
				Append: section.Append,
			}, logger)
			if err != nil {
				return err
			}
			progress(out, "done!")
			fmt.Fprintf(out, "Wrote %d sentences (%d tokens) to %s\n", result.Sentences, result.Tokens, result.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "write-prefix", "", "Output file prefix (default corpus)")
	cmd.Flags().StringVar(&column, "column", "", "Column holding the text (default text)")
	cmd.Flags().BoolVar(&nopunc, "nopunc", false, "Strip punctuation and digits")
	cmd.Flags().BoolVar(&nostop, "nostop", false, "Remove English stopwords")
	cmd.Flags().BoolVar(&lemma, "lemma", false, "Lemmatize tokens")
	cmd.Flags().BoolVar(&stem, "stem", false, "Stem tokens")
	cmd.Flags().BoolVar(&keepCase, "keep-case", false, "Keep the original letter case")
	cmd.Flags().StringVar(&format, "format", "", "Output format (text, csv)")
	cmd.Flags().BoolVar(&appendTo, "append", false, "Append to an existing output file")
	return cmd
}
