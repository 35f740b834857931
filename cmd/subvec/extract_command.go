package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subvec/internal/config"
	"subvec/internal/extract"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		output      string
		encoding    string
		series      string
		timestamps  bool
		tsv         bool
		dropCredits bool
		summary     bool
	)

	cmd := &cobra.Command{
		Use:   "extract <srt>...",
		Short: "Extract subtitle text into a CSV table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			section := cfg.Extract
			flags := cmd.Flags()
			if flags.Changed("write") {
				section.Output = output
			}
			if flags.Changed("encoding") {
				section.Encoding = encoding
			}
			if flags.Changed("series") {
				section.Series = series
			}
			if flags.Changed("timestamps") {
				section.Timestamps = timestamps
			}
			if flags.Changed("tsv") {
				section.Delimiter = config.DelimiterComma
				if tsv {
					section.Delimiter = config.DelimiterTab
				}
			}
			if section.Delimiter == config.DelimiterTab && !flags.Changed("write") {
				if ext := filepath.Ext(section.Output); strings.EqualFold(ext, ".csv") {
					section.Output = strings.TrimSuffix(section.Output, ext) + ".tsv"
				}
			}
			if flags.Changed("drop-credits") {
				section.DropCredits = dropCredits
			}

			out := cmd.OutOrStdout()
			progress(out, "Extracting data from subtitles...")
			result, err := extract.Run(cmd.Context(), extract.Options{
				Paths:       args,
				Output:      section.Output,
				Encoding:    section.Encoding,
				Series:      section.Series,
				Timestamps:  section.Timestamps,
				Delimiter:   section.DelimiterRune(),
				DropCredits: section.DropCredits,
			}, logger)
			if err != nil {
				return err
			}
			progress(out, "done!")

			if summary {
				fmt.Fprintln(out, renderExtractSummary(result, shouldColorize(out)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "write", "w", "", "Output table path (default subtitles.csv, or subtitles.tsv with --tsv)")
	cmd.Flags().StringVar(&encoding, "encoding", "", "Subtitle file encoding (default ISO-8859-2)")
	cmd.Flags().StringVar(&series, "series", "", "Series tag prefixed to episode labels")
	cmd.Flags().BoolVar(&timestamps, "timestamps", false, "Write one row per subtitle with its start time")
	cmd.Flags().BoolVar(&tsv, "tsv", false, "Write tab separated output")
	cmd.Flags().BoolVar(&dropCredits, "drop-credits", false, "Drop subtitles that look like translation credits")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print rows per episode after extraction")
	return cmd
}

func renderExtractSummary(result extract.Result, colorize bool) string {
	rows := make([][]string, 0, len(result.Episodes)+1)
	for _, ep := range result.Episodes {
		rows = append(rows, []string{ep.Episode, strconv.Itoa(ep.Rows)})
	}
	rows = append(rows, []string{"total", strconv.Itoa(result.Rows)})
	table := renderTable([]string{"Episode", "Rows"}, rows, []columnAlignment{alignLeft, alignRight}, colorize)
	footer := fmt.Sprintf("%d files, %d credit lines dropped, written to %s", result.Files, result.Dropped, result.Output)
	return table + "\n" + footer
}
