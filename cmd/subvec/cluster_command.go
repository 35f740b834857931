package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subvec/internal/cluster"
	"subvec/internal/config"
)

func newClusterCommand(ctx *commandContext) *cobra.Command {
	var (
		useKMeans   bool
		useSpectral bool
		clusters    int
		affinity    string
		gamma       float64
		neighbors   int
		maxIter     int
		seed        int64
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "cluster <model>",
		Short: "Group the vocabulary of a trained model",
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

			section := cfg.Cluster
			flags := cmd.Flags()
			if useKMeans {
				section.Method = config.MethodKMeans
			}
			if useSpectral {
				section.Method = config.MethodSpectral
			}
			if flags.Changed("clusters") {
				section.Clusters = clusters
			}
			if flags.Changed("affinity") {
				section.Affinity = affinity
			}
			if flags.Changed("gamma") {
				section.Gamma = gamma
			}
			if flags.Changed("neighbors") {
				section.Neighbors = neighbors
			}
			if flags.Changed("max-iterations") {
				section.MaxIterations = maxIter
			}

			result, err := cluster.Run(cmd.Context(), cluster.Options{
				Model:         args[0],
				Method:        section.Method,
				Clusters:      section.Clusters,
				Affinity:      section.Affinity,
				Gamma:         section.Gamma,
				Neighbors:     section.Neighbors,
				MaxIterations: section.MaxIterations,
				Seed:          seed,
				Seeded:        flags.Changed("seed"),
			}, logger)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderClusters(result, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useKMeans, "kmeans", false, "Cluster with k-means and name clusters by representative word")
	cmd.Flags().BoolVar(&useSpectral, "spectral", false, "Cluster with spectral clustering over an affinity graph")
	cmd.Flags().IntVarP(&clusters, "clusters", "k", 0, "Number of clusters (default 10)")
	cmd.Flags().StringVar(&affinity, "affinity", "", "Spectral affinity (rbf, nearest_neighbors)")
	cmd.Flags().Float64Var(&gamma, "gamma", 0, "RBF kernel coefficient (default 1.0)")
	cmd.Flags().IntVar(&neighbors, "neighbors", 0, "Neighbours per word for the nearest_neighbors graph (default 10)")
	cmd.Flags().IntVar(&maxIter, "max-iterations", 0, "Maximum k-means iterations (default 300)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible clusters")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.MarkFlagsMutuallyExclusive("kmeans", "spectral")
	return cmd
}

func renderClusters(result cluster.Result, colorize bool) string {
	if len(result.Groups) == 0 {
		return "No clusters"
	}
	headers := []string{"Cluster", "Size", "Words"}
	aligns := []columnAlignment{alignRight, alignRight, alignLeft}
	named := result.Method == cluster.MethodKMeans
	if named {
		headers = []string{"Representative", "Size", "Words"}
		aligns = []columnAlignment{alignLeft, alignRight, alignLeft}
	}
	rows := make([][]string, 0, len(result.Groups))
	for _, group := range result.Groups {
		label := strconv.Itoa(group.ID)
		if named {
			label = group.Representative
		}
		rows = append(rows, []string{label, strconv.Itoa(len(group.Words)), strings.Join(group.Words, " ")})
	}
	return renderTable(headers, rows, aligns, colorize)
}
