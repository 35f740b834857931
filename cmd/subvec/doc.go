// Package main hosts the subvec CLI entrypoint and command graph.
//
// Each pipeline stage (extract, preprocess, train, cluster) is a subcommand
// that builds its stage options from the configuration file and explicitly
// set flags, then hands them to the matching internal package. Configuration
// loading, logger construction and run ids live in the command context so
// subcommands only translate flags and render results.
package main
