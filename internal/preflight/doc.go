// Package preflight checks input files and output directories before a
// pipeline stage starts writing, so permission problems surface before any
// work is done.
package preflight
