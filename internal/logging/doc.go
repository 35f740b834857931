// Package logging assembles structured slog loggers and formatting helpers used
// by every subvec stage.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so stage code tags log lines with
// the same keys (component, run_id, event_type). A no-op logger is provided
// for tests and library callers that do not care about output.
package logging
