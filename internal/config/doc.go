// Package config loads, normalizes, and validates subvec configuration data.
//
// It supplies repository defaults for every pipeline stage, reads an optional
// TOML file, and expands user paths (including tilde shortcuts). Nothing is
// read from the environment: a file is consulted only when the caller names
// one, otherwise the built-in defaults apply.
//
// Commands turn the resulting Config into the per-stage option structs once,
// at the program boundary, so stage packages never reach for global state.
package config
