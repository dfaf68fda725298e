// Package config loads, normalizes, and validates the TOML configuration
// for mixdown. A missing config file is not an error: Load falls back to
// repository defaults so the CLI works out of the box.
package config
