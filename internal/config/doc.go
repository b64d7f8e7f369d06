// Package config loads, normalizes, and validates rollmatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates matching thresholds. The Config
// type centralizes every knob the CLI and reconciliation pipeline need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
