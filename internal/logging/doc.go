// Package logging constructs the application's slog loggers and provides
// typed attribute helpers used across the reconciliation pipeline.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for log aggregation. Attribute helpers (String, Int, Error,
// ...) keep call sites terse and uniform. NewNop returns a logger that
// discards everything, for use in tests.
package logging
