// Package logging assembles structured slog loggers used across delugekit.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so engine code can tag log lines
// with the run identifier and the source file being processed. An optional log
// file receives a JSON copy of every record. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
