// Package logging assembles structured slog loggers used across nolabels.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so query runs automatically tag
// log lines with their run identifier, item source, and label store name. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
