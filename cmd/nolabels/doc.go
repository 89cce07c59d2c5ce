// Package main hosts the nolabels CLI entrypoint and command graph.
//
// The Cobra command tree runs label queries against a local or remote label
// store, maintains SQLite stores (init, import, stats), serves the query API
// over HTTP, and scaffolds configuration. Configuration loading, logger
// construction, and store handles are centralized in commandContext so
// subcommands only deal with flags and output.
//
// Keep this package lean: the query workflow lives in internal/api and the
// lookup logic in internal/engine.
package main
