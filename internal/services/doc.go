// Package services defines shared utilities consumed by the query engine, the
// item source adapters, and the label store.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, item source kinds, and the
//     logical label store name for logging.
//   - Structured error markers plus the Wrap helper so every failure carries a
//     classification (validation, discovery, fetch, lookup) that the CLI and
//     HTTP server can map to exit messages and status codes.
//
// Use these helpers when wiring new adapters so failures stay uniform across
// the tool.
package services
