// Package config loads, normalizes, and validates nolabels configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NOLABELS_STORE_DSN. The Config type centralizes the label store driver and
// logical database DSNs, the discovery endpoint, document fetch limits, and the
// default query languages so the CLI and HTTP server resolve them in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
