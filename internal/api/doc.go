// Package api exposes the label query workflow to the CLI and over HTTP.
//
// # Key Types
//
// QueryService: resolves a QueryRequest into an engine run. It picks the item
// source (literal list, discovery query, or document URL), opens the label
// store through a labelstore.Provider, and tags the context with a run id.
//
// QueryResponse: transport representation of a finished run. Rows carry a
// language -> label object so JSON consumers do not depend on fallback order;
// Fallback preserves that order for rendering.
//
// Server: a small JSON HTTP server (GET /api/query, GET /api/health) guarded
// by a lock file so only one instance serves a given log directory.
//
// # Error Mapping
//
// Validation failures map to 400. Discovery, fetch, and lookup failures map
// to 502 since they originate in an upstream dependency. Anything else is a
// 500.
package api
