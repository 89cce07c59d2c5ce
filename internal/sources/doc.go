// Package sources turns user input into raw item identifier strings.
//
// Three adapters are provided: a literal pass-through for lists typed by the
// user, a DiscoveryClient that runs a WDQ-style query against a remote
// service, and a DocumentFetcher that downloads a line-delimited (or HTML)
// document. Adapters never normalize; callers feed the raw values to
// internal/items.
package sources
