// Package language validates and normalizes the language codes used to select
// labels.
//
// Codes are opaque tokens owned by the knowledge base (they include
// non-standard values such as "simple" or "be-tarask"), so validation only
// enforces a safe character class before codes reach a store query.
// DisplayName offers human-readable names for table headers.
package language
