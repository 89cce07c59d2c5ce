// Package engine computes which items lack a label in a target language and
// gathers their labels in fallback languages.
//
// A Query is built once per request, filled with items from one source, and
// run against a labelstore.Store. Run issues one HasLabel call for the target
// language and one FetchLabels call per fallback language, never with an
// empty identifier set, and never concurrently.
package engine
