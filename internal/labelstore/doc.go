// Package labelstore answers label presence and label text questions against
// a relational term store.
//
// The store holds one row per (entity, term type, language) in a wb_terms
// table. Every lookup is a single batched query: one SELECT per language and
// id set with an IN membership filter, never one query per identifier. All
// values are bound as parameters and language codes are validated before a
// query is built.
//
// Provider owns connection handles. It opens one handle per logical database
// name on first use and hands the same handle out for the lifetime of the
// process, replacing a global connection table with an explicit dependency
// that callers pass to the query engine.
package labelstore
