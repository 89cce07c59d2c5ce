// Package items validates and canonicalizes knowledge-base item identifiers.
//
// Raw identifiers arrive as either a bare digit sequence ("42") or a digit
// sequence carrying the item marker letter ("Q42"), possibly surrounded by
// whitespace. Normalization trims, validates against ^Q?[0-9]+$, and strips the
// marker so every downstream component compares identifiers in one canonical
// digit form. Invalid values are dropped rather than reported as errors;
// NormalizeReport exposes them for callers that want to surface a count.
package items
