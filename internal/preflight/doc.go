// Package preflight provides readiness checks for the paths and services
// nolabels depends on.
//
// The CLI "nolabels status" command runs RunAll and renders the results.
// Each check returns a Result rather than an error so a single failing
// dependency does not hide the state of the others.
package preflight
