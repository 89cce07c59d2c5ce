package preflight

import (
	"context"

	"nolabels/internal/config"
	"nolabels/internal/labelstore"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// StoreOpener returns the label store for a logical database name.
type StoreOpener interface {
	Open(ctx context.Context, name string) (*labelstore.SQLStore, error)
}

// RunAll executes every preflight check for cfg. stores may be nil, in which
// case the label store checks are skipped.
func RunAll(ctx context.Context, cfg *config.Config, stores StoreOpener) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	if stores != nil {
		for _, name := range cfg.DatabaseNames() {
			results = append(results, CheckLabelStore(ctx, stores, name))
		}
	}

	results = append(results, CheckDiscovery(ctx, cfg.Discovery.BaseURL, cfg.Fetch.UserAgent))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
