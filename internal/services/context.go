package services

import "context"

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	sourceKey   contextKey = "source"
	databaseKey contextKey = "database"
)

// WithRunID annotates context with the query run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSource annotates context with the item source kind (literal, wdq, document).
func WithSource(ctx context.Context, source string) context.Context {
	if source == "" {
		return ctx
	}
	return context.WithValue(ctx, sourceKey, source)
}

// SourceFromContext returns the item source kind if present.
func SourceFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(sourceKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithDatabase annotates context with the logical label store name.
func WithDatabase(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, databaseKey, name)
}

// DatabaseFromContext returns the logical label store name if present.
func DatabaseFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(databaseKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
