package logging

import (
	"context"
	"log/slog"

	"nolabels/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for query run identifiers.
	FieldRunID = "run_id"
	// FieldSource is the standardized structured logging key for the item source kind.
	FieldSource = "source"
	// FieldDatabase is the standardized structured logging key for the logical label store.
	FieldDatabase = "database"
	// FieldLanguage is the standardized structured logging key for a label language.
	FieldLanguage = "language"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if source, ok := services.SourceFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSource, source))
	}
	if db, ok := services.DatabaseFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldDatabase, db))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
