package services_test

import (
	"context"
	"testing"

	"nolabels/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithSource(ctx, "wdq")
	ctx = services.WithDatabase(ctx, "wikidatawiki")

	if rid, ok := services.RunIDFromContext(ctx); !ok || rid != "run-123" {
		t.Fatalf("unexpected run id: %v %v", rid, ok)
	}
	if src, ok := services.SourceFromContext(ctx); !ok || src != "wdq" {
		t.Fatalf("unexpected source: %v %v", src, ok)
	}
	if db, ok := services.DatabaseFromContext(ctx); !ok || db != "wikidatawiki" {
		t.Fatalf("unexpected database: %v %v", db, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSource(ctx, "")
	ctx = services.WithRunID(ctx, "")
	if _, ok := services.SourceFromContext(ctx); ok {
		t.Fatal("expected no source value")
	}
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
}
