package labelstore_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"nolabels/internal/labelstore"
	"nolabels/internal/services"
	"nolabels/internal/testsupport"
)

func TestHasLabelReturnsLabelledSubset(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustCreateStore(t, cfg, testsupport.SampleTerms()...)

	got, err := store.HasLabel(context.Background(), "en", []string{"1", "2", "3", "4"})
	if err != nil {
		t.Fatalf("HasLabel: %v", err)
	}
	if want := []string{"1", "2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("HasLabel = %v, want %v", got, want)
	}

	got, err = store.HasLabel(context.Background(), "de", []string{"1", "2", "3", "4"})
	if err != nil {
		t.Fatalf("HasLabel: %v", err)
	}
	if want := []string{"3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("HasLabel(de) = %v, want %v", got, want)
	}
}

func TestHasLabelKeepsCallerSpelling(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustCreateStore(t, cfg, testsupport.SampleTerms()...)

	got, err := store.HasLabel(context.Background(), "en", []string{"002", "001", "002"})
	if err != nil {
		t.Fatalf("HasLabel: %v", err)
	}
	if want := []string{"002", "001"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("HasLabel = %v, want %v", got, want)
	}
}

func TestLookupSkipsIDsPastEntityRange(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustCreateStore(t, cfg, testsupport.SampleTerms()...)
	ctx := context.Background()

	present, err := store.HasLabel(ctx, "en", []string{"2", "99999999999999999999", "4"})
	if err != nil {
		t.Fatalf("HasLabel: %v", err)
	}
	if want := []string{"2"}; !reflect.DeepEqual(present, want) {
		t.Fatalf("HasLabel = %v, want %v", present, want)
	}

	labels, err := store.FetchLabels(ctx, "en", []string{"99999999999999999999", "1"})
	if err != nil {
		t.Fatalf("FetchLabels: %v", err)
	}
	if want := []labelstore.Label{{ID: "1", Text: "universe"}}; !reflect.DeepEqual(labels, want) {
		t.Fatalf("FetchLabels = %#v, want %#v", labels, want)
	}

	present, err = store.HasLabel(ctx, "en", []string{"99999999999999999999"})
	if err != nil {
		t.Fatalf("HasLabel(oversized only): %v", err)
	}
	if len(present) != 0 {
		t.Fatalf("HasLabel(oversized only) = %v, want empty", present)
	}
	labels, err = store.FetchLabels(ctx, "en", []string{"18446744073709551616"})
	if err != nil {
		t.Fatalf("FetchLabels(oversized only): %v", err)
	}
	if len(labels) != 0 {
		t.Fatalf("FetchLabels(oversized only) = %v, want empty", labels)
	}
}

func TestFetchLabels(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustCreateStore(t, cfg, append(testsupport.SampleTerms(),
		testsupport.Term{ID: "Q4", Language: "en", Text: ""},
	)...)

	got, err := store.FetchLabels(context.Background(), "en", []string{"4", "2", "1"})
	if err != nil {
		t.Fatalf("FetchLabels: %v", err)
	}
	want := []labelstore.Label{{ID: "2", Text: "Earth"}, {ID: "1", Text: "universe"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FetchLabels = %#v, want %#v", got, want)
	}
}

func TestEmptyIDsRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustCreateStore(t, cfg)

	if _, err := store.HasLabel(context.Background(), "en", nil); !errors.Is(err, labelstore.ErrEmptyIDs) {
		t.Fatalf("HasLabel(nil) err = %v, want ErrEmptyIDs", err)
	}
	if _, err := store.FetchLabels(context.Background(), "en", []string{}); !errors.Is(err, labelstore.ErrEmptyIDs) {
		t.Fatalf("FetchLabels(empty) err = %v, want ErrEmptyIDs", err)
	}
}

func TestLookupValidatesInput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustCreateStore(t, cfg)

	cases := []struct {
		name string
		lang string
		ids  []string
	}{
		{"injection language", "en' OR '1'='1", []string{"1"}},
		{"empty language", "", []string{"1"}},
		{"non numeric id", "en", []string{"1); DROP TABLE wb_terms; --"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.HasLabel(context.Background(), tc.lang, tc.ids)
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Labels != 0 {
		t.Fatalf("expected empty store, got %+v", stats)
	}
}

func TestLookupFailureIsLookupError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustCreateStore(t, cfg)
	if _, err := store.DB().Exec("DROP TABLE wb_terms"); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := store.HasLabel(context.Background(), "en", []string{"1"})
	if !errors.Is(err, services.ErrLookup) {
		t.Fatalf("err = %v, want lookup error", err)
	}
	if services.Kind(err) != "lookup" {
		t.Fatalf("Kind = %q", services.Kind(err))
	}
}

func TestNewSQLStoreRejectsUnknownDriver(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustCreateStore(t, cfg)
	if _, err := labelstore.NewSQLStore(store.DB(), "oracle"); err == nil {
		t.Fatal("expected unsupported driver error")
	}
	if _, err := labelstore.NewSQLStore(nil, "sqlite"); err == nil {
		t.Fatal("expected nil db error")
	}
}

func TestStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustCreateStore(t, cfg, testsupport.SampleTerms()...)

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := labelstore.Stats{Labels: 4, Items: 3, Languages: 3}
	if stats != want {
		t.Fatalf("Stats = %+v, want %+v", stats, want)
	}
}

func TestLanguageCounts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustCreateStore(t, cfg, testsupport.SampleTerms()...)

	counts, err := store.LanguageCounts(context.Background())
	if err != nil {
		t.Fatalf("LanguageCounts: %v", err)
	}
	want := []labelstore.LanguageCount{
		{Language: "en", Labels: 2},
		{Language: "de", Labels: 1},
		{Language: "fr", Labels: 1},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("LanguageCounts = %+v, want %+v", counts, want)
	}
}
