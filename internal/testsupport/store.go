package testsupport

import (
	"context"
	"strings"
	"testing"

	"nolabels/internal/config"
	"nolabels/internal/labelstore"
)

// Term is one seeded label row.
type Term struct {
	ID       string
	Language string
	Text     string
}

// MustCreateStore creates the default SQLite label store for cfg, loads terms
// into it, and registers cleanup.
func MustCreateStore(t testing.TB, cfg *config.Config, terms ...Term) *labelstore.SQLStore {
	t.Helper()

	provider, err := labelstore.NewProvider(cfg, nil)
	if err != nil {
		t.Fatalf("labelstore.NewProvider: %v", err)
	}
	t.Cleanup(func() {
		_ = provider.Close()
	})

	store, err := provider.Create(context.Background(), "")
	if err != nil {
		t.Fatalf("create label store: %v", err)
	}
	if len(terms) > 0 {
		if _, err := store.ImportTerms(context.Background(), strings.NewReader(TermsTSV(terms...))); err != nil {
			t.Fatalf("seed label store: %v", err)
		}
	}
	return store
}

// TermsTSV renders terms in the import format.
func TermsTSV(terms ...Term) string {
	var b strings.Builder
	for _, term := range terms {
		b.WriteString(term.ID)
		b.WriteByte('\t')
		b.WriteString(term.Language)
		b.WriteByte('\t')
		b.WriteString(term.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// SampleTerms is the label fixture used across package tests: Q1 is labelled
// in en and fr, Q2 only in en, Q3 only in de, and Q4 has no labels.
func SampleTerms() []Term {
	return []Term{
		{ID: "Q1", Language: "en", Text: "universe"},
		{ID: "Q1", Language: "fr", Text: "univers"},
		{ID: "Q2", Language: "en", Text: "Earth"},
		{ID: "Q3", Language: "de", Text: "Leben"},
	}
}
