package labelstore

import "testing"

func TestLabelQueryPlaceholders(t *testing.T) {
	cases := []struct {
		name     string
		dialect  dialect
		withText bool
		want     string
	}{
		{
			name:    "sqlite ids",
			dialect: sqliteDialect,
			want: "SELECT term_entity_id FROM wb_terms WHERE term_type = 'label'" +
				" AND term_language = ? AND term_entity_type = 'item' AND term_entity_id IN (?, ?, ?)",
		},
		{
			name:     "postgres text",
			dialect:  postgresDialect,
			withText: true,
			want: "SELECT term_entity_id, term_text FROM wb_terms WHERE term_type = 'label'" +
				" AND term_language = $1 AND term_entity_type = 'item' AND term_entity_id IN ($2, $3, $4)",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.dialect.labelQuery(tc.withText, 3); got != tc.want {
				t.Fatalf("labelQuery:\n got %s\nwant %s", got, tc.want)
			}
		})
	}
}

func TestDialectFor(t *testing.T) {
	for driver, want := range map[string]dialect{
		"sqlite":   sqliteDialect,
		"sqlite3":  sqliteDialect,
		"":         sqliteDialect,
		"postgres": postgresDialect,
		"pgx":      postgresDialect,
	} {
		got, err := dialectFor(driver)
		if err != nil {
			t.Fatalf("dialectFor(%q): %v", driver, err)
		}
		if got != want {
			t.Fatalf("dialectFor(%q) = %+v", driver, got)
		}
	}
	if _, err := dialectFor("mysql"); err == nil {
		t.Fatal("expected error for mysql")
	}
}
