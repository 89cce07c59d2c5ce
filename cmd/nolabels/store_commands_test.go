package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreInitImportStats(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"store", "init"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("store init: %v", err)
	}
	requireContains(t, out, "Label store wikidatawiki ready")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.DataDir, "wikidatawiki.db")); err != nil {
		t.Fatalf("expected database file: %v", err)
	}

	labels := filepath.Join(env.baseDir, "labels.tsv")
	content := "# sample\nQ1\ten\tuniverse\nQ1\tfr\tunivers\nQ2\ten\tEarth\n"
	if err := os.WriteFile(labels, []byte(content), 0o644); err != nil {
		t.Fatalf("write labels: %v", err)
	}
	out, _, err = runCLI(t, []string{"store", "import", labels}, env.configPath, nil)
	if err != nil {
		t.Fatalf("store import: %v", err)
	}
	requireContains(t, out, "Imported 3 labels into wikidatawiki")

	out, _, err = runCLI(t, []string{"store", "import", "-"}, env.configPath, strings.NewReader("Q3\tde\tLeben\n"))
	if err != nil {
		t.Fatalf("store import stdin: %v", err)
	}
	requireContains(t, out, "Imported 1 labels")

	out, _, err = runCLI(t, []string{"store", "stats"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("store stats: %v", err)
	}
	requireContains(t, out, "Labels:    4")
	requireContains(t, out, "Items:     3")
	requireContains(t, out, "English")

	out, _, err = runCLI(t, []string{"store", "stats", "--json"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("store stats --json: %v", err)
	}
	var payload storeStatsJSON
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Labels != 4 || len(payload.Languages) != 3 || payload.Languages[0].Code != "en" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestStoreImportRejectsBadFile(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"store", "import", "-"}, env.configPath, strings.NewReader("Q1 en universe\n"))
	if err == nil {
		t.Fatal("expected import error")
	}
	requireContains(t, err.Error(), "line 1")
}

func TestStoreStatsRequiresStore(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"store", "stats", "--database", "enwiki"}, env.configPath, nil)
	if err == nil {
		t.Fatal("expected missing store error")
	}
	requireContains(t, err.Error(), "enwiki.db")
}
