package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nolabels/internal/testsupport"
)

func TestStatusReportsChecks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.WithDiscoveryURL(server.URL))

	out, _, err := runCLI(t, []string{"status"}, env.configPath, nil)
	if err == nil {
		t.Fatal("expected failure before the label store exists")
	}
	requireContains(t, out, "FAIL")

	env.seed(t)
	out, _, err = runCLI(t, []string{"status"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	requireContains(t, out, "Label store wikidatawiki")
	requireContains(t, out, "4 labels, 3 items, 3 languages")
	requireContains(t, out, "reachable")
}
