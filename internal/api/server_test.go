package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"nolabels/internal/services"
	"nolabels/internal/testsupport"
)

type querierStub struct {
	got  QueryRequest
	resp QueryResponse
	err  error
}

func (s *querierStub) Execute(_ context.Context, req QueryRequest) (QueryResponse, error) {
	s.got = req
	return s.resp, s.err
}

func newTestServer(t *testing.T, q Querier) *Server {
	t.Helper()
	srv, err := NewServer(testsupport.NewConfig(t), q, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func TestHandleQueryParsesParameters(t *testing.T) {
	stub := &querierStub{resp: QueryResponse{Target: "fr", Fallback: []string{"en", "de"}, Rows: []QueryRow{}, Rejected: []string{}}}
	srv := newTestServer(t, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/query?language=fr&labels=en+de&items=Q1%0AQ2%0D%0AQ3&database=testwiki", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	want := QueryRequest{
		Language: "fr",
		Labels:   []string{"en", "de"},
		Items:    []string{"Q1", "Q2", "Q3"},
		Database: "testwiki",
	}
	if !reflect.DeepEqual(stub.got, want) {
		t.Fatalf("request = %+v, want %+v", stub.got, want)
	}
	var resp QueryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Target != "fr" || len(resp.Fallback) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestHandleQueryErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{services.Wrap(services.ErrValidation, "query", "target language", "", errors.New("bad")), http.StatusBadRequest, "validation"},
		{services.Wrap(services.ErrDiscoveryQuery, "discovery", "query", "NOTOK", nil), http.StatusBadGateway, "discovery"},
		{services.Wrap(services.ErrLookup, "labelstore", "has label", "", errors.New("down")), http.StatusBadGateway, "lookup"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		srv := newTestServer(t, &querierStub{err: tc.err})
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/query?items=1", nil))
		if w.Code != tc.status {
			t.Fatalf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}
		var body ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Kind != tc.kind || body.Error != tc.err.Error() {
			t.Fatalf("body = %+v", body)
		}
	}
}

func TestHandleHealthAndMethods(t *testing.T) {
	srv := newTestServer(t, &querierStub{})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	var health HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil || health.Status != "ok" {
		t.Fatalf("health = %+v err=%v", health, err)
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/query", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE status = %d", w.Code)
	}
}

func TestServerSingleInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := NewServer(cfg, &querierStub{}, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := first.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer first.Stop()

	resp, err := http.Get("http://" + first.Addr() + "/api/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}

	second, err := NewServer(cfg, &querierStub{}, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := second.Start(ctx); err == nil {
		second.Stop()
		t.Fatal("expected second server to fail acquiring the lock")
	}
}
