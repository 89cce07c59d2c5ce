package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"nolabels/internal/config"
	"nolabels/internal/language"
	"nolabels/internal/logging"
	"nolabels/internal/services"
	"nolabels/internal/sources"
)

// Querier executes label queries. *QueryService satisfies it.
type Querier interface {
	Execute(ctx context.Context, req QueryRequest) (QueryResponse, error)
}

// Server serves the label query API over HTTP.
type Server struct {
	bind     string
	logger   *slog.Logger
	querier  Querier
	lockPath string
	lock     *flock.Flock

	listener net.Listener
	server   *http.Server
}

// NewServer builds a server bound to cfg.Server.Bind.
func NewServer(cfg *config.Config, querier Querier, logger *slog.Logger) (*Server, error) {
	if cfg == nil || querier == nil {
		return nil, errors.New("api server requires config and querier")
	}
	bind := strings.TrimSpace(cfg.Server.Bind)
	if bind == "" {
		return nil, services.Wrap(services.ErrConfiguration, "api", "new server", "server.bind is empty", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "nolabels-serve.lock")
	srv := &Server{
		bind:     bind,
		logger:   logging.NewComponentLogger(logger, "api-server"),
		querier:  querier,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	srv.server = &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/query", s.handleQuery)
	return mux
}

// Start acquires the instance lock and begins serving in the background. The
// server shuts down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another nolabels server is already running (lock %s)", s.lockPath)
	}

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		_ = s.lock.Unlock()
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", s.lockPath),
	)
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down and releases the instance lock.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release server lock", logging.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: config.Version})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form: "+err.Error(), "validation")
		return
	}

	req := QueryRequest{
		Language: r.Form.Get("language"),
		Labels:   language.ParseList(strings.Join(r.Form["labels"], " ")),
		Items:    sources.SplitLines(strings.TrimSpace(r.Form.Get("items"))),
		WDQ:      r.Form.Get("wdq"),
		URL:      r.Form.Get("url"),
		Database: r.Form.Get("database"),
	}

	resp, err := s.querier.Execute(r.Context(), req)
	if err != nil {
		s.writeError(w, StatusFor(err), err.Error(), services.Kind(err))
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message, kind string) {
	s.writeJSON(w, status, ErrorResponse{Error: message, Kind: kind})
}

// StatusFor maps an error to the HTTP status reported for it.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrDiscoveryQuery),
		errors.Is(err, services.ErrFetch),
		errors.Is(err, services.ErrLookup):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
