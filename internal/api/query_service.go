package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"nolabels/internal/config"
	"nolabels/internal/engine"
	"nolabels/internal/labelstore"
	"nolabels/internal/language"
	"nolabels/internal/logging"
	"nolabels/internal/services"
	"nolabels/internal/sources"
)

// Item source kinds reported in responses and logs.
const (
	SourceLiteral   = "literal"
	SourceDiscovery = "wdq"
	SourceDocument  = "document"
)

// StoreOpener returns the label store for a logical database name.
type StoreOpener interface {
	Open(ctx context.Context, name string) (*labelstore.SQLStore, error)
}

// QueryRequest describes one label query. Exactly one of Items, WDQ, or URL
// selects the item source.
type QueryRequest struct {
	Language string
	Labels   []string
	Items    []string
	WDQ      string
	URL      string
	Database string
}

// QueryService runs label queries on behalf of the CLI and HTTP server.
type QueryService struct {
	stores    StoreOpener
	discovery engine.Discoverer
	fetcher   engine.Fetcher
	defaults  config.Query
	logger    *slog.Logger
}

// NewQueryService wires a service from configuration. The discovery client
// and document fetcher are built from cfg.
func NewQueryService(cfg *config.Config, stores StoreOpener, logger *slog.Logger) *QueryService {
	if logger == nil {
		logger = logging.NewNop()
	}
	discovery := sources.NewDiscoveryClient(cfg.Discovery.BaseURL,
		sources.WithUserAgent(cfg.Fetch.UserAgent),
		sources.WithHTTPClient(newHTTPClient(cfg.DiscoveryTimeout())),
	)
	fetcher := sources.NewDocumentFetcher(cfg.Fetch.UserAgent,
		sources.WithMaxBytes(cfg.Fetch.MaxBytes),
		sources.WithFetchHTTPClient(newHTTPClient(cfg.FetchTimeout())),
	)
	return &QueryService{
		stores:    stores,
		discovery: discovery,
		fetcher:   fetcher,
		defaults:  cfg.Query,
		logger:    logging.NewComponentLogger(logger, "query"),
	}
}

// Execute resolves req into items, runs the engine against the selected
// store, and returns the transport form of the results.
func (s *QueryService) Execute(ctx context.Context, req QueryRequest) (QueryResponse, error) {
	target := strings.TrimSpace(req.Language)
	if target == "" {
		target = s.defaults.Language
	}
	labels := language.NormalizeList(req.Labels)
	if len(labels) == 0 {
		labels = s.defaults.Labels
	}

	q, err := engine.New(target, labels, engine.WithLogger(s.logger))
	if err != nil {
		return QueryResponse{}, err
	}

	source, err := selectSource(req)
	if err != nil {
		return QueryResponse{}, err
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithSource(ctx, source)
	ctx = services.WithDatabase(ctx, req.Database)
	logger := logging.WithContext(ctx, s.logger)

	switch source {
	case SourceDiscovery:
		err = q.FillFromDiscovery(ctx, s.discovery, strings.TrimSpace(req.WDQ))
	case SourceDocument:
		err = q.FillFromDocument(ctx, s.fetcher, documentURL(req))
	default:
		q.FillItems(sources.Literal(req.Items))
	}
	if err != nil {
		logger.Warn("item source failed", logging.Error(err))
		return QueryResponse{}, err
	}
	if rejected := q.Rejected(); len(rejected) > 0 {
		logger.Debug("invalid items dropped", logging.Int("count", len(rejected)))
	}

	store, err := s.stores.Open(ctx, req.Database)
	if err != nil {
		return QueryResponse{}, err
	}
	results, err := q.Run(ctx, store)
	if err != nil {
		logger.Warn("query failed", logging.Error(err))
		return QueryResponse{}, err
	}

	resp := FromQuery(q, results)
	resp.RunID = runID
	resp.Source = source
	return resp, nil
}

// selectSource picks the item source. A literal list consisting of a single
// URL is treated as a document to fetch.
func selectSource(req QueryRequest) (string, error) {
	wdq := strings.TrimSpace(req.WDQ)
	url := strings.TrimSpace(req.URL)
	literal := nonBlank(req.Items)

	chosen := 0
	for _, set := range []bool{wdq != "", url != "", len(literal) > 0} {
		if set {
			chosen++
		}
	}
	switch {
	case chosen > 1:
		return "", services.Wrap(services.ErrValidation, "query", "select source", "use only one of items, wdq, or url", nil)
	case wdq != "":
		return SourceDiscovery, nil
	case url != "":
		if !sources.IsValidURL(url) {
			return "", services.Wrap(services.ErrValidation, "query", "select source", fmt.Sprintf("invalid url %q", url), nil)
		}
		return SourceDocument, nil
	case len(literal) == 1 && sources.IsValidURL(literal[0]):
		return SourceDocument, nil
	default:
		return SourceLiteral, nil
	}
}

func documentURL(req QueryRequest) string {
	if url := strings.TrimSpace(req.URL); url != "" {
		return url
	}
	return strings.TrimSpace(nonBlank(req.Items)[0])
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
