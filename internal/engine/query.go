package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"nolabels/internal/items"
	"nolabels/internal/labelstore"
	"nolabels/internal/language"
	"nolabels/internal/logging"
	"nolabels/internal/services"
)

// Discoverer resolves a discovery query into raw item values.
type Discoverer interface {
	Query(ctx context.Context, query string) ([]string, error)
}

// Fetcher retrieves a document and returns its raw lines.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]string, error)
}

// Query is a single run looking for items without a label in Target.
type Query struct {
	Target   string
	Fallback []string

	items    []string
	rejected []string
	results  *Results
	logger   *slog.Logger
}

// Option configures a Query.
type Option func(*Query)

// WithLogger attaches a logger for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Query) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// New validates the target and fallback language codes and returns an empty
// query. Fallback codes are normalized and deduplicated; an empty fallback
// list is allowed.
func New(target string, fallback []string, opts ...Option) (*Query, error) {
	code, err := language.Validate(target)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "query", "target language", "", err)
	}
	labels := language.NormalizeList(fallback)
	for _, lang := range labels {
		if !language.Valid(lang) {
			return nil, services.Wrap(services.ErrValidation, "query", "fallback language",
				fmt.Sprintf("invalid language code %q", lang), nil)
		}
	}
	q := &Query{
		Target:   code,
		Fallback: labels,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.logger = logging.NewComponentLogger(q.logger, "engine")
	return q, nil
}

// FillItems normalizes raw and replaces the item list. Invalid values are
// dropped and recorded in Rejected.
func (q *Query) FillItems(raw []string) {
	report := items.NormalizeReport(raw)
	q.items = report.IDs
	q.rejected = report.Rejected
	q.results = nil
}

// FillFromDiscovery runs query through d and normalizes the returned items.
// On error the item list is left untouched.
func (q *Query) FillFromDiscovery(ctx context.Context, d Discoverer, query string) error {
	if d == nil {
		return errors.New("engine: discovery client is required")
	}
	raw, err := d.Query(ctx, query)
	if err != nil {
		return err
	}
	q.FillItems(raw)
	return nil
}

// FillFromDocument downloads url through f and normalizes its lines. On
// error the item list is left untouched.
func (q *Query) FillFromDocument(ctx context.Context, f Fetcher, url string) error {
	if f == nil {
		return errors.New("engine: document fetcher is required")
	}
	raw, err := f.Fetch(ctx, url)
	if err != nil {
		return err
	}
	q.FillItems(raw)
	return nil
}

// Items returns the normalized item ids, duplicates included.
func (q *Query) Items() []string {
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}

// Rejected returns the non-blank raw values dropped by normalization.
func (q *Query) Rejected() []string {
	out := make([]string, len(q.rejected))
	copy(out, q.rejected)
	return out
}

// Results returns the outcome of the last successful Run, or nil.
func (q *Query) Results() *Results {
	return q.results
}

// Run looks up which items lack a Target label and fills each of them with
// the Fallback labels. The store is never called with an empty id set. Any
// store error aborts the run and leaves no results behind.
func (q *Query) Run(ctx context.Context, store labelstore.Store) (*Results, error) {
	if store == nil {
		return nil, errors.New("engine: label store is required")
	}
	q.results = nil
	logger := logging.WithContext(ctx, q.logger)

	if len(q.items) == 0 {
		logger.Debug("no items to check")
		q.results = newResults(0)
		return q.results, nil
	}

	present, err := store.HasLabel(ctx, q.Target, q.items)
	if err != nil {
		return nil, err
	}
	missing := difference(q.items, present)
	logger.Debug("target language lookup complete",
		logging.String(logging.FieldLanguage, q.Target),
		logging.Int("items", len(q.items)),
		logging.Int("labelled", len(present)),
		logging.Int("missing", len(missing)),
	)

	results := newResults(len(missing))
	if len(missing) == 0 {
		q.results = results
		return results, nil
	}
	for _, id := range missing {
		results.add(id, q.Fallback)
	}

	for _, lang := range q.Fallback {
		labels, err := store.FetchLabels(ctx, lang, missing)
		if err != nil {
			return nil, err
		}
		for _, label := range labels {
			if row, ok := results.rows[label.ID]; ok {
				row.set(lang, label.Text)
			}
		}
		logger.Debug("fallback labels fetched",
			logging.String(logging.FieldLanguage, lang),
			logging.Int("found", len(labels)),
		)
	}

	logger.Info("query complete",
		logging.String(logging.FieldLanguage, q.Target),
		logging.Int("items", len(q.items)),
		logging.Int("missing", results.Len()),
		logging.Int("rejected", len(q.rejected)),
	)
	q.results = results
	return results, nil
}

// difference returns the ids of all not in present, in first-seen order with
// duplicates collapsed.
func difference(all, present []string) []string {
	skip := make(map[string]struct{}, len(present))
	for _, id := range present {
		skip[id] = struct{}{}
	}
	out := make([]string, 0, len(all))
	for _, id := range all {
		if _, ok := skip[id]; ok {
			continue
		}
		skip[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
