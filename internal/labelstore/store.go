package labelstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"nolabels/internal/items"
	"nolabels/internal/language"
	"nolabels/internal/logging"
	"nolabels/internal/services"
)

// ErrEmptyIDs reports a lookup issued with no identifiers. Callers must guard
// against it; the store never runs an empty IN query.
var ErrEmptyIDs = errors.New("labelstore: empty identifier set")

// Label is one item label in a given language.
type Label struct {
	ID   string
	Text string
}

// Store is the label lookup contract consumed by the query engine.
type Store interface {
	// HasLabel returns the subset of ids with a label in language.
	HasLabel(ctx context.Context, language string, ids []string) ([]string, error)
	// FetchLabels returns the non-empty labels in language for ids. Ids
	// without such a label are absent from the result.
	FetchLabels(ctx context.Context, language string, ids []string) ([]Label, error)
}

// SQLStore implements Store on a database/sql handle holding a wb_terms table.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	name    string
	logger  *slog.Logger
}

var _ Store = (*SQLStore)(nil)

// Option configures a SQLStore.
type Option func(*SQLStore)

// WithLogger attaches a logger for query diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *SQLStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithName records the logical database name used in errors and logs.
func WithName(name string) Option {
	return func(s *SQLStore) {
		s.name = name
	}
}

// NewSQLStore wraps db. driver selects the placeholder dialect ("sqlite" or
// "postgres").
func NewSQLStore(db *sql.DB, driver string, opts ...Option) (*SQLStore, error) {
	if db == nil {
		return nil, errors.New("labelstore: db is required")
	}
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	store := &SQLStore{db: db, dialect: d, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(store)
	}
	store.logger = logging.NewComponentLogger(store.logger, "labelstore")
	return store, nil
}

// Name returns the logical database name, if one was set.
func (s *SQLStore) Name() string {
	return s.name
}

// DB exposes the underlying handle for maintenance commands.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Close closes the underlying database handle.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// HasLabel implements Store.
func (s *SQLStore) HasLabel(ctx context.Context, lang string, ids []string) ([]string, error) {
	batch, err := s.prepare("has label", lang, ids)
	if err != nil {
		return nil, err
	}
	if len(batch.ids) == 0 {
		return []string{}, nil
	}

	present := make(map[int64]struct{}, len(batch.numbers))
	err = s.query(ctx, "has label", s.dialect.labelQuery(false, len(batch.numbers)), batch.args, func(rows *sql.Rows) error {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		present[id] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(present))
	for i, id := range batch.ids {
		if _, ok := present[batch.numbers[i]]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// FetchLabels implements Store.
func (s *SQLStore) FetchLabels(ctx context.Context, lang string, ids []string) ([]Label, error) {
	batch, err := s.prepare("fetch labels", lang, ids)
	if err != nil {
		return nil, err
	}
	if len(batch.ids) == 0 {
		return []Label{}, nil
	}

	texts := make(map[int64]string, len(batch.numbers))
	err = s.query(ctx, "fetch labels", s.dialect.labelQuery(true, len(batch.numbers)), batch.args, func(rows *sql.Rows) error {
		var (
			id   int64
			text sql.NullString
		)
		if err := rows.Scan(&id, &text); err != nil {
			return err
		}
		if text.Valid && text.String != "" {
			if _, seen := texts[id]; !seen {
				texts[id] = text.String
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]Label, 0, len(texts))
	for i, id := range batch.ids {
		if text, ok := texts[batch.numbers[i]]; ok {
			out = append(out, Label{ID: id, Text: text})
		}
	}
	return out, nil
}

// lookupBatch holds the deduplicated ids of one call and their bound values.
type lookupBatch struct {
	ids     []string
	numbers []int64
	args    []any
}

func (s *SQLStore) prepare(operation, lang string, ids []string) (lookupBatch, error) {
	if len(ids) == 0 {
		return lookupBatch{}, ErrEmptyIDs
	}
	code, err := language.Validate(lang)
	if err != nil {
		return lookupBatch{}, services.Wrap(services.ErrValidation, "labelstore", operation, "", err)
	}
	unique := items.Unique(ids)
	batch := lookupBatch{
		ids:     make([]string, 0, len(unique)),
		numbers: make([]int64, 0, len(unique)),
		args:    make([]any, 0, len(unique)+1),
	}
	batch.args = append(batch.args, code)
	for _, id := range unique {
		if !items.Digits(id) {
			return lookupBatch{}, services.Wrap(services.ErrValidation, "labelstore", operation, fmt.Sprintf("item id %q is not numeric", id), nil)
		}
		// Ids past the entity id range never match a row.
		n, ok := items.EntityID(id)
		if !ok {
			continue
		}
		batch.ids = append(batch.ids, id)
		batch.numbers = append(batch.numbers, n)
		batch.args = append(batch.args, n)
	}
	return batch, nil
}

func (s *SQLStore) query(ctx context.Context, operation, query string, args []any, scan func(*sql.Rows) error) error {
	logger := logging.WithContext(ctx, s.logger)
	logger.Debug("label query",
		logging.String("operation", operation),
		logging.String(logging.FieldLanguage, fmt.Sprint(args[0])),
		logging.Int("ids", len(args)-1),
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return s.lookupError(operation, "query failed", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return s.lookupError(operation, "malformed row", err)
		}
	}
	if err := rows.Err(); err != nil {
		return s.lookupError(operation, "read rows", err)
	}
	return nil
}

func (s *SQLStore) lookupError(operation, message string, err error) error {
	component := "labelstore"
	if s.name != "" {
		component = "labelstore " + s.name
	}
	return services.Wrap(services.ErrLookup, component, operation, message, err)
}

// placeholders renders n comma-separated placeholders starting at position start.
func placeholders(d dialect, start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = d.placeholder(start + i)
	}
	return strings.Join(parts, ", ")
}
