package labelstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"nolabels/internal/config"
	"nolabels/internal/logging"
	"nolabels/internal/services"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Provider hands out one SQLStore per logical database name. Handles are
// opened lazily, cached for the life of the Provider, and safe for sequential
// reuse across query runs. Provider is safe for concurrent use.
type Provider struct {
	cfg    *config.Config
	logger *slog.Logger

	mu     sync.Mutex
	stores map[string]*SQLStore
}

// NewProvider builds a Provider resolving names through cfg.
func NewProvider(cfg *config.Config, logger *slog.Logger) (*Provider, error) {
	if cfg == nil {
		return nil, errors.New("labelstore: config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Provider{
		cfg:    cfg,
		logger: logger,
		stores: make(map[string]*SQLStore),
	}, nil
}

// Open returns the cached store for name, connecting on first use. An empty
// name selects the configured default database. A missing SQLite file is
// reported as a lookup error rather than silently created.
func (p *Provider) Open(ctx context.Context, name string) (*SQLStore, error) {
	return p.get(ctx, name, false)
}

// Create behaves like Open but creates the database file (SQLite) and the
// wb_terms schema when absent.
func (p *Provider) Create(ctx context.Context, name string) (*SQLStore, error) {
	store, err := p.get(ctx, name, true)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, services.Wrap(services.ErrLookup, "labelstore "+store.name, "create", "ensure schema", err)
	}
	return store, nil
}

// Names lists the logical databases with open handles.
func (p *Provider) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.stores))
	for name := range p.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Path returns the SQLite file backing name, or "" for other drivers.
func (p *Provider) Path(name string) string {
	if p.cfg.Store.Driver != config.DriverSQLite {
		return ""
	}
	return p.cfg.DSN(p.resolveName(name))
}

// Close closes every cached handle.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for name, store := range p.stores {
		if err := store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
		delete(p.stores, name)
	}
	return errors.Join(errs...)
}

func (p *Provider) resolveName(name string) string {
	if name == "" {
		return p.cfg.Store.Database
	}
	return name
}

func (p *Provider) get(ctx context.Context, name string, create bool) (*SQLStore, error) {
	name = p.resolveName(name)
	if !namePattern.MatchString(name) {
		return nil, services.Wrap(services.ErrValidation, "labelstore", "open", fmt.Sprintf("invalid database name %q", name), nil)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if store, ok := p.stores[name]; ok {
		return store, nil
	}

	store, err := p.connect(ctx, name, create)
	if err != nil {
		return nil, err
	}
	p.stores[name] = store
	return store, nil
}

func (p *Provider) connect(ctx context.Context, name string, create bool) (*SQLStore, error) {
	driver := p.cfg.Store.Driver
	d, err := dialectFor(driver)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "labelstore", "open", "", err)
	}
	dsn := p.cfg.DSN(name)
	if dsn == "" {
		return nil, services.Wrap(services.ErrConfiguration, "labelstore", "open", fmt.Sprintf("no dsn configured for database %q", name), nil)
	}

	if d == sqliteDialect {
		if err := prepareSQLiteFile(dsn, create); err != nil {
			return nil, services.Wrap(services.ErrLookup, "labelstore "+name, "open", "", err)
		}
	}

	db, err := sql.Open(d.sqlDriver, dsn)
	if err != nil {
		return nil, services.Wrap(services.ErrLookup, "labelstore "+name, "open", "", err)
	}
	if d == sqliteDialect {
		if err := applyPragmas(ctx, db); err != nil {
			_ = db.Close()
			return nil, services.Wrap(services.ErrLookup, "labelstore "+name, "open", "", err)
		}
	} else if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, services.Wrap(services.ErrLookup, "labelstore "+name, "open", "ping", err)
	}

	store, err := NewSQLStore(db, driver, WithName(name), WithLogger(p.logger))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	p.logger.Debug("label store opened",
		logging.String(logging.FieldComponent, "labelstore"),
		logging.String(logging.FieldDatabase, name),
		logging.String("driver", driver),
	)
	return store, nil
}

func prepareSQLiteFile(path string, create bool) error {
	if create {
		return os.MkdirAll(filepath.Dir(path), 0o755)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("database file %s not found (run 'nolabels store init')", path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("database path %s is a directory", path)
	}
	return nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	return nil
}
