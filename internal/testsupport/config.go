package testsupport

import (
	"path/filepath"
	"testing"

	"nolabels/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Server.Bind = "127.0.0.1:0"
	cfgVal.Query.Labels = []string{"en"}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDiscoveryURL points discovery queries at baseURL, typically an
// httptest server.
func WithDiscoveryURL(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Discovery.BaseURL = baseURL
	}
}

// WithQueryLanguages overrides the default target and fallback languages.
func WithQueryLanguages(target string, labels ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Query.Language = target
		b.cfg.Query.Labels = labels
	}
}

// WithDatabase sets the default logical database name.
func WithDatabase(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.Database = name
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
