package config

import (
	"fmt"
	"os"
	"strings"

	"nolabels/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStore()
	c.normalizeDiscovery()
	c.normalizeFetch()
	c.normalizeQuery()
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStore() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case "", "sqlite3":
		c.Store.Driver = DriverSQLite
	case "pgx", "postgresql":
		c.Store.Driver = DriverPostgres
	}
	c.Store.Database = strings.TrimSpace(c.Store.Database)
	if c.Store.Database == "" {
		c.Store.Database = defaultDatabase
	}
	if len(c.Store.Databases) > 0 {
		trimmed := make(map[string]string, len(c.Store.Databases))
		for name, dsn := range c.Store.Databases {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			trimmed[name] = strings.TrimSpace(dsn)
		}
		c.Store.Databases = trimmed
	}
	if value, ok := os.LookupEnv("NOLABELS_STORE_DSN"); ok && strings.TrimSpace(value) != "" {
		if c.Store.Databases == nil {
			c.Store.Databases = map[string]string{}
		}
		c.Store.Databases[c.Store.Database] = strings.TrimSpace(value)
	}
}

func (c *Config) normalizeDiscovery() {
	c.Discovery.BaseURL = strings.TrimSpace(c.Discovery.BaseURL)
	if c.Discovery.BaseURL == "" {
		c.Discovery.BaseURL = defaultDiscoveryBaseURL
	}
	if c.Discovery.TimeoutSeconds == 0 {
		c.Discovery.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeFetch() {
	c.Fetch.UserAgent = strings.TrimSpace(c.Fetch.UserAgent)
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = defaultUserAgent
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Fetch.MaxBytes == 0 {
		c.Fetch.MaxBytes = defaultFetchMaxBytes
	}
}

func (c *Config) normalizeQuery() {
	c.Query.Language = language.Normalize(c.Query.Language)
	if c.Query.Language == "" {
		c.Query.Language = defaultQueryLanguage
	}
	c.Query.Labels = language.NormalizeList(c.Query.Labels)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
