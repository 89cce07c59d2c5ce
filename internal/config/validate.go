package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"nolabels/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateQuery(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.DSN(c.Store.Database)) == "" {
			return fmt.Errorf("store.databases.%s must be set when store.driver is postgres (or set NOLABELS_STORE_DSN)", c.Store.Database)
		}
	default:
		return fmt.Errorf("store.driver: unsupported value %q (use sqlite or postgres)", c.Store.Driver)
	}
	for name := range c.Store.Databases {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("store.databases: invalid database name %q", name)
		}
	}
	if strings.ContainsAny(c.Store.Database, `/\`) {
		return fmt.Errorf("store.database: invalid database name %q", c.Store.Database)
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	parsed, err := url.Parse(c.Discovery.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("discovery.base_url must be an absolute http(s) URL, got %q", c.Discovery.BaseURL)
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	if err := ensurePositiveMap(map[string]int{
		"discovery.timeout_seconds": c.Discovery.TimeoutSeconds,
		"fetch.timeout_seconds":     c.Fetch.TimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.Fetch.MaxBytes <= 0 {
		return errors.New("fetch.max_bytes must be positive")
	}
	return nil
}

func (c *Config) validateQuery() error {
	if !language.Valid(c.Query.Language) {
		return fmt.Errorf("query.language: invalid language code %q", c.Query.Language)
	}
	for _, code := range c.Query.Labels {
		if !language.Valid(code) {
			return fmt.Errorf("query.labels: invalid language code %q", code)
		}
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
