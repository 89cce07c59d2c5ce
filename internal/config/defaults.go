package config

import "time"

// Version is the nolabels release reported in the user agent and CLI.
const Version = "0.3.0"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultDataDir          = "~/.local/share/nolabels"
	defaultLogDir           = "~/.local/share/nolabels/logs"
	defaultDatabase         = "wikidatawiki"
	defaultDiscoveryBaseURL = "http://wdq.wmflabs.org/api"
	defaultTimeoutSeconds   = 30
	defaultFetchMaxBytes    = 10 * 1024 * 1024
	defaultUserAgent        = "nolabels/" + Version
	defaultQueryLanguage    = "fr"
	defaultServerBind       = "127.0.0.1:7480"
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Store: Store{
			Driver:   DriverSQLite,
			Database: defaultDatabase,
		},
		Discovery: Discovery{
			BaseURL:        defaultDiscoveryBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Fetch: Fetch{
			UserAgent:      defaultUserAgent,
			TimeoutSeconds: defaultTimeoutSeconds,
			MaxBytes:       defaultFetchMaxBytes,
		},
		Query: Query{
			Language: defaultQueryLanguage,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DiscoveryTimeout returns the discovery request timeout as a duration.
func (c *Config) DiscoveryTimeout() time.Duration {
	return time.Duration(c.Discovery.TimeoutSeconds) * time.Second
}

// FetchTimeout returns the document fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}
