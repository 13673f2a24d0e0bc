package config

import (
	"os"
	"path/filepath"
	"time"
)

// StructuredConfig is the top-level configuration container for the zylch
// client. It is populated by merging values from environment variables,
// command-line flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Server holds the remote API endpoint settings.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds local database settings for the cache and the
	// modifier queue.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds sync engine tuning: intervals, retry policy, concurrency.
	Sync Sync `envPrefix:"SYNC_"`

	// Session holds the location of the persisted login session.
	Session Session `envPrefix:"SESSION_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c/-config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Server holds network settings for the outbound transport layer.
type Server struct {
	// URL is the zylch API server base URL.
	// Env: SERVER_URL
	URL string `env:"URL"`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// CallbackPort is the localhost port the browser login listener binds.
	// Env: SERVER_CALLBACK_PORT
	CallbackPort int `env:"CALLBACK_PORT"`

	// LoginTimeout bounds how long the client waits for the browser
	// login redirect before giving up.
	// Env: SERVER_LOGIN_TIMEOUT
	LoginTimeout time.Duration `env:"LOGIN_TIMEOUT"`
}

// DB contains local database connection settings.
type DB struct {
	// Driver selects the database driver: "sqlite3" (default) or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the SQLite path or PostgreSQL connection string.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Storage groups local storage backend settings.
type Storage struct {
	// DB holds local database settings.
	DB DB `envPrefix:"DB_"`
}

// Sync contains sync engine settings.
type Sync struct {
	// Interval defines how often the background sync job runs.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// MaxAttempts is the retry ceiling per modifier; once exceeded the
	// modifier transitions to the terminal failed state.
	// Env: SYNC_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// BackoffBase is the first retry delay of the exponential backoff.
	// Env: SYNC_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffCap bounds the exponential backoff delay.
	// Env: SYNC_BACKOFF_CAP
	BackoffCap time.Duration `env:"BACKOFF_CAP"`

	// Concurrency bounds simultaneous in-flight modifier submissions
	// across distinct targets.
	// Env: SYNC_CONCURRENCY
	Concurrency int `env:"CONCURRENCY"`

	// TombstoneGrace is how long tombstoned cache records are retained
	// before being physically purged.
	// Env: SYNC_TOMBSTONE_GRACE
	TombstoneGrace time.Duration `env:"TOMBSTONE_GRACE"`

	// FetchLimit is the per-request item limit passed to the server.
	// Env: SYNC_FETCH_LIMIT
	FetchLimit int `env:"FETCH_LIMIT"`
}

// Session holds the location of the persisted session file.
type Session struct {
	// FilePath is where the login session (token, owner, email) is kept.
	// Env: SESSION_FILE
	FilePath string `env:"FILE"`
}

// GetClientConfig loads, merges, and validates the client configuration from
// all available sources in the following priority order (earlier source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetClientConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaults returns the built-in configuration, merged in last so any
// explicitly provided value wins.
func defaults() *StructuredConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	stateDir := filepath.Join(home, ".zylch")

	return &StructuredConfig{
		Server: Server{
			URL:            "http://localhost:9000",
			RequestTimeout: 30 * time.Second,
			CallbackPort:   8765,
			LoginTimeout:   3 * time.Minute,
		},
		Storage: Storage{
			DB: DB{
				Driver: "sqlite3",
				DSN:    filepath.Join(stateDir, "local_data.db"),
			},
		},
		Sync: Sync{
			Interval:       5 * time.Minute,
			MaxAttempts:    5,
			BackoffBase:    500 * time.Millisecond,
			BackoffCap:     30 * time.Second,
			Concurrency:    4,
			TombstoneGrace: 7 * 24 * time.Hour,
			FetchLimit:     100,
		},
		Session: Session{
			FilePath: filepath.Join(stateDir, "session.json"),
		},
	}
}
