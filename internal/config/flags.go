package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-server-url API server base URL
//	-d database DSN (SQLite path or PostgreSQL connection string)
//	-driver database driver ("sqlite3" or "pgx")
//	-c/-config json file path with configs
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-sync-interval background sync period (e.g., "5m")
//	-max-attempts retry ceiling per queued modifier
//	-session-file login session file path
func ParseFlags() *StructuredConfig {
	var serverURL string
	var databaseDSN string
	var databaseDriver string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var maxAttempts int
	var sessionFile string

	flag.StringVar(&serverURL, "server-url", "", "API server base URL")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (sqlite3|pgx)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period (e.g., 5m)")
	flag.IntVar(&maxAttempts, "max-attempts", 0, "Retry ceiling per queued modifier")
	flag.StringVar(&sessionFile, "session-file", "", "Login session file path")

	flag.Parse()

	return &StructuredConfig{
		Server: Server{
			URL:            serverURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Sync: Sync{
			Interval:    syncInterval,
			MaxAttempts: maxAttempts,
		},
		Session: Session{
			FilePath: sessionFile,
		},
		JSONFilePath: jsonConfigPath,
	}
}
