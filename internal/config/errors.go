package config

import "errors"

var (
	ErrInvalidServerConfigs  = errors.New("invalid server configs: url and request timeout are required")
	ErrInvalidStorageConfigs = errors.New("invalid storage configs: dsn required, driver must be sqlite3 or pgx")
	ErrInvalidSyncConfigs    = errors.New("invalid sync configs: interval, attempts, concurrency and backoff must be positive")
)
