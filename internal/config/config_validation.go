package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the client depends on at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.URL == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver != "sqlite3" && cfg.Storage.DB.Driver != "pgx" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.Interval <= 0 || cfg.Sync.MaxAttempts <= 0 || cfg.Sync.Concurrency <= 0 {
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.BackoffBase <= 0 || cfg.Sync.BackoffCap < cfg.Sync.BackoffBase {
		return ErrInvalidSyncConfigs
	}

	return nil
}
