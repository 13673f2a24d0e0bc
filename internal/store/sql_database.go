package store

import (
	"context"
	"database/sql"

	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
)

// DB wraps the database/sql connection shared by every repository.
type DB struct {
	*sql.DB
	driver string
	logger *logger.Logger
}

// Driver returns the database/sql driver name the connection was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// NewConnect opens the local database described by cfg. The driver name
// selects the backend: "sqlite3" for the default on-disk cache, "pgx" for a
// PostgreSQL-backed cache.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case "pgx":
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}
