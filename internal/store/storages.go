package store

import (
	"context"
	"fmt"

	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/migrations"
)

// Storages groups the local storage repositories into a single value that can
// be passed around the service layer.
type Storages struct {
	// Cache is the durable mirror of server-owned collections.
	Cache CacheRepository
	// Modifiers is the durable queue of unconfirmed local mutations.
	Modifiers ModifierRepository
	// Cursors holds the per-collection sync cursors.
	Cursors CursorRepository
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It opens the database connection described by
// cfg.DB (creating the SQLite file if it does not yet exist), runs pending
// schema migrations, and returns the repositories wired to it.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := migrations.Migrate(db.DB, db.Driver()); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Cache:     NewCacheRepository(db, logger),
		Modifiers: NewModifierRepository(db, logger),
		Cursors:   NewCursorRepository(db, logger),
	}, nil
}
