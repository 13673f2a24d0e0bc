package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/models"
)

type cursorRepository struct {
	*DB
	logger *logger.Logger
}

// NewCursorRepository returns the SQL-backed per-collection cursor store.
func NewCursorRepository(db *DB, logger *logger.Logger) CursorRepository {
	return &cursorRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *cursorRepository) Get(ctx context.Context, collection models.Collection) (models.SyncCursor, error) {
	log := logger.FromContext(ctx)

	var cursor models.SyncCursor
	row := c.DB.QueryRowContext(ctx, getSyncCursor, collection)
	err := row.Scan(&cursor.Collection, &cursor.Cursor, &cursor.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncCursor{Collection: collection}, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "cursorRepository.Get").
			Str("collection", string(collection)).
			Msg("failed to get sync cursor")
		return models.SyncCursor{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return cursor, nil
}

func (c *cursorRepository) Set(ctx context.Context, cursor models.SyncCursor) error {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, updateSyncCursor, cursor.Cursor, cursor.UpdatedAt, cursor.Collection)
	if err != nil {
		log.Err(err).
			Str("func", "cursorRepository.Set").
			Str("collection", string(cursor.Collection)).
			Msg("failed to update sync cursor")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected > 0 {
		return nil
	}

	_, err = c.DB.ExecContext(ctx, insertSyncCursor, cursor.Collection, cursor.Cursor, cursor.UpdatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "cursorRepository.Set").
			Str("collection", string(cursor.Collection)).
			Msg("failed to insert sync cursor")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
