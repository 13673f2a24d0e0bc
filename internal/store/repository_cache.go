package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/models"
)

type cacheRepository struct {
	*DB
	logger *logger.Logger
}

// NewCacheRepository returns the SQL-backed durable mirror of server-owned
// collections.
func NewCacheRepository(db *DB, logger *logger.Logger) CacheRepository {
	return &cacheRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *cacheRepository) Get(ctx context.Context, collection models.Collection, remoteID string) (models.CacheRecord, error) {
	log := logger.FromContext(ctx)

	row := c.DB.QueryRowContext(ctx, getCacheRecord, collection, remoteID)
	record, err := scanCacheRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CacheRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Get").
			Str("collection", string(collection)).
			Str("remote_id", remoteID).
			Msg("failed to get cache record")
		return models.CacheRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (c *cacheRepository) GetByClientID(ctx context.Context, collection models.Collection, clientID string) (models.CacheRecord, error) {
	log := logger.FromContext(ctx)

	row := c.DB.QueryRowContext(ctx, getCacheRecordByClientID, collection, clientID)
	record, err := scanCacheRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CacheRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.GetByClientID").
			Str("collection", string(collection)).
			Str("client_id", clientID).
			Msg("failed to get cache record")
		return models.CacheRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (c *cacheRepository) Upsert(ctx context.Context, record models.CacheRecord) error {
	log := logger.FromContext(ctx)

	remoteID := nullString(record.RemoteID)
	clientID := nullString(record.ClientID)
	syncedAt := nullTime(record.LastSyncedAt)
	tombstonedAt := nullTimePtr(record.TombstonedAt)

	var (
		result sql.Result
		err    error
	)
	if record.RemoteID != "" {
		result, err = c.DB.ExecContext(ctx, updateCacheRecordByRemoteID,
			clientID, string(record.Payload), record.Version, syncedAt, record.Tombstoned, tombstonedAt,
			record.Collection, record.RemoteID,
		)
	} else {
		result, err = c.DB.ExecContext(ctx, updateCacheRecordByClientID,
			remoteID, string(record.Payload), record.Version, syncedAt, record.Tombstoned, tombstonedAt,
			record.Collection, record.ClientID,
		)
	}
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Upsert").
			Str("collection", string(record.Collection)).
			Str("remote_id", record.RemoteID).
			Str("client_id", record.ClientID).
			Msg("failed to update cache record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected > 0 {
		return nil
	}

	_, err = c.DB.ExecContext(ctx, insertCacheRecord,
		record.Collection, remoteID, clientID, string(record.Payload),
		record.Version, syncedAt, record.Tombstoned, tombstonedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Upsert").
			Str("collection", string(record.Collection)).
			Str("remote_id", record.RemoteID).
			Str("client_id", record.ClientID).
			Msg("failed to insert cache record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (c *cacheRepository) List(ctx context.Context, collection models.Collection, filter ListFilter) ([]models.CacheRecord, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select("collection", "remote_id", "client_id", "payload", "version", "last_synced_at", "tombstoned", "tombstoned_at").
		From("cache_records").
		Where(sq.Eq{"collection": collection}).
		PlaceholderFormat(sq.Dollar)

	if !filter.IncludeTombstoned {
		builder = builder.Where(sq.Eq{"tombstoned": false})
	}
	if !filter.Since.IsZero() {
		builder = builder.Where(sq.GtOrEq{"last_synced_at": filter.Since})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	builder = builder.OrderBy("remote_id", "client_id")

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.List").
			Str("collection", string(collection)).
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.List").
			Str("collection", string(collection)).
			Msg("failed to list cache records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.CacheRecord
	for rows.Next() {
		record, scanErr := scanCacheRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "cacheRepository.List").
				Str("collection", string(collection)).
				Msg("failed to scan cache record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (c *cacheRepository) Tombstone(ctx context.Context, collection models.Collection, remoteID string, at time.Time) error {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, tombstoneCacheRecord, at, collection, remoteID)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Tombstone").
			Str("collection", string(collection)).
			Str("remote_id", remoteID).
			Msg("failed to tombstone cache record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (c *cacheRepository) DeleteByClientID(ctx context.Context, collection models.Collection, clientID string) error {
	log := logger.FromContext(ctx)

	_, err := c.DB.ExecContext(ctx, deleteCacheRecordByClientID, collection, clientID)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.DeleteByClientID").
			Str("collection", string(collection)).
			Str("client_id", clientID).
			Msg("failed to delete cache record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (c *cacheRepository) BindRemoteID(ctx context.Context, collection models.Collection, clientID, remoteID string, version int64, syncedAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, bindCacheRecordRemoteID, remoteID, version, syncedAt, collection, clientID)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.BindRemoteID").
			Str("collection", string(collection)).
			Str("client_id", clientID).
			Str("remote_id", remoteID).
			Msg("failed to bind remote id")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (c *cacheRepository) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, purgeTombstonedCacheRecords, cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Purge").
			Time("cutoff", cutoff).
			Msg("failed to purge tombstoned cache records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return purged, nil
}

func (c *cacheRepository) Stats(ctx context.Context) (map[models.Collection]int64, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, countCacheRecordsByCollection)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Stats").
			Msg("failed to count cache records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	stats := make(map[models.Collection]int64)
	for rows.Next() {
		var (
			collection models.Collection
			count      int64
		)
		if scanErr := rows.Scan(&collection, &count); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		stats[collection] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return stats, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCacheRecord(row rowScanner) (models.CacheRecord, error) {
	var (
		record       models.CacheRecord
		remoteID     sql.NullString
		clientID     sql.NullString
		payload      string
		syncedAt     sql.NullTime
		tombstonedAt sql.NullTime
	)

	err := row.Scan(
		&record.Collection,
		&remoteID,
		&clientID,
		&payload,
		&record.Version,
		&syncedAt,
		&record.Tombstoned,
		&tombstonedAt,
	)
	if err != nil {
		return models.CacheRecord{}, err
	}

	record.RemoteID = remoteID.String
	record.ClientID = clientID.String
	record.Payload = []byte(payload)
	if syncedAt.Valid {
		record.LastSyncedAt = syncedAt.Time
	}
	if tombstonedAt.Valid {
		t := tombstonedAt.Time
		record.TombstonedAt = &t
	}

	return record, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
