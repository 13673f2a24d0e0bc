package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/models"
)

type modifierRepository struct {
	*DB
	logger *logger.Logger
}

// NewModifierRepository returns the SQL-backed durable modifier queue.
func NewModifierRepository(db *DB, logger *logger.Logger) ModifierRepository {
	return &modifierRepository{
		DB:     db,
		logger: logger,
	}
}

func (m *modifierRepository) Insert(ctx context.Context, modifier models.Modifier) error {
	log := logger.FromContext(ctx)

	_, err := m.DB.ExecContext(ctx, insertModifier,
		modifier.ClientID,
		modifier.Kind,
		modifier.Collection,
		nullString(modifier.TargetRemoteID),
		nullString(string(modifier.Payload)),
		modifier.EnqueuedAt,
		modifier.Attempts,
		modifier.State,
		nullString(modifier.LastError),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateModifier
		}
		log.Err(err).
			Str("func", "modifierRepository.Insert").
			Str("client_id", modifier.ClientID).
			Str("collection", string(modifier.Collection)).
			Msg("failed to insert modifier")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (m *modifierRepository) Get(ctx context.Context, clientID string) (models.Modifier, error) {
	log := logger.FromContext(ctx)

	row := m.DB.QueryRowContext(ctx, getModifier, clientID)
	modifier, err := scanModifier(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Modifier{}, ErrModifierNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "modifierRepository.Get").
			Str("client_id", clientID).
			Msg("failed to get modifier")
		return models.Modifier{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return modifier, nil
}

func (m *modifierRepository) PeekPending(ctx context.Context, collection models.Collection) ([]models.Modifier, error) {
	log := logger.FromContext(ctx)

	var (
		rows *sql.Rows
		err  error
	)
	if collection == "" {
		rows, err = m.DB.QueryContext(ctx, peekPendingModifiers)
	} else {
		rows, err = m.DB.QueryContext(ctx, peekPendingModifiersByCollection, collection)
	}
	if err != nil {
		log.Err(err).
			Str("func", "modifierRepository.PeekPending").
			Str("collection", string(collection)).
			Msg("failed to query pending modifiers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectModifiers(rows)
}

func (m *modifierRepository) MarkInFlight(ctx context.Context, clientID string) error {
	return m.transition(ctx, "modifierRepository.MarkInFlight", markModifierInFlight, clientID)
}

func (m *modifierRepository) MarkApplied(ctx context.Context, clientID string) error {
	return m.transition(ctx, "modifierRepository.MarkApplied", markModifierApplied, clientID)
}

func (m *modifierRepository) MarkFailed(ctx context.Context, clientID string, cause string, terminal bool) error {
	log := logger.FromContext(ctx)

	state := models.ModifierPending
	if terminal {
		state = models.ModifierFailed
	}

	result, err := m.DB.ExecContext(ctx, markModifierFailed, state, cause, clientID)
	if err != nil {
		log.Err(err).
			Str("func", "modifierRepository.MarkFailed").
			Str("client_id", clientID).
			Bool("terminal", terminal).
			Msg("failed to mark modifier failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrModifierNotEligible
	}

	return nil
}

func (m *modifierRepository) Release(ctx context.Context, clientID string) error {
	return m.transition(ctx, "modifierRepository.Release", releaseModifier, clientID)
}

func (m *modifierRepository) RequeueInFlight(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := m.DB.ExecContext(ctx, requeueInFlightModifiers)
	if err != nil {
		log.Err(err).
			Str("func", "modifierRepository.RequeueInFlight").
			Msg("failed to requeue in-flight modifiers")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	requeued, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requeued, nil
}

func (m *modifierRepository) RebindTarget(ctx context.Context, collection models.Collection, placeholder, remoteID string) error {
	log := logger.FromContext(ctx)

	_, err := m.DB.ExecContext(ctx, rebindModifierTarget, remoteID, collection, placeholder)
	if err != nil {
		log.Err(err).
			Str("func", "modifierRepository.RebindTarget").
			Str("collection", string(collection)).
			Str("placeholder", placeholder).
			Str("remote_id", remoteID).
			Msg("failed to rebind modifier target")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (m *modifierRepository) Delete(ctx context.Context, clientID string) error {
	log := logger.FromContext(ctx)

	result, err := m.DB.ExecContext(ctx, deleteModifier, clientID)
	if err != nil {
		log.Err(err).
			Str("func", "modifierRepository.Delete").
			Str("client_id", clientID).
			Msg("failed to delete modifier")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrModifierNotFound
	}

	return nil
}

func (m *modifierRepository) HasUnresolved(ctx context.Context, collection models.Collection, remoteID string) (bool, error) {
	log := logger.FromContext(ctx)

	var count int64
	err := m.DB.QueryRowContext(ctx, hasUnresolvedModifiers, collection, remoteID).Scan(&count)
	if err != nil {
		log.Err(err).
			Str("func", "modifierRepository.HasUnresolved").
			Str("collection", string(collection)).
			Str("remote_id", remoteID).
			Msg("failed to count unresolved modifiers")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}

func (m *modifierRepository) ListFailed(ctx context.Context) ([]models.Modifier, error) {
	log := logger.FromContext(ctx)

	rows, err := m.DB.QueryContext(ctx, listFailedModifiers)
	if err != nil {
		log.Err(err).
			Str("func", "modifierRepository.ListFailed").
			Msg("failed to query failed modifiers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectModifiers(rows)
}

func (m *modifierRepository) Retry(ctx context.Context, clientID string) error {
	return m.transition(ctx, "modifierRepository.Retry", retryFailedModifier, clientID)
}

func (m *modifierRepository) Counts(ctx context.Context) (pending int64, failed int64, err error) {
	log := logger.FromContext(ctx)

	err = m.DB.QueryRowContext(ctx, countModifiers).Scan(&pending, &failed)
	if err != nil {
		log.Err(err).
			Str("func", "modifierRepository.Counts").
			Msg("failed to count modifiers")
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return pending, failed, nil
}

// transition executes a guarded single-row state transition. Zero rows
// affected means the stored state differed from the guard.
func (m *modifierRepository) transition(ctx context.Context, funcName, query, clientID string) error {
	log := logger.FromContext(ctx)

	result, err := m.DB.ExecContext(ctx, query, clientID)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("client_id", clientID).
			Msg("failed to transition modifier state")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrModifierNotEligible
	}

	return nil
}

func scanModifier(row rowScanner) (models.Modifier, error) {
	var (
		modifier  models.Modifier
		target    sql.NullString
		payload   sql.NullString
		lastError sql.NullString
	)

	err := row.Scan(
		&modifier.ClientID,
		&modifier.Kind,
		&modifier.Collection,
		&target,
		&payload,
		&modifier.EnqueuedAt,
		&modifier.Attempts,
		&modifier.State,
		&lastError,
	)
	if err != nil {
		return models.Modifier{}, err
	}

	modifier.TargetRemoteID = target.String
	if payload.Valid {
		modifier.Payload = []byte(payload.String)
	}
	modifier.LastError = lastError.String

	return modifier, nil
}

func collectModifiers(rows *sql.Rows) ([]models.Modifier, error) {
	var modifiers []models.Modifier
	for rows.Next() {
		modifier, err := scanModifier(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		modifiers = append(modifiers, modifier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return modifiers, nil
}
