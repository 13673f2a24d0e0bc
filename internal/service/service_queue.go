package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/internal/store"
	"github.com/zylch/zylch-go/internal/utils"
	"github.com/zylch/zylch-go/models"
)

type queueService struct {
	storages *store.Storages
	uuids    *utils.UUIDGenerator
	clock    Clock
	logger   *logger.Logger
}

// NewQueueService wires the modifier queue over the local storages.
func NewQueueService(storages *store.Storages, clock Clock, logger *logger.Logger) QueueService {
	return &queueService{
		storages: storages,
		uuids:    utils.NewUUIDGenerator(),
		clock:    clock,
		logger:   logger,
	}
}

func (q *queueService) EnqueueCreate(ctx context.Context, collection models.Collection, payload json.RawMessage) (models.Modifier, error) {
	log := logger.FromContext(ctx)

	if !collection.Valid() {
		return models.Modifier{}, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if len(payload) == 0 {
		return models.Modifier{}, fmt.Errorf("%w: create requires a payload", ErrInvalidModifier)
	}

	m := models.Modifier{
		ClientID:   q.uuids.Generate(),
		Kind:       models.ModifierCreate,
		Collection: collection,
		Payload:    payload,
		EnqueuedAt: q.clock.Now(),
		State:      models.ModifierPending,
	}

	if err := q.storages.Modifiers.Insert(ctx, m); err != nil {
		return models.Modifier{}, fmt.Errorf("enqueue create: %w", err)
	}

	// The cache reflects the mutation immediately: the item is readable
	// before the server ever sees it, keyed by the modifier's ClientID
	// until a remote id is assigned.
	record := models.CacheRecord{
		Collection: collection,
		ClientID:   m.ClientID,
		Payload:    payload,
	}
	if err := q.storages.Cache.Upsert(ctx, record); err != nil {
		return models.Modifier{}, fmt.Errorf("materialise pending create: %w", err)
	}

	log.Debug().
		Str("func", "queueService.EnqueueCreate").
		Str("client_id", m.ClientID).
		Str("collection", string(collection)).
		Msg("create enqueued")

	return m, nil
}

func (q *queueService) EnqueueUpdate(ctx context.Context, collection models.Collection, target string, payload json.RawMessage) (models.Modifier, error) {
	log := logger.FromContext(ctx)

	if !collection.Valid() {
		return models.Modifier{}, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if target == "" {
		return models.Modifier{}, fmt.Errorf("%w: update requires a target", ErrInvalidModifier)
	}
	if len(payload) == 0 {
		return models.Modifier{}, fmt.Errorf("%w: update requires a payload", ErrInvalidModifier)
	}

	m := models.Modifier{
		ClientID:       q.uuids.Generate(),
		Kind:           models.ModifierUpdate,
		Collection:     collection,
		TargetRemoteID: target,
		Payload:        payload,
		EnqueuedAt:     q.clock.Now(),
		State:          models.ModifierPending,
	}

	if err := q.storages.Modifiers.Insert(ctx, m); err != nil {
		return models.Modifier{}, fmt.Errorf("enqueue update: %w", err)
	}

	if err := q.overlayUpdate(ctx, collection, target, payload); err != nil {
		return models.Modifier{}, err
	}

	log.Debug().
		Str("func", "queueService.EnqueueUpdate").
		Str("client_id", m.ClientID).
		Str("collection", string(collection)).
		Str("target", target).
		Msg("update enqueued")

	return m, nil
}

// overlayUpdate rewrites the cached payload so reads see the queued change.
// The target can be a remote id or a pending-create placeholder.
func (q *queueService) overlayUpdate(ctx context.Context, collection models.Collection, target string, payload json.RawMessage) error {
	record, err := q.storages.Cache.Get(ctx, collection, target)
	if errors.Is(err, store.ErrRecordNotFound) {
		record, err = q.storages.Cache.GetByClientID(ctx, collection, target)
	}
	if errors.Is(err, store.ErrRecordNotFound) {
		// Updating an item the cache has never seen: materialise it so
		// the overlay is still readable.
		record = models.CacheRecord{Collection: collection, RemoteID: target}
		err = nil
	}
	if err != nil {
		return fmt.Errorf("overlay update: %w", err)
	}

	record.Payload = payload
	if err = q.storages.Cache.Upsert(ctx, record); err != nil {
		return fmt.Errorf("overlay update: %w", err)
	}

	return nil
}

func (q *queueService) EnqueueDelete(ctx context.Context, collection models.Collection, target string) (models.Modifier, error) {
	log := logger.FromContext(ctx)

	if !collection.Valid() {
		return models.Modifier{}, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if target == "" {
		return models.Modifier{}, fmt.Errorf("%w: delete requires a target", ErrInvalidModifier)
	}

	collapsed, err := q.collapsePendingCreate(ctx, collection, target)
	if err != nil {
		return models.Modifier{}, err
	}
	if collapsed {
		log.Debug().
			Str("func", "queueService.EnqueueDelete").
			Str("collection", string(collection)).
			Str("target", target).
			Msg("delete collapsed a pending create, nothing to send")
		return models.Modifier{}, nil
	}

	m := models.Modifier{
		ClientID:       q.uuids.Generate(),
		Kind:           models.ModifierDelete,
		Collection:     collection,
		TargetRemoteID: target,
		EnqueuedAt:     q.clock.Now(),
		State:          models.ModifierPending,
	}

	if err = q.storages.Modifiers.Insert(ctx, m); err != nil {
		return models.Modifier{}, fmt.Errorf("enqueue delete: %w", err)
	}

	// Optimistic tombstone so reads stop returning the item right away.
	err = q.storages.Cache.Tombstone(ctx, collection, target, q.clock.Now())
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return models.Modifier{}, fmt.Errorf("tombstone deleted record: %w", err)
	}

	log.Debug().
		Str("func", "queueService.EnqueueDelete").
		Str("client_id", m.ClientID).
		Str("collection", string(collection)).
		Str("target", target).
		Msg("delete enqueued")

	return m, nil
}

// collapsePendingCreate handles deleting an item whose create has not been
// submitted yet: the create modifier, any queued updates chained to it, and
// the pending-create record are all dropped locally. The server never learns
// the item existed.
func (q *queueService) collapsePendingCreate(ctx context.Context, collection models.Collection, target string) (bool, error) {
	create, err := q.storages.Modifiers.Get(ctx, target)
	if errors.Is(err, store.ErrModifierNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspect delete target: %w", err)
	}
	if create.Kind != models.ModifierCreate || create.State != models.ModifierPending {
		// An in_flight create has an unknown outcome; the delete must go
		// through the queue behind it.
		return false, nil
	}

	pending, err := q.storages.Modifiers.PeekPending(ctx, collection)
	if err != nil {
		return false, fmt.Errorf("collapse pending create: %w", err)
	}
	for _, m := range pending {
		if m.TargetRemoteID != target {
			continue
		}
		if delErr := q.storages.Modifiers.Delete(ctx, m.ClientID); delErr != nil && !errors.Is(delErr, store.ErrModifierNotFound) {
			return false, fmt.Errorf("collapse chained modifier: %w", delErr)
		}
	}

	if err = q.storages.Modifiers.Delete(ctx, create.ClientID); err != nil && !errors.Is(err, store.ErrModifierNotFound) {
		return false, fmt.Errorf("collapse pending create: %w", err)
	}
	if err = q.storages.Cache.DeleteByClientID(ctx, collection, target); err != nil {
		return false, fmt.Errorf("drop pending create record: %w", err)
	}

	return true, nil
}

func (q *queueService) Get(ctx context.Context, collection models.Collection, remoteID string) (models.CacheRecord, error) {
	if !collection.Valid() {
		return models.CacheRecord{}, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	record, err := q.storages.Cache.Get(ctx, collection, remoteID)
	if errors.Is(err, store.ErrRecordNotFound) {
		// The id may be a pending-create placeholder.
		return q.storages.Cache.GetByClientID(ctx, collection, remoteID)
	}
	return record, err
}

func (q *queueService) List(ctx context.Context, collection models.Collection, filter store.ListFilter) ([]models.CacheRecord, error) {
	if !collection.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	return q.storages.Cache.List(ctx, collection, filter)
}

func (q *queueService) Pending(ctx context.Context) ([]models.Modifier, error) {
	return q.storages.Modifiers.PeekPending(ctx, "")
}

func (q *queueService) Failed(ctx context.Context) ([]models.Modifier, error) {
	return q.storages.Modifiers.ListFailed(ctx)
}

func (q *queueService) Retry(ctx context.Context, clientID string) error {
	return q.storages.Modifiers.Retry(ctx, clientID)
}

func (q *queueService) Discard(ctx context.Context, clientID string) error {
	m, err := q.storages.Modifiers.Get(ctx, clientID)
	if err != nil {
		return err
	}

	if err = q.storages.Modifiers.Delete(ctx, clientID); err != nil {
		return err
	}

	if m.Kind == models.ModifierCreate {
		if err = q.storages.Cache.DeleteByClientID(ctx, m.Collection, m.ClientID); err != nil {
			return fmt.Errorf("drop pending create record: %w", err)
		}
	}

	return nil
}

func (q *queueService) Stats(ctx context.Context) (models.CacheStats, error) {
	records, err := q.storages.Cache.Stats(ctx)
	if err != nil {
		return models.CacheStats{}, err
	}

	pending, failed, err := q.storages.Modifiers.Counts(ctx)
	if err != nil {
		return models.CacheStats{}, err
	}

	return models.CacheStats{Records: records, Pending: pending, Failed: failed}, nil
}
