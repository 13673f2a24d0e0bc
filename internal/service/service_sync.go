package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/zylch/zylch-go/internal/adapter"
	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/internal/store"
	"github.com/zylch/zylch-go/models"
)

type syncService struct {
	storages *store.Storages
	gateway  adapter.RemoteGateway
	cfg      config.Sync
	clock    Clock
	logger   *logger.Logger

	// pullLocks serialises pulls per collection; a tick that fires while
	// the previous pull of the same collection still runs is skipped.
	pullLocks map[models.Collection]*sync.Mutex
}

// NewSyncService wires the sync engine over the local storages and the remote
// gateway.
func NewSyncService(storages *store.Storages, gateway adapter.RemoteGateway, cfg config.Sync, clock Clock, logger *logger.Logger) SyncService {
	locks := make(map[models.Collection]*sync.Mutex, len(models.Collections))
	for _, collection := range models.Collections {
		locks[collection] = &sync.Mutex{}
	}

	return &syncService{
		storages:  storages,
		gateway:   gateway,
		cfg:       cfg,
		clock:     clock,
		logger:    logger,
		pullLocks: locks,
	}
}

func (s *syncService) Sync(ctx context.Context) error {
	log := logger.FromContext(ctx)

	status, err := s.gateway.Health(ctx)
	if err != nil || !status.Healthy() {
		// Unreachable or unhealthy server is the normal offline case,
		// not a failure. Everything stays queued for the next round.
		log.Info().
			Str("func", "syncService.Sync").
			AnErr("cause", err).
			Msg("server unreachable, staying offline")
		return nil
	}

	if err = s.Drain(ctx); err != nil {
		return err
	}

	var errs []error
	for _, collection := range models.Collections {
		if pullErr := s.Pull(ctx, collection); pullErr != nil {
			errs = append(errs, fmt.Errorf("pull %s: %w", collection, pullErr))
		}
	}

	if _, err = s.Purge(ctx); err != nil {
		errs = append(errs, fmt.Errorf("purge tombstones: %w", err))
	}

	return errors.Join(errs...)
}

// ── drain ───────────────────────────────────────────────────────────────────

// dispatchGroup is the unit of ordering: all queued modifiers that share a
// dispatch target, in enqueue order.
type dispatchGroup struct {
	key       string
	modifiers []models.Modifier
}

func (s *syncService) Drain(ctx context.Context) error {
	log := logger.FromContext(ctx)

	pending, err := s.storages.Modifiers.PeekPending(ctx, "")
	if err != nil {
		return fmt.Errorf("peek pending modifiers: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	groups := groupByTarget(pending)

	concurrency := s.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	drainCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	semaphore := make(chan struct{}, concurrency)

	for _, group := range groups {
		select {
		case semaphore <- struct{}{}:
		case <-drainCtx.Done():
			wg.Wait()
			mu.Lock()
			defer mu.Unlock()
			return errors.Join(errs...)
		}

		wg.Add(1)
		go func(group dispatchGroup) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := s.drainGroup(drainCtx, group); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				if errors.Is(err, ErrAuthRequired) {
					// The whole session lapsed; stop every group.
					cancel()
				}
			}
		}(group)
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	log.Debug().
		Str("func", "syncService.Drain").
		Int("modifiers", len(pending)).
		Int("groups", len(groups)).
		Msg("drain round complete")
	return nil
}

// groupByTarget partitions modifiers by (collection, dispatch target),
// preserving enqueue order both across and inside groups.
func groupByTarget(pending []models.Modifier) []dispatchGroup {
	index := make(map[string]int, len(pending))
	var groups []dispatchGroup

	for _, m := range pending {
		key := string(m.Collection) + "/" + m.DispatchTarget()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, dispatchGroup{key: key})
		}
		groups[i].modifiers = append(groups[i].modifiers, m)
	}

	return groups
}

// drainGroup submits the group's modifiers strictly in order. Any modifier
// that does not reach the applied state stops the group: a later mutation
// must never overtake an earlier one on the same target.
func (s *syncService) drainGroup(ctx context.Context, group dispatchGroup) error {
	for _, m := range group.modifiers {
		applied, err := s.dispatch(ctx, m)
		if err != nil {
			return err
		}
		if !applied {
			return nil
		}
	}
	return nil
}

// dispatch drives one modifier through pending → in_flight → outcome,
// retrying transient failures with exponential backoff until the attempts
// ceiling. Returns whether the modifier ended applied.
func (s *syncService) dispatch(ctx context.Context, m models.Modifier) (bool, error) {
	log := logger.FromContext(ctx)

	maxAttempts := s.cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	backoff := retry.WithCappedDuration(s.backoffCap(), retry.NewExponential(s.backoffBase()))
	attempts := m.Attempts

	for {
		if err := s.storages.Modifiers.MarkInFlight(ctx, m.ClientID); err != nil {
			if errors.Is(err, store.ErrModifierNotEligible) {
				// Claimed by a concurrent drain or no longer pending.
				return false, nil
			}
			return false, fmt.Errorf("claim modifier %s: %w", m.ClientID, err)
		}

		result, applyErr := s.gateway.ApplyModifier(ctx, models.ApplyRequest{
			ClientID:       m.ClientID,
			Kind:           m.Kind,
			Collection:     m.Collection,
			TargetRemoteID: m.TargetRemoteID,
			Payload:        m.Payload,
		})

		if applyErr == nil && result.Success {
			if err := s.confirmApplied(ctx, m, result); err != nil {
				return false, err
			}
			return true, nil
		}
		if applyErr == nil {
			// Application-level rejection with a 2xx envelope: the
			// server understood the modifier and refused it.
			rejection := fmt.Errorf("%w: %s", ErrValidationRejected, result.Error)
			if markErr := s.storages.Modifiers.MarkFailed(ctx, m.ClientID, result.Error, true); markErr != nil {
				return false, fmt.Errorf("mark modifier failed: %w", markErr)
			}
			if resetErr := s.resetCursor(ctx, m.Collection); resetErr != nil {
				return false, resetErr
			}
			log.Warn().
				Str("func", "syncService.dispatch").
				Str("client_id", m.ClientID).
				Err(rejection).
				Msg("modifier rejected by server")
			return false, nil
		}

		switch classifyGatewayError(applyErr) {
		case outcomeAuth:
			if relErr := s.storages.Modifiers.Release(ctx, m.ClientID); relErr != nil {
				return false, fmt.Errorf("release modifier on auth failure: %w", relErr)
			}
			return false, fmt.Errorf("%w: %w", ErrAuthRequired, applyErr)

		case outcomeValidation:
			if markErr := s.storages.Modifiers.MarkFailed(ctx, m.ClientID, applyErr.Error(), true); markErr != nil {
				return false, fmt.Errorf("mark modifier failed: %w", markErr)
			}
			if resetErr := s.resetCursor(ctx, m.Collection); resetErr != nil {
				return false, resetErr
			}
			log.Warn().
				Str("func", "syncService.dispatch").
				Str("client_id", m.ClientID).
				Err(applyErr).
				Msg("modifier terminally failed validation")
			return false, nil

		case outcomeConflict:
			if markErr := s.storages.Modifiers.MarkFailed(ctx, m.ClientID, applyErr.Error(), true); markErr != nil {
				return false, fmt.Errorf("mark modifier failed: %w", markErr)
			}
			if resetErr := s.resetCursor(ctx, m.Collection); resetErr != nil {
				return false, resetErr
			}
			log.Warn().
				Str("func", "syncService.dispatch").
				Str("client_id", m.ClientID).
				Err(applyErr).
				Msg("modifier target conflicts with remote state")
			return false, nil

		default: // transient
			attempts++
			terminal := attempts >= maxAttempts
			if markErr := s.storages.Modifiers.MarkFailed(ctx, m.ClientID, applyErr.Error(), terminal); markErr != nil {
				return false, fmt.Errorf("mark modifier failed: %w", markErr)
			}
			if terminal {
				if resetErr := s.resetCursor(ctx, m.Collection); resetErr != nil {
					return false, resetErr
				}
				log.Warn().
					Str("func", "syncService.dispatch").
					Str("client_id", m.ClientID).
					Int("attempts", attempts).
					Err(applyErr).
					Msg("modifier exhausted retry attempts")
				return false, nil
			}

			delay, _ := backoff.Next()
			if sleepErr := s.clock.Sleep(ctx, delay); sleepErr != nil {
				return false, sleepErr
			}
		}
	}
}

// resetCursor clears the collection's cursor after a modifier ends terminally
// failed. While the modifier was unresolved, pulls skipped any item it
// targeted yet still advanced past them, and the server never re-sends items
// older than the cursor; starting the next pull from scratch re-delivers the
// authoritative state the overlay was hiding.
func (s *syncService) resetCursor(ctx context.Context, collection models.Collection) error {
	cursor := models.SyncCursor{Collection: collection, UpdatedAt: s.clock.Now()}
	if err := s.storages.Cursors.Set(ctx, cursor); err != nil {
		return fmt.Errorf("reset cursor after terminal failure: %w", err)
	}
	return nil
}

// confirmApplied reconciles the cache with the server's authoritative result
// and removes the modifier from the queue.
func (s *syncService) confirmApplied(ctx context.Context, m models.Modifier, result models.ApplyResult) error {
	now := s.clock.Now()

	switch m.Kind {
	case models.ModifierCreate:
		err := s.storages.Cache.BindRemoteID(ctx, m.Collection, m.ClientID, result.RemoteID, result.Version, now)
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("bind remote id: %w", err)
		}
		// Later modifiers may still point at the placeholder id.
		if err = s.storages.Modifiers.RebindTarget(ctx, m.Collection, m.ClientID, result.RemoteID); err != nil {
			return fmt.Errorf("rebind queued targets: %w", err)
		}
		if len(result.Payload) > 0 {
			record := models.CacheRecord{
				Collection:   m.Collection,
				RemoteID:     result.RemoteID,
				Payload:      result.Payload,
				Version:      result.Version,
				LastSyncedAt: now,
			}
			if err = s.storages.Cache.Upsert(ctx, record); err != nil {
				return fmt.Errorf("reconcile created record: %w", err)
			}
		}

	case models.ModifierUpdate:
		payload := result.Payload
		if len(payload) == 0 {
			payload = m.Payload
		}
		record := models.CacheRecord{
			Collection:   m.Collection,
			RemoteID:     m.TargetRemoteID,
			Payload:      payload,
			Version:      result.Version,
			LastSyncedAt: now,
		}
		if err := s.storages.Cache.Upsert(ctx, record); err != nil {
			return fmt.Errorf("reconcile updated record: %w", err)
		}

	case models.ModifierDelete:
		err := s.storages.Cache.Tombstone(ctx, m.Collection, m.TargetRemoteID, now)
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("tombstone deleted record: %w", err)
		}
	}

	if err := s.storages.Modifiers.MarkApplied(ctx, m.ClientID); err != nil && !errors.Is(err, store.ErrModifierNotEligible) {
		return fmt.Errorf("mark modifier applied: %w", err)
	}

	return nil
}

// ── pull ────────────────────────────────────────────────────────────────────

func (s *syncService) Pull(ctx context.Context, collection models.Collection) error {
	if !collection.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	lock := s.pullLocks[collection]
	if !lock.TryLock() {
		// A pull of this collection is already running; skipping beats
		// queueing a redundant one behind it.
		return nil
	}
	defer lock.Unlock()

	log := logger.FromContext(ctx)

	cursor, err := s.storages.Cursors.Get(ctx, collection)
	if err != nil {
		return fmt.Errorf("load cursor: %w", err)
	}

	for {
		fetched, fetchErr := s.fetchPage(ctx, models.FetchRequest{
			Collection: collection,
			Cursor:     cursor.Cursor,
			Limit:      s.cfg.FetchLimit,
		})
		if fetchErr != nil {
			return fetchErr
		}

		applied := 0
		for _, item := range fetched.Items {
			skip, applyErr := s.applyRemoteItem(ctx, collection, item)
			if applyErr != nil {
				// The cursor must not advance past a partially
				// applied page.
				return applyErr
			}
			if !skip {
				applied++
			}
		}

		log.Debug().
			Str("func", "syncService.Pull").
			Str("collection", string(collection)).
			Int("items", len(fetched.Items)).
			Int("applied", applied).
			Msg("pulled page")

		if fetched.NextCursor == "" || fetched.NextCursor == cursor.Cursor {
			return nil
		}

		cursor = models.SyncCursor{
			Collection: collection,
			Cursor:     fetched.NextCursor,
			UpdatedAt:  s.clock.Now(),
		}
		if err = s.storages.Cursors.Set(ctx, cursor); err != nil {
			return fmt.Errorf("store cursor: %w", err)
		}

		if len(fetched.Items) == 0 {
			return nil
		}
	}
}

// fetchPage fetches one delta page, retrying transient failures.
func (s *syncService) fetchPage(ctx context.Context, req models.FetchRequest) (models.FetchResponse, error) {
	maxAttempts := s.cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	backoff := retry.WithMaxRetries(uint64(maxAttempts-1),
		retry.WithCappedDuration(s.backoffCap(), retry.NewExponential(s.backoffBase())))

	var fetched models.FetchResponse
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, fetchErr := s.gateway.Fetch(ctx, req)
		if fetchErr != nil {
			if classifyGatewayError(fetchErr) == outcomeTransient {
				return retry.RetryableError(fetchErr)
			}
			return fetchErr
		}
		fetched = resp
		return nil
	})
	if err != nil {
		if classifyGatewayError(err) == outcomeAuth {
			return models.FetchResponse{}, fmt.Errorf("%w: %w", ErrAuthRequired, err)
		}
		return models.FetchResponse{}, fmt.Errorf("fetch %s: %w", req.Collection, err)
	}

	return fetched, nil
}

// applyRemoteItem writes one pulled item into the cache. Items with an
// unresolved queued modifier are skipped: the local overlay stays visible
// until the queue settles, at which point the next pull converges the record.
func (s *syncService) applyRemoteItem(ctx context.Context, collection models.Collection, item models.RemoteItem) (skipped bool, err error) {
	unresolved, err := s.storages.Modifiers.HasUnresolved(ctx, collection, item.RemoteID)
	if err != nil {
		return false, fmt.Errorf("check unresolved modifiers: %w", err)
	}
	if unresolved {
		return true, nil
	}

	now := s.clock.Now()

	if item.Deleted {
		err = s.storages.Cache.Tombstone(ctx, collection, item.RemoteID, now)
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return false, fmt.Errorf("tombstone pulled record: %w", err)
		}
		return false, nil
	}

	record := models.CacheRecord{
		Collection:   collection,
		RemoteID:     item.RemoteID,
		Payload:      item.Payload,
		Version:      item.Version,
		LastSyncedAt: now,
	}
	if err = s.storages.Cache.Upsert(ctx, record); err != nil {
		return false, fmt.Errorf("cache pulled record: %w", err)
	}

	return false, nil
}

// ── maintenance ─────────────────────────────────────────────────────────────

func (s *syncService) Recover(ctx context.Context) error {
	log := logger.FromContext(ctx)

	requeued, err := s.storages.Modifiers.RequeueInFlight(ctx)
	if err != nil {
		return fmt.Errorf("requeue in-flight modifiers: %w", err)
	}
	if requeued > 0 {
		// These were cut off mid-dispatch by a crash; their outcome is
		// unknown, so they go out again under the same idempotency key.
		log.Info().
			Str("func", "syncService.Recover").
			Int64("requeued", requeued).
			Msg("recovered in-flight modifiers from previous run")
	}

	return nil
}

func (s *syncService) Purge(ctx context.Context) (int64, error) {
	grace := s.cfg.TombstoneGrace
	if grace <= 0 {
		grace = 7 * 24 * time.Hour
	}

	return s.storages.Cache.Purge(ctx, s.clock.Now().Add(-grace))
}

func (s *syncService) backoffBase() time.Duration {
	if s.cfg.BackoffBase > 0 {
		return s.cfg.BackoffBase
	}
	return 500 * time.Millisecond
}

func (s *syncService) backoffCap() time.Duration {
	if s.cfg.BackoffCap > 0 {
		return s.cfg.BackoffCap
	}
	return 30 * time.Second
}
