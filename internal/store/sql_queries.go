package store

// Placeholders are written $N in order of first appearance, which binds
// positionally under both supported drivers.
const (
	// ── cache_records ──

	getCacheRecord = `
		SELECT collection, remote_id, client_id, payload, version, last_synced_at, tombstoned, tombstoned_at
		FROM cache_records
		WHERE collection = $1 AND remote_id = $2;`

	getCacheRecordByClientID = `
		SELECT collection, remote_id, client_id, payload, version, last_synced_at, tombstoned, tombstoned_at
		FROM cache_records
		WHERE collection = $1 AND client_id = $2;`

	// Upsert is split into an UPDATE followed by a conditional INSERT so the
	// same statements run unchanged on SQLite and PostgreSQL; ON CONFLICT
	// against partial unique indexes is not portable between the two.
	updateCacheRecordByRemoteID = `
		UPDATE cache_records
		SET client_id = $1, payload = $2, version = $3, last_synced_at = $4, tombstoned = $5, tombstoned_at = $6
		WHERE collection = $7 AND remote_id = $8;`

	updateCacheRecordByClientID = `
		UPDATE cache_records
		SET remote_id = $1, payload = $2, version = $3, last_synced_at = $4, tombstoned = $5, tombstoned_at = $6
		WHERE collection = $7 AND client_id = $8;`

	insertCacheRecord = `
		INSERT INTO cache_records (collection, remote_id, client_id, payload, version, last_synced_at, tombstoned, tombstoned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	tombstoneCacheRecord = `
		UPDATE cache_records
		SET tombstoned = TRUE, tombstoned_at = $1
		WHERE collection = $2 AND remote_id = $3;`

	deleteCacheRecordByClientID = `
		DELETE FROM cache_records
		WHERE collection = $1 AND client_id = $2;`

	bindCacheRecordRemoteID = `
		UPDATE cache_records
		SET remote_id = $1, version = $2, last_synced_at = $3
		WHERE collection = $4 AND client_id = $5 AND remote_id IS NULL;`

	purgeTombstonedCacheRecords = `
		DELETE FROM cache_records
		WHERE tombstoned = TRUE AND tombstoned_at <= $1;`

	countCacheRecordsByCollection = `
		SELECT collection, COUNT(*)
		FROM cache_records
		WHERE tombstoned = FALSE
		GROUP BY collection;`

	// ── modifier_queue ──

	// seq is assigned inside the INSERT. SQLite serialises writers, so
	// enqueues get distinct slots there; under PostgreSQL two concurrent
	// enqueues may compute the same seq, costing only a nondeterministic
	// ORDER BY tie between enqueues that raced each other, never a lost
	// modifier.
	insertModifier = `
		INSERT INTO modifier_queue (client_id, seq, kind, collection, target_remote_id, payload, enqueued_at, attempts, state, last_error)
		VALUES ($1, (SELECT COALESCE(MAX(seq), 0) + 1 FROM modifier_queue), $2, $3, $4, $5, $6, $7, $8, $9);`

	getModifier = `
		SELECT client_id, kind, collection, target_remote_id, payload, enqueued_at, attempts, state, last_error
		FROM modifier_queue
		WHERE client_id = $1;`

	peekPendingModifiers = `
		SELECT client_id, kind, collection, target_remote_id, payload, enqueued_at, attempts, state, last_error
		FROM modifier_queue
		WHERE state = 'pending'
		ORDER BY seq;`

	peekPendingModifiersByCollection = `
		SELECT client_id, kind, collection, target_remote_id, payload, enqueued_at, attempts, state, last_error
		FROM modifier_queue
		WHERE state = 'pending' AND collection = $1
		ORDER BY seq;`

	markModifierInFlight = `
		UPDATE modifier_queue
		SET state = 'in_flight'
		WHERE client_id = $1 AND state = 'pending';`

	// Applied modifiers are removed rather than archived: the cache record
	// they produced is the durable trace of the mutation.
	markModifierApplied = `
		DELETE FROM modifier_queue
		WHERE client_id = $1 AND state = 'in_flight';`

	markModifierFailed = `
		UPDATE modifier_queue
		SET state = $1, attempts = attempts + 1, last_error = $2
		WHERE client_id = $3 AND state = 'in_flight';`

	releaseModifier = `
		UPDATE modifier_queue
		SET state = 'pending'
		WHERE client_id = $1 AND state = 'in_flight';`

	requeueInFlightModifiers = `
		UPDATE modifier_queue
		SET state = 'pending'
		WHERE state = 'in_flight';`

	rebindModifierTarget = `
		UPDATE modifier_queue
		SET target_remote_id = $1
		WHERE collection = $2 AND target_remote_id = $3
		  AND state IN ('pending', 'in_flight', 'failed');`

	deleteModifier = `
		DELETE FROM modifier_queue
		WHERE client_id = $1;`

	hasUnresolvedModifiers = `
		SELECT COUNT(*)
		FROM modifier_queue
		WHERE collection = $1 AND target_remote_id = $2
		  AND state IN ('pending', 'in_flight');`

	listFailedModifiers = `
		SELECT client_id, kind, collection, target_remote_id, payload, enqueued_at, attempts, state, last_error
		FROM modifier_queue
		WHERE state = 'failed'
		ORDER BY seq;`

	retryFailedModifier = `
		UPDATE modifier_queue
		SET state = 'pending', attempts = 0, last_error = NULL
		WHERE client_id = $1 AND state = 'failed';`

	countModifiers = `
		SELECT
			COUNT(*) FILTER (WHERE state IN ('pending', 'in_flight')),
			COUNT(*) FILTER (WHERE state = 'failed')
		FROM modifier_queue;`

	// ── sync_cursors ──

	getSyncCursor = `
		SELECT collection, cursor, updated_at
		FROM sync_cursors
		WHERE collection = $1;`

	updateSyncCursor = `
		UPDATE sync_cursors
		SET cursor = $1, updated_at = $2
		WHERE collection = $3;`

	insertSyncCursor = `
		INSERT INTO sync_cursors (collection, cursor, updated_at)
		VALUES ($1, $2, $3);`
)
