package store

import (
	"context"
	"time"

	"github.com/zylch/zylch-go/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ListFilter narrows CacheRepository.List results. The zero value returns
// every live (non-tombstoned) record of the collection.
type ListFilter struct {
	// Since keeps only records synced at or after the given time.
	Since time.Time
	// Limit caps the number of returned records; 0 means no limit.
	Limit uint64
	// IncludeTombstoned also returns records awaiting purge.
	IncludeTombstoned bool
}

// CacheRepository is the durable mirror of server-owned collections.
// Implementations never perform network I/O and never swallow storage
// errors: every failure propagates to the caller.
type CacheRepository interface {
	// Get returns the record keyed by (collection, remoteID).
	// Returns ErrRecordNotFound if absent.
	Get(ctx context.Context, collection models.Collection, remoteID string) (models.CacheRecord, error)

	// GetByClientID returns a pending-create record keyed by the clientID
	// of the modifier that produced it.
	GetByClientID(ctx context.Context, collection models.Collection, clientID string) (models.CacheRecord, error)

	// Upsert writes the record, overwriting any existing row with the same
	// primary key. Last-writer-wins; ordering is the sync engine's concern.
	// The write is committed before Upsert returns.
	Upsert(ctx context.Context, record models.CacheRecord) error

	// List returns the collection's records, tombstoned ones excluded
	// unless the filter asks for them.
	List(ctx context.Context, collection models.Collection, filter ListFilter) ([]models.CacheRecord, error)

	// Tombstone marks the record deleted; it stays queryable (with
	// IncludeTombstoned) until Purge removes it.
	Tombstone(ctx context.Context, collection models.Collection, remoteID string, at time.Time) error

	// DeleteByClientID physically removes a pending-create record, used
	// when its originating modifier is collapsed or terminally fails.
	DeleteByClientID(ctx context.Context, collection models.Collection, clientID string) error

	// BindRemoteID promotes a pending-create record to a server-owned one
	// after the create was applied.
	BindRemoteID(ctx context.Context, collection models.Collection, clientID, remoteID string, version int64, syncedAt time.Time) error

	// Purge physically deletes tombstoned records whose tombstone is older
	// than the cutoff. Returns the number of removed rows.
	Purge(ctx context.Context, cutoff time.Time) (int64, error)

	// Stats returns live record counts per collection.
	Stats(ctx context.Context) (map[models.Collection]int64, error)
}

// ModifierRepository is the durable, ordered log of unconfirmed local
// mutations. State transitions that gate network dispatch are implemented as
// atomic compare-and-swap updates.
type ModifierRepository interface {
	// Insert appends a new pending modifier to the log.
	// Returns ErrDuplicateModifier if the clientID already exists.
	Insert(ctx context.Context, m models.Modifier) error

	// Get returns the modifier by clientID, or ErrModifierNotFound.
	Get(ctx context.Context, clientID string) (models.Modifier, error)

	// PeekPending returns pending modifiers in enqueue order. An empty
	// collection selects every collection.
	PeekPending(ctx context.Context, collection models.Collection) ([]models.Modifier, error)

	// MarkInFlight transitions pending → in_flight. This is the single
	// mutual-exclusion point against double dispatch: if the stored state
	// is anything but pending, ErrModifierNotEligible is returned and the
	// caller must not submit.
	MarkInFlight(ctx context.Context, clientID string) error

	// MarkApplied removes an in_flight modifier after the server confirmed
	// it. Returns ErrModifierNotEligible if it was not in_flight.
	MarkApplied(ctx context.Context, clientID string) error

	// MarkFailed records a failed attempt on an in_flight modifier:
	// attempts is incremented and the state returns to pending, or to the
	// terminal failed state when terminal is true.
	MarkFailed(ctx context.Context, clientID string, cause string, terminal bool) error

	// Release returns an in_flight modifier to pending without counting
	// an attempt. Used when the drain pauses on an auth failure: the
	// modifier was never rejected, the session just lapsed.
	Release(ctx context.Context, clientID string) error

	// RequeueInFlight returns every in_flight modifier to pending. Called
	// at startup: an in_flight row then means a crash mid-dispatch, and
	// the outcome is unknown, so the modifier is re-attempted under the
	// same idempotency key.
	RequeueInFlight(ctx context.Context) (int64, error)

	// RebindTarget rewrites the target of queued modifiers that reference
	// a pending-create placeholder once the server assigns a remote id.
	RebindTarget(ctx context.Context, collection models.Collection, placeholder, remoteID string) error

	// Delete removes the modifier regardless of state.
	Delete(ctx context.Context, clientID string) error

	// HasUnresolved reports whether any pending or in_flight modifier
	// targets the given remote id. Used by the pull path: such a record's
	// local overlay wins over the pulled server value.
	HasUnresolved(ctx context.Context, collection models.Collection, remoteID string) (bool, error)

	// ListFailed returns terminally failed modifiers for inspection.
	ListFailed(ctx context.Context) ([]models.Modifier, error)

	// Retry re-arms a terminally failed modifier: failed → pending with
	// attempts reset. Returns ErrModifierNotEligible if it is not failed.
	Retry(ctx context.Context, clientID string) error

	// Counts returns the number of pending/in_flight and failed entries.
	Counts(ctx context.Context) (pending int64, failed int64, err error)
}

// CursorRepository stores the per-collection sync cursor.
type CursorRepository interface {
	// Get returns the stored cursor, or an empty cursor if the collection
	// has never been pulled.
	Get(ctx context.Context, collection models.Collection) (models.SyncCursor, error)

	// Set durably replaces the collection's cursor.
	Set(ctx context.Context, cursor models.SyncCursor) error
}
