// Package service implements the client's business logic on top of the local
// store and the remote gateway: the modifier queue with its optimistic cache
// overlay, the sync engine (pull and drain), session management, and the
// background sync job.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/zylch/zylch-go/internal/store"
	"github.com/zylch/zylch-go/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// QueueService records local mutations durably and mirrors them into the
// cache so reads reflect queued changes immediately, whether or not the
// server is reachable.
type QueueService interface {
	// EnqueueCreate appends a create modifier and materialises a
	// pending-create cache record keyed by the modifier's ClientID.
	EnqueueCreate(ctx context.Context, collection models.Collection, payload json.RawMessage) (models.Modifier, error)

	// EnqueueUpdate appends an update modifier targeting a remote id (or a
	// pending-create placeholder) and overlays the payload onto the cached
	// record.
	EnqueueUpdate(ctx context.Context, collection models.Collection, target string, payload json.RawMessage) (models.Modifier, error)

	// EnqueueDelete appends a delete modifier and tombstones the cached
	// record. Deleting a still-pending create collapses locally: the
	// create modifier and its record are removed and nothing reaches the
	// server; the returned modifier is the zero value in that case.
	EnqueueDelete(ctx context.Context, collection models.Collection, target string) (models.Modifier, error)

	// Get reads one cached record; the returned value includes any queued
	// local overlay.
	Get(ctx context.Context, collection models.Collection, remoteID string) (models.CacheRecord, error)

	// List reads the collection from the cache, overlay included.
	List(ctx context.Context, collection models.Collection, filter store.ListFilter) ([]models.CacheRecord, error)

	// Pending returns unconfirmed modifiers in enqueue order.
	Pending(ctx context.Context) ([]models.Modifier, error)

	// Failed returns terminally failed modifiers.
	Failed(ctx context.Context) ([]models.Modifier, error)

	// Retry re-arms a terminally failed modifier for the next drain.
	Retry(ctx context.Context, clientID string) error

	// Discard drops a modifier and, for creates, its pending-create record.
	Discard(ctx context.Context, clientID string) error

	// Stats reports cached record counts and queue depths.
	Stats(ctx context.Context) (models.CacheStats, error)
}

// SyncService reconciles the local cache with the server: Drain pushes queued
// modifiers, Pull applies the server's delta, Sync runs both for every
// collection.
type SyncService interface {
	// Sync probes the server and, if reachable, drains the modifier queue
	// and pulls every collection. Unreachable servers are not an error:
	// the client stays offline and the queue is preserved.
	Sync(ctx context.Context) error

	// Drain submits pending modifiers. Modifiers sharing a dispatch target
	// go out strictly in enqueue order; distinct targets are submitted
	// concurrently up to the configured limit. Returns ErrAuthRequired if
	// the session lapsed mid-drain.
	Drain(ctx context.Context) error

	// Pull fetches the collection's delta since the stored cursor and
	// applies it to the cache. Items with unresolved local modifiers are
	// skipped: the local overlay wins until the queue resolves. The
	// cursor only advances after every item is durably cached.
	Pull(ctx context.Context, collection models.Collection) error

	// Recover returns crash-orphaned in_flight modifiers to pending.
	// Called once at startup before the first drain.
	Recover(ctx context.Context) error

	// Purge physically removes tombstoned records older than the grace
	// period. Returns the number purged.
	Purge(ctx context.Context) (int64, error)
}

// AuthService manages the login session: browser login, persistence across
// restarts, and local expiry checks.
type AuthService interface {
	// Login runs the browser login flow, stores the token on the gateway,
	// and persists the session.
	Login(ctx context.Context) (models.Session, error)

	// Restore loads the persisted session, verifies the token has not
	// expired, and arms the gateway with it.
	Restore(ctx context.Context) (models.Session, error)

	// Logout clears the persisted session and the gateway token.
	Logout(ctx context.Context) error

	// TokenExpiry returns when the current session token lapses.
	TokenExpiry() (time.Time, error)
}

// SyncJob periodically runs the sync service in the background.
type SyncJob interface {
	// Start launches the background loop; it replaces any running job.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the loop and waits for it to exit.
	Stop()
}
