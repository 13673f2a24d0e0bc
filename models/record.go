package models

import (
	"encoding/json"
	"time"
)

// CacheRecord is one locally mirrored item of a server-owned collection.
//
// A record with a non-empty RemoteID is keyed by (Collection, RemoteID) and
// holds the last payload received from the server, possibly overwritten by an
// optimistic local mutation that is still queued. A record with an empty
// RemoteID is a pending-create: it exists only locally and is keyed by the
// ClientID of the modifier that created it, until the server assigns a
// remote id and the record is promoted.
type CacheRecord struct {
	Collection   Collection      `json:"collection"`
	RemoteID     string          `json:"remote_id,omitempty"`
	ClientID     string          `json:"client_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
	Version      int64           `json:"version"`
	LastSyncedAt time.Time       `json:"last_synced_at"`
	Tombstoned   bool            `json:"tombstoned"`
	TombstonedAt *time.Time      `json:"tombstoned_at,omitempty"`
}

// PendingCreate reports whether the record has not yet been assigned a
// server-side id.
func (r CacheRecord) PendingCreate() bool {
	return r.RemoteID == ""
}

// CacheStats holds per-collection record counts plus the number of
// unconfirmed queue entries, for the status display.
type CacheStats struct {
	Records map[Collection]int64 `json:"records"`
	Pending int64                `json:"pending"`
	Failed  int64                `json:"failed"`
}
