package models

import (
	"encoding/json"
	"time"
)

// SyncCursor marks the last successfully pulled remote state for one
// collection. The cursor value is opaque to the client: it is whatever the
// server returned as nextCursor and is echoed back verbatim on the next
// fetch. An empty cursor requests the full collection.
type SyncCursor struct {
	Collection Collection `json:"collection"`
	Cursor     string     `json:"cursor"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// RemoteItem is one item of a collection as reported by the server.
type RemoteItem struct {
	RemoteID string          `json:"remote_id"`
	Payload  json.RawMessage `json:"payload"`
	Version  int64           `json:"version"`
	Deleted  bool            `json:"deleted"`
}

// FetchRequest asks the server for the delta of one collection since the
// given cursor. Filters are passed through to the server unchanged.
type FetchRequest struct {
	Collection Collection        `json:"collection"`
	Cursor     string            `json:"cursor,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
	Limit      int               `json:"limit,omitempty"`
}

// FetchResponse is the server's delta for one collection. NextCursor is
// stored by the sync engine only after every item has been durably cached.
type FetchResponse struct {
	Items      []RemoteItem `json:"items"`
	NextCursor string       `json:"next_cursor"`
}

// ApplyRequest submits one queued modifier to the server. ClientID doubles as
// the idempotency key.
type ApplyRequest struct {
	ClientID       string          `json:"client_id"`
	Kind           ModifierKind    `json:"kind"`
	Collection     Collection      `json:"collection"`
	TargetRemoteID string          `json:"target_remote_id,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

// ApplyResult is the authoritative outcome of a modifier. For creates,
// RemoteID carries the server-assigned id. Payload and Version are the
// canonical post-mutation state the cache is reconciled with; Payload is
// empty for deletes.
type ApplyResult struct {
	Success  bool            `json:"success"`
	RemoteID string          `json:"remote_id,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Version  int64           `json:"version,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// HealthStatus is the server's health probe response.
type HealthStatus struct {
	Status string `json:"status"`
}

// Healthy reports whether the server declared itself operational.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}
