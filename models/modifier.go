package models

import (
	"encoding/json"
	"time"
)

// ModifierKind is the type of a queued mutation.
type ModifierKind string

const (
	ModifierCreate ModifierKind = "create"
	ModifierUpdate ModifierKind = "update"
	ModifierDelete ModifierKind = "delete"
)

// Valid reports whether k is a known modifier kind.
func (k ModifierKind) Valid() bool {
	switch k {
	case ModifierCreate, ModifierUpdate, ModifierDelete:
		return true
	}
	return false
}

// ModifierState is the lifecycle state of a queued mutation.
//
// The state machine is:
//
//	pending → in_flight → applied   (row removed)
//	pending → in_flight → pending   (transient failure, retry later)
//	pending → in_flight → failed    (terminal, kept for inspection)
//
// Applied and failed are terminal; only the transition out of pending (or a
// re-armed failed) may dispatch a network call, and that transition is a
// compare-and-swap so two overlapping drains can never double-submit.
type ModifierState string

const (
	ModifierPending  ModifierState = "pending"
	ModifierInFlight ModifierState = "in_flight"
	ModifierApplied  ModifierState = "applied"
	ModifierFailed   ModifierState = "failed"
)

// Terminal reports whether no further automatic transition occurs from s.
func (s ModifierState) Terminal() bool {
	return s == ModifierApplied || s == ModifierFailed
}

// Modifier is a single queued, idempotent mutation intent awaiting
// confirmation by the remote service.
//
// ClientID is generated at enqueue time and presented to the server as the
// idempotency key: the client may submit it more than once (a retried call
// whose first response was lost), the server must apply it at most once.
//
// TargetRemoteID is empty for creates. For updates and deletes it names the
// server-side item — or, when the target is itself a still-pending create,
// the placeholder ClientID of that create, rebound once the server assigns
// the real id.
type Modifier struct {
	ClientID       string          `json:"client_id"`
	Kind           ModifierKind    `json:"kind"`
	Collection     Collection      `json:"collection"`
	TargetRemoteID string          `json:"target_remote_id,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	EnqueuedAt     time.Time       `json:"enqueued_at"`
	Attempts       int             `json:"attempts"`
	State          ModifierState   `json:"state"`
	LastError      string          `json:"last_error,omitempty"`
}

// DispatchTarget returns the key used to serialize dispatch order. Modifiers
// sharing a target are sent strictly in enqueue order; different targets may
// be drained concurrently.
func (m Modifier) DispatchTarget() string {
	if m.TargetRemoteID != "" {
		return m.TargetRemoteID
	}
	return m.ClientID
}
