package service

import "errors"

var (
	// ErrAuthRequired is returned when the server no longer accepts the
	// session token. The drain pauses without consuming retry attempts;
	// queued modifiers wait for a re-login.
	ErrAuthRequired = errors.New("authentication required")

	// ErrUnknownCollection is returned for a collection the client does
	// not mirror.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrInvalidModifier is returned when an enqueue request is malformed
	// (empty target for update/delete, empty payload for create/update).
	ErrInvalidModifier = errors.New("invalid modifier")

	// ErrValidationRejected marks a modifier the server refused as
	// malformed. Terminal: retrying the identical payload cannot succeed.
	ErrValidationRejected = errors.New("rejected by server validation")

	// ErrConflictRejected marks a modifier whose target no longer matches
	// the server's state (deleted remotely, version mismatch). Terminal.
	ErrConflictRejected = errors.New("conflicting remote state")
)
