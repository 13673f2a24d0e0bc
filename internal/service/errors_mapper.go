package service

import (
	"context"
	"errors"

	"github.com/zylch/zylch-go/internal/adapter"
)

// outcome classifies a gateway failure into the action the sync engine takes.
type outcome int

const (
	// outcomeTransient covers transport failures and 5xx responses: the
	// modifier stays pending and is retried with backoff.
	outcomeTransient outcome = iota
	// outcomeAuth covers 401/403: the drain pauses until re-login; no
	// retry attempt is consumed.
	outcomeAuth
	// outcomeValidation covers 400/422: the modifier terminally fails.
	outcomeValidation
	// outcomeConflict covers 404/409/410: the target diverged on the
	// server; the modifier terminally fails.
	outcomeConflict
)

// classifyGatewayError translates the adapter's transport error into a drain
// outcome. Anything unrecognised is treated as transient: when in doubt,
// keeping the modifier and retrying is the safe move.
func classifyGatewayError(err error) outcome {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return outcomeAuth
	case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrUnprocessable):
		return outcomeValidation
	case errors.Is(err, adapter.ErrNotFound), errors.Is(err, adapter.ErrConflict), errors.Is(err, adapter.ErrGone):
		return outcomeConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeTransient
	default:
		return outcomeTransient
	}
}
