package adapter

import "errors"

// Sentinel errors mapped from HTTP status codes. The sync engine classifies
// them into its outcome taxonomy: ErrUnauthorized/ErrForbidden pause the
// drain until re-login, ErrBadRequest/ErrUnprocessable terminally fail the
// modifier, ErrNotFound/ErrConflict/ErrGone surface a conflict, and
// everything else is treated as transient.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrGone                = errors.New("gone")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
)
