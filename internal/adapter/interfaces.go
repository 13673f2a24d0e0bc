// Package adapter provides the transport layer for communicating with the
// zylch API server.
//
// The primary abstraction is [RemoteGateway], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRemoteGateway]) plus the localhost callback
// listener used by the browser login flow.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/zylch/zylch-go/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_gateway_mock.go -package=mock

// RemoteGateway defines transport-agnostic communication with the zylch
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
//
// All methods are safe for concurrent use: the drain path submits modifiers
// for distinct targets in parallel.
type RemoteGateway interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Called after login and after a persisted
	// session is restored.
	SetToken(token string)

	// Token returns the bearer token currently stored in the gateway, or
	// an empty string if none has been set.
	Token() string

	// Health probes the server's health endpoint. A transport failure or
	// non-2xx status is returned as an error; an unhealthy body is
	// reported through the returned status.
	Health(ctx context.Context) (models.HealthStatus, error)

	// Login exchanges an email/password pair for a session. On success
	// the session token is stored via SetToken.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// Fetch requests the delta of one collection since the request's
	// cursor. The returned NextCursor is opaque and echoed back verbatim
	// on the next call.
	Fetch(ctx context.Context, req models.FetchRequest) (models.FetchResponse, error)

	// ApplyModifier submits one queued mutation. The request's ClientID is
	// sent as the idempotency key, so resubmitting after a lost response
	// is safe. A returned error classifies the failure (transport,
	// [ErrUnauthorized], [ErrConflict], ...); an unsuccessful
	// [models.ApplyResult] carries the server's rejection reason.
	ApplyModifier(ctx context.Context, req models.ApplyRequest) (models.ApplyResult, error)
}
