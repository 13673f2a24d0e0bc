package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a query targets a cache record
	// (identified by collection and remote or client id) that does not
	// exist locally.
	ErrRecordNotFound = errors.New("cache record was not found")

	// ErrModifierNotFound is returned when a queue operation targets a
	// clientID with no corresponding row.
	ErrModifierNotFound = errors.New("modifier was not found")

	// ErrModifierNotEligible is returned when a state transition's
	// compare-and-swap guard fails: the stored state differs from the one
	// the transition requires. For MarkInFlight this means another drain
	// already owns the modifier and the caller must not dispatch it.
	ErrModifierNotEligible = errors.New("modifier is not in an eligible state")

	// ErrDuplicateModifier is returned when an insert collides with an
	// existing clientID, i.e. the same idempotency key enqueued twice.
	ErrDuplicateModifier = errors.New("modifier with this client id already exists")
)

// Low-level database operation errors, wrapped around the driver error.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// local database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when an error is detected during
	// multi-row iteration.
	ErrScanningRows = errors.New("failed to scan rows")
)
