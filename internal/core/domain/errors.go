package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// External Index Service Errors.

	// ErrNotInstalled indicates the external index service is not installed.
	ErrNotInstalled = errors.New("index service not installed")

	// ErrServiceNotRunning indicates the external index service process is not running.
	ErrServiceNotRunning = errors.New("index service not running")

	// ErrSourceUnavailable indicates a result source cannot be queried right now.
	// The pipeline degrades to the remaining sources.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSessionTimeout indicates a session create or page fetch exceeded its budget.
	// Treated as ErrSourceUnavailable for the remainder of the query.
	ErrSessionTimeout = errors.New("session timed out")

	// ErrSessionClosed indicates an operation was attempted on a closed session.
	ErrSessionClosed = errors.New("session closed")

	// Pipeline Errors.

	// ErrStaleResult indicates a result arrived after its generation token or
	// session id stopped matching current state. Discarded, never surfaced.
	ErrStaleResult = errors.New("stale result")

	// ErrDeliveryCancelled indicates an incremental delivery was superseded.
	ErrDeliveryCancelled = errors.New("delivery cancelled")

	// ErrControllerClosed indicates the search controller has been shut down.
	ErrControllerClosed = errors.New("controller closed")
)

// IsUnavailable reports whether err means the external index service cannot
// be used for this query (not installed, not running, or timed out).
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNotInstalled) ||
		errors.Is(err, ErrServiceNotRunning) ||
		errors.Is(err, ErrSourceUnavailable) ||
		errors.Is(err, ErrSessionTimeout)
}
