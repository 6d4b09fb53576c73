package domain

import "time"

// SessionChunkSize is the page size for external index fetches.
// Kept small so the first paint is fast regardless of total hit count.
const SessionChunkSize = 50

// Session timeouts. Either firing usually means the backing service
// process died mid-operation, so both trigger an availability re-probe.
const (
	// SessionCreateTimeout bounds session creation.
	SessionCreateTimeout = 60 * time.Second
	// SessionFetchTimeout bounds a single page fetch.
	SessionFetchTimeout = 30 * time.Second
)

// SearchSession is a server-side cursor over one query's result set in the
// external index service. At most one session is live per manager instance:
// creating a new one implies asynchronously closing the previous one.
type SearchSession struct {
	// ID is the opaque session identifier minted by the service.
	ID string

	// Query is the query text this session was opened for. A session whose
	// query no longer matches the controller's current query is stale and
	// its results must be discarded, never applied.
	Query string

	// Generation is the query generation the session belongs to.
	Generation uint64

	// CreatedAt is when the session was opened.
	CreatedAt time.Time

	// MaxResultsRequested bounds how many hits the service will hold.
	MaxResultsRequested int

	// ChunkSize is the page size used for fetches.
	ChunkSize int

	// TotalCount is the total hit count the service reported.
	TotalCount int

	// LastFetchedOffset is the offset of the last fetched page.
	LastFetchedOffset int
}

// IndexStatus reports external index service availability.
type IndexStatus struct {
	// Available is true when the service can be queried.
	Available bool

	// Err carries ErrNotInstalled or ErrServiceNotRunning when unavailable.
	Err error
}

// MaxResultsFor returns the session result cap for a query of the given
// rune length. Short queries match enormous result counts, so the cap is
// a pure function of length to bound cost on the external service.
func MaxResultsFor(length int) int {
	switch {
	case length <= 1:
		return 50
	case length == 2:
		return 100
	case length <= 4:
		return 200
	default:
		return 500
	}
}
