package driven

import (
	"context"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// IndexService is the session protocol against the external full-volume
// index service. The service is a separate, already-running process; the
// concrete transport is an adapter concern.
type IndexService interface {
	// Status probes whether the service can be queried.
	// Unavailability is reported via domain.ErrNotInstalled or
	// domain.ErrServiceNotRunning on the returned status.
	Status(ctx context.Context) domain.IndexStatus

	// StartSession opens a server-side cursor for query.
	StartSession(ctx context.Context, query string, opts SessionOptions) (SessionInfo, error)

	// GetRange fetches one page of an open session.
	GetRange(ctx context.Context, sessionID string, offset, limit int) (RangeResult, error)

	// CloseSession releases the server-side cursor. Fire-and-forget:
	// failures are swallowed by callers, the service garbage-collects
	// idle sessions on its own timeout.
	CloseSession(ctx context.Context, sessionID string) error
}

// SessionOptions bounds a new session's cost on the external service.
type SessionOptions struct {
	// MaxResults caps how many hits the service holds for this session.
	MaxResults int

	// ChunkSize is the page size for subsequent fetches.
	ChunkSize int
}

// SessionInfo is the service's answer to StartSession.
type SessionInfo struct {
	// SessionID is the opaque cursor identifier.
	SessionID string

	// TotalCount is the total number of hits for the query.
	TotalCount int
}

// RangeResult is one fetched page.
type RangeResult struct {
	// Items are the hits in this page.
	Items []domain.IndexItem

	// TotalCount is the (possibly refreshed) total hit count.
	TotalCount int
}
