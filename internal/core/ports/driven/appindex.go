package driven

import (
	"context"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// AppIndex provides access to the installed-application catalogue.
type AppIndex interface {
	// Scan returns all known application entries. Implementations may
	// serve a cached catalogue; callers treat the slice as read-only.
	Scan(ctx context.Context) ([]domain.AppEntry, error)

	// Rescan rebuilds the catalogue from disk. Blocks until the rescan
	// completes or ctx is cancelled.
	Rescan(ctx context.Context) error

	// Invalidated returns a channel that receives a signal whenever the
	// catalogue changed behind the index's back (e.g. a filesystem event).
	// May return nil if the implementation cannot watch.
	Invalidated() <-chan struct{}
}
