package driven

import (
	"context"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// FileHistoryStore persists the user's previously opened files and folders.
type FileHistoryStore interface {
	// GetAll returns every history entry.
	GetAll(ctx context.Context) ([]domain.FileEntry, error)

	// Add records that path was opened, creating or refreshing its entry.
	Add(ctx context.Context, path string) error

	// Delete removes the entry for path. Missing entries are not an error.
	Delete(ctx context.Context, path string) error
}

// UsageStore persists launch frequency and recency per path.
// Reads feed the ranker; writes happen on launch, asynchronously.
type UsageStore interface {
	// RecordOpen bumps the use count and last-used time for path.
	RecordOpen(ctx context.Context, path string) error

	// GetAll returns the full usage table keyed by normalised path.
	GetAll(ctx context.Context) (domain.UsageTable, error)
}
