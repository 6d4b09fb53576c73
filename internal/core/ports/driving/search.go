package driving

import (
	"context"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// Snapshot is one emission of the result stream. For a single query
// generation, successive snapshots only ever grow: each lane is a
// superset-by-prefix of the previous emission until Complete.
type Snapshot struct {
	// Generation is the query generation the snapshot belongs to.
	Generation uint64

	// Horizontal is the icon-strip lane: launchable apps and plugins.
	Horizontal []domain.RankedResult

	// Vertical is the main list lane: everything else.
	Vertical []domain.RankedResult

	// Status carries the external-source state.
	Status domain.SearchStatus

	// Complete is true once the full result set has been delivered.
	Complete bool
}

// SearchController is the outward-facing search surface.
// One controller owns one query pipeline: debounce, source fan-out,
// external session lifecycle, aggregation, ranking, and delivery.
type SearchController interface {
	// OnQueryChange feeds raw input into the pipeline. Empty input
	// cancels any live session and clears the result stream immediately;
	// everything else is debounced by query length.
	OnQueryChange(raw string)

	// Cancel tears down the in-flight query, leaving the controller
	// ready for the next OnQueryChange.
	Cancel()

	// Subscribe registers a snapshot receiver. The returned function
	// unsubscribes. Delivery is latest-wins: a slow receiver observes
	// fewer intermediate snapshots, never a blocked pipeline.
	Subscribe() (<-chan Snapshot, func())

	// RecordLaunch records that the user launched a result, bumping its
	// usage record optimistically and persisting asynchronously.
	RecordLaunch(ctx context.Context, res domain.SearchResult) error

	// Close shuts the controller down. Subsequent calls are no-ops.
	Close() error
}
