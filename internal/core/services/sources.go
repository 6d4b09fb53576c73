package services

import (
	"context"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// Source is one local result source in the fan-out. Implementations are
// synchronous against an adapter-local cache; failure in one source never
// propagates - the controller logs it and that source contributes an
// empty slice for the pass.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Search returns results for the query. Callers treat the slice
	// as owned by them; sources must not retain it.
	Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error)
}
