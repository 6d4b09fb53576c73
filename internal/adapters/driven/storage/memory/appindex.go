package memory

import (
	"context"
	"sync"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// Ensure AppIndex implements the interface.
var _ driven.AppIndex = (*AppIndex)(nil)

// AppIndex is an in-memory implementation of driven.AppIndex. It serves
// a fixed catalogue and can simulate filesystem invalidation, which makes
// it useful both as a test double and as the fallback when no on-disk
// scanner is configured.
type AppIndex struct {
	mu      sync.RWMutex
	apps    []domain.AppEntry
	changed chan struct{}
}

// NewAppIndex creates an app index over the given entries.
func NewAppIndex(apps ...domain.AppEntry) *AppIndex {
	return &AppIndex{
		apps:    apps,
		changed: make(chan struct{}, 1),
	}
}

// Scan returns the catalogue.
func (a *AppIndex) Scan(_ context.Context) ([]domain.AppEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.AppEntry, len(a.apps))
	copy(out, a.apps)
	return out, nil
}

// Rescan is a no-op for the in-memory catalogue.
func (a *AppIndex) Rescan(_ context.Context) error {
	return nil
}

// Invalidated returns the change-notification channel.
func (a *AppIndex) Invalidated() <-chan struct{} {
	return a.changed
}

// Replace swaps the catalogue and signals invalidation.
func (a *AppIndex) Replace(apps []domain.AppEntry) {
	a.mu.Lock()
	a.apps = apps
	a.mu.Unlock()

	select {
	case a.changed <- struct{}{}:
	default:
	}
}
