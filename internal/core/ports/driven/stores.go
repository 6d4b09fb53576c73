package driven

import (
	"context"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// NoteStore provides access to the user's notes.
type NoteStore interface {
	// GetAll returns every stored note.
	GetAll(ctx context.Context) ([]domain.Note, error)
}

// PluginRegistry provides access to installed plugins.
// The registry owns its own matching: Search is a substring search over
// plugin name and description.
type PluginRegistry interface {
	// List returns every installed plugin.
	List(ctx context.Context) ([]domain.PluginDescriptor, error)

	// Search returns plugins whose name or description contains query.
	Search(ctx context.Context, query string) ([]domain.PluginDescriptor, error)
}

// FolderIndex provides the well-known system folder catalogue.
// The catalogue is loaded once and filtered client-side thereafter.
type FolderIndex interface {
	// List returns the system folder entries.
	List(ctx context.Context) ([]domain.FolderEntry, error)
}
