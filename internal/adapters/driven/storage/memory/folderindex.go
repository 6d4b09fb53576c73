package memory

import (
	"context"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// Ensure FolderIndex implements the interface.
var _ driven.FolderIndex = (*FolderIndex)(nil)

// FolderIndex serves a fixed catalogue of well-known folders.
type FolderIndex struct {
	folders []domain.FolderEntry
}

// NewFolderIndex creates a folder index over the given entries.
func NewFolderIndex(folders ...domain.FolderEntry) *FolderIndex {
	return &FolderIndex{folders: folders}
}

// DefaultFolders is the built-in system folder catalogue, including the
// recycle-bin shell surrogate.
func DefaultFolders() []domain.FolderEntry {
	return []domain.FolderEntry{
		{Name: "Desktop", DisplayName: "Desktop", Path: "shell:Desktop"},
		{Name: "Documents", DisplayName: "Documents", Path: "shell:Personal"},
		{Name: "Downloads", DisplayName: "Downloads", Path: "shell:Downloads"},
		{Name: "Pictures", DisplayName: "Pictures", Path: "shell:My Pictures"},
		{Name: "Music", DisplayName: "Music", Path: "shell:My Music"},
		{Name: "Videos", DisplayName: "Videos", Path: "shell:My Video"},
		{
			Name:        "Recycle Bin",
			DisplayName: "Recycle Bin",
			Path:        "::{645FF040-5081-101B-9F08-00AA002F954E}",
		},
	}
}

// List returns the system folder entries.
func (f *FolderIndex) List(_ context.Context) ([]domain.FolderEntry, error) {
	out := make([]domain.FolderEntry, len(f.folders))
	copy(out, f.folders)
	return out, nil
}
