package memory

import (
	"context"
	"sync"
	"time"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// Ensure FileHistoryStore implements the interface.
var _ driven.FileHistoryStore = (*FileHistoryStore)(nil)

// FileHistoryStore is an in-memory implementation of driven.FileHistoryStore.
type FileHistoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.FileEntry

	// now is swappable for tests.
	now func() time.Time
}

// NewFileHistoryStore creates a new in-memory file history store.
func NewFileHistoryStore() *FileHistoryStore {
	return &FileHistoryStore{
		entries: make(map[string]domain.FileEntry),
		now:     time.Now,
	}
}

// GetAll returns every history entry.
func (s *FileHistoryStore) GetAll(_ context.Context) ([]domain.FileEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FileEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

// Add records that path was opened, creating or refreshing its entry.
func (s *FileHistoryStore) Add(_ context.Context, path string) error {
	if path == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizePath(path)
	entry, ok := s.entries[key]
	if !ok {
		entry = domain.FileEntry{
			Path: path,
			Name: domain.BaseName(path),
		}
	}
	entry.UseCount++
	entry.LastUsed = s.now().Unix()
	s.entries[key] = entry
	return nil
}

// Delete removes the entry for path. Missing entries are not an error.
func (s *FileHistoryStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, domain.NormalizePath(path))
	return nil
}

// Seed replaces the store contents. Test helper.
func (s *FileHistoryStore) Seed(entries []domain.FileEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.FileEntry, len(entries))
	for _, e := range entries {
		s.entries[domain.NormalizePath(e.Path)] = e
	}
}
