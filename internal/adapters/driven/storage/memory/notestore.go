package memory

import (
	"context"
	"sync"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// Ensure NoteStore implements the interface.
var _ driven.NoteStore = (*NoteStore)(nil)

// NoteStore is an in-memory implementation of driven.NoteStore.
type NoteStore struct {
	mu    sync.RWMutex
	notes []domain.Note
}

// NewNoteStore creates a new in-memory note store.
func NewNoteStore(notes ...domain.Note) *NoteStore {
	return &NoteStore{notes: notes}
}

// GetAll returns every stored note.
func (s *NoteStore) GetAll(_ context.Context) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Note, len(s.notes))
	copy(out, s.notes)
	return out, nil
}

// Put stores or replaces a note by ID.
func (s *NoteStore) Put(note domain.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.notes {
		if existing.ID == note.ID {
			s.notes[i] = note
			return
		}
	}
	s.notes = append(s.notes, note)
}
