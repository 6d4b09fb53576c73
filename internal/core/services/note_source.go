package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// Ensure NoteSource implements the interface.
var _ Source = (*NoteSource)(nil)

// noteSnippetLen bounds the body snippet carried on note results.
const noteSnippetLen = 120

// NoteSource searches stored notes by title and body.
// Plain substring matching, no scoring: the return set is used as-is.
type NoteSource struct {
	cache *cache[[]domain.Note]
}

// NewNoteSource creates a note source over the store.
func NewNoteSource(store driven.NoteStore) *NoteSource {
	return &NoteSource{
		cache: newCache(store.GetAll),
	}
}

// Name identifies the source in logs.
func (s *NoteSource) Name() string { return "note" }

// Invalidate busts the cache after notes changed.
func (s *NoteSource) Invalidate() {
	s.cache.Invalidate()
}

// Search returns notes whose title or body contains the query,
// case-insensitively.
func (s *NoteSource) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	if q.IsEmpty() {
		return nil, nil
	}

	notes, err := s.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	query := strings.ToLower(q.Text)
	var results []domain.SearchResult
	for i := range notes {
		n := &notes[i]
		if !strings.Contains(strings.ToLower(n.Title), query) &&
			!strings.Contains(strings.ToLower(n.Body), query) {
			continue
		}
		results = append(results, noteResult(n))
	}

	logger.Debug("note source: %d results", len(results))
	return results, nil
}

// noteResult converts a note into a SearchResult. The note id doubles as
// the path so lane deduplication has a stable key.
func noteResult(n *domain.Note) domain.SearchResult {
	title := n.Title
	if title == "" {
		title = firstLine(n.Body)
	}

	snippet := n.Body
	if len(snippet) > noteSnippetLen {
		snippet = snippet[:noteSnippetLen]
	}

	return domain.SearchResult{
		Source:         domain.SourceNote,
		DisplayName:    title,
		Path:           "note://" + n.ID,
		NormalizedPath: "note://" + strings.ToLower(n.ID),
		Description:    snippet,
	}
}

// firstLine returns the first non-empty line of s, or "Untitled".
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "Untitled"
}
