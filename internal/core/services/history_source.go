package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// Ensure HistorySource implements the interface.
var _ Source = (*HistorySource)(nil)

// historyResultCap bounds how many history results one pass contributes.
const historyResultCap = 100

// HistorySource searches previously opened files and folders.
type HistorySource struct {
	cache *cache[[]domain.FileEntry]
}

// NewHistorySource creates a history source over the store.
func NewHistorySource(store driven.FileHistoryStore) *HistorySource {
	return &HistorySource{
		cache: newCache(store.GetAll),
	}
}

// Name identifies the source in logs.
func (s *HistorySource) Name() string { return "file-history" }

// Invalidate busts the cache after the history changed (open recorded,
// entry deleted).
func (s *HistorySource) Invalidate() {
	s.cache.Invalidate()
}

// scoredFile pairs an entry with its adapter-local score.
type scoredFile struct {
	entry domain.FileEntry
	score int
}

// Search scores history entries against the query. An empty query
// returns the most recently used entries unscored.
func (s *HistorySource) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	entries, err := s.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load file history: %w", err)
	}

	if q.IsEmpty() {
		return s.recent(entries), nil
	}

	query := strings.ToLower(q.Text)
	scored := make([]scoredFile, 0)

	for i := range entries {
		score := scoreFile(query, &entries[i])
		if score == 0 {
			continue
		}
		scored = append(scored, scoredFile{entry: entries[i], score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].entry.LastUsed > scored[j].entry.LastUsed
	})

	if len(scored) > historyResultCap {
		scored = scored[:historyResultCap]
	}

	results := make([]domain.SearchResult, 0, len(scored))
	for _, sc := range scored {
		results = append(results, fileResult(sc.entry))
	}

	logger.Debug("history source: %d results", len(results))
	return results, nil
}

// recent returns the most recently used entries, newest first.
func (s *HistorySource) recent(entries []domain.FileEntry) []domain.SearchResult {
	sorted := make([]domain.FileEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastUsed > sorted[j].LastUsed
	})

	if len(sorted) > historyResultCap {
		sorted = sorted[:historyResultCap]
	}

	results := make([]domain.SearchResult, 0, len(sorted))
	for _, e := range sorted {
		results = append(results, fileResult(e))
	}
	return results
}

// scoreFile applies the history score tiers: exact name, name prefix,
// name substring, then path substring only when the name scored zero.
func scoreFile(query string, e *domain.FileEntry) int {
	name := strings.ToLower(e.Name)
	switch {
	case name == query:
		return domain.ScoreNameExact
	case strings.HasPrefix(name, query):
		return domain.ScoreNamePrefix
	case strings.Contains(name, query):
		return domain.ScoreNameSubstring
	}

	if strings.Contains(domain.NormalizePath(e.Path), query) {
		return domain.ScorePathSubstring
	}
	return 0
}

// fileResult converts a history entry into a SearchResult.
func fileResult(e domain.FileEntry) domain.SearchResult {
	name := e.Name
	if name == "" {
		name = e.Path
	}
	return domain.SearchResult{
		Source:         domain.SourceFileHistory,
		DisplayName:    name,
		Path:           e.Path,
		NormalizedPath: domain.NormalizePath(e.Path),
		LastUsed:       e.LastUsed,
		UseCount:       e.UseCount,
		IsFolder:       e.IsFolder,
	}
}
