package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// Ensure FolderSource implements the interface.
var _ Source = (*FolderSource)(nil)

// FolderSource searches the well-known system folder catalogue.
// The catalogue is loaded once and cached for the process lifetime.
type FolderSource struct {
	cache *cache[[]domain.FolderEntry]
}

// NewFolderSource creates a folder source over the index.
func NewFolderSource(index driven.FolderIndex) *FolderSource {
	return &FolderSource{
		cache: newCache(index.List),
	}
}

// Name identifies the source in logs.
func (s *FolderSource) Name() string { return "system-folder" }

// Search matches folders by substring on name, display name, and path.
// Queries without CJK characters additionally fall back to the pinyin
// keys, the same way the app source matches phonetic names.
func (s *FolderSource) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	if q.IsEmpty() {
		return nil, nil
	}

	entries, err := s.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load system folders: %w", err)
	}

	query := strings.ToLower(q.Text)
	tryPinyin := !domain.ContainsCJK(q.Text)

	var results []domain.SearchResult
	for i := range entries {
		if !folderMatches(query, &entries[i], tryPinyin) {
			continue
		}
		results = append(results, folderResult(entries[i]))
	}

	logger.Debug("folder source: %d results", len(results))
	return results, nil
}

// folderMatches reports whether the entry matches the lowercased query.
func folderMatches(query string, e *domain.FolderEntry, tryPinyin bool) bool {
	if strings.Contains(strings.ToLower(e.Name), query) ||
		strings.Contains(strings.ToLower(e.DisplayName), query) ||
		strings.Contains(domain.NormalizePath(e.Path), query) {
		return true
	}

	if !tryPinyin {
		return false
	}

	pinyin := strings.ToLower(e.Pinyin)
	initials := strings.ToLower(e.PinyinInitials)
	if pinyin != "" && (pinyin == query || strings.HasPrefix(pinyin, query) || strings.Contains(pinyin, query)) {
		return true
	}
	if initials != "" && (initials == query || strings.HasPrefix(initials, query) || strings.Contains(initials, query)) {
		return true
	}
	return false
}

// folderResult converts a folder entry into a SearchResult.
func folderResult(e domain.FolderEntry) domain.SearchResult {
	name := e.DisplayName
	if name == "" {
		name = e.Name
	}
	return domain.SearchResult{
		Source:         domain.SourceSystemFolder,
		DisplayName:    name,
		Path:           e.Path,
		NormalizedPath: domain.NormalizePath(e.Path),
		Icon:           e.Icon,
		Pinyin:         e.Pinyin,
		PinyinInitials: e.PinyinInitials,
		IsFolder:       true,
	}
}
