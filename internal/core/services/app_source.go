package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// Ensure AppSource implements the interface.
var _ Source = (*AppSource)(nil)

// appResultCap bounds how many app results one pass contributes.
const appResultCap = 20

// exactMatchBudget stops the scan once this many exact name matches
// have accumulated, bounding cost over catalogues of thousands of apps.
const exactMatchBudget = 3

// AppSource searches the installed-application catalogue.
// The catalogue is read through a local cache that the index's watcher
// invalidates after installs, uninstalls, or rescans.
type AppSource struct {
	index     driven.AppIndex
	cache     *cache[[]domain.AppEntry]
	done      chan struct{}
	closeOnce sync.Once
}

// NewAppSource creates an app source over the index.
func NewAppSource(index driven.AppIndex) *AppSource {
	s := &AppSource{
		index: index,
		cache: newCache(index.Scan),
		done:  make(chan struct{}),
	}

	if ch := index.Invalidated(); ch != nil {
		go s.watch(ch)
	}
	return s
}

// watch invalidates the cache whenever the index signals a change.
func (s *AppSource) watch(ch <-chan struct{}) {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
			logger.Debug("app source: catalogue changed, invalidating cache")
			s.cache.Invalidate()
		case <-s.done:
			return
		}
	}
}

// Name identifies the source in logs.
func (s *AppSource) Name() string { return "app" }

// Rescan rebuilds the catalogue and busts the cache.
func (s *AppSource) Rescan(ctx context.Context) error {
	if err := s.index.Rescan(ctx); err != nil {
		return fmt.Errorf("rescan app index: %w", err)
	}
	s.cache.Invalidate()
	return nil
}

// Close stops the invalidation watcher. Safe to call more than once.
func (s *AppSource) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

// scoredApp pairs an entry with its adapter-local score.
type scoredApp struct {
	entry domain.AppEntry
	score int
}

// Search scores the catalogue against the query. The scan early-exits
// once enough exact matches are found: for queries of three characters
// or fewer a single exact hit suffices, and three accumulated exact hits
// always do.
func (s *AppSource) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	if q.IsEmpty() {
		return nil, nil
	}

	entries, err := s.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load app catalogue: %w", err)
	}

	query := strings.ToLower(q.Text)
	scored := make([]scoredApp, 0, appResultCap)
	exactHits := 0

	for i := range entries {
		score := scoreApp(query, &entries[i])
		if score == 0 {
			continue
		}
		scored = append(scored, scoredApp{entry: entries[i], score: score})

		if score == domain.ScoreNameExact {
			exactHits++
			if exactHits >= exactMatchBudget {
				break
			}
			if q.Length() <= 3 && exactHits >= 1 {
				break
			}
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].entry.Name < scored[j].entry.Name
	})

	if len(scored) > appResultCap {
		scored = scored[:appResultCap]
	}

	results := make([]domain.SearchResult, 0, len(scored))
	for _, sc := range scored {
		results = append(results, appResult(sc.entry))
	}

	logger.Debug("app source: %d results (exact hits: %d)", len(results), exactHits)
	return results, nil
}

// scoreApp scores one catalogue entry. The path rule only applies when
// every name key scored zero.
func scoreApp(query string, e *domain.AppEntry) int {
	res := domain.SearchResult{
		DisplayName:    e.Name,
		Pinyin:         e.Pinyin,
		PinyinInitials: e.PinyinInitials,
		NormalizedPath: domain.NormalizePath(e.Path),
	}
	return domain.MatchScore(query, &res)
}

// appResult converts a catalogue entry into a SearchResult.
func appResult(e domain.AppEntry) domain.SearchResult {
	return domain.SearchResult{
		Source:         domain.SourceApp,
		DisplayName:    e.Name,
		Path:           e.Path,
		NormalizedPath: domain.NormalizePath(e.Path),
		Icon:           e.Icon,
		Pinyin:         e.Pinyin,
		PinyinInitials: e.PinyinInitials,
	}
}
