package services

import (
	"sort"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// sortBudget caps how many candidates get the full comparator treatment.
// Very broad queries (a single common letter) can pull thousands of index
// hits; the tail past the budget is appended unsorted.
const sortBudget = 1000

// Rank produces the single deterministic total order over the
// deduplicated set for a query and usage table. Running it twice on an
// unchanged input yields an identical order.
//
// The comparator evaluates top to bottom; the first non-tie wins:
//  1. Special shortcuts, in their stable relative order.
//  2. Plugins.
//  3. Within the index-service class, shortcuts before non-shortcuts.
//  4. A file-history entry outranks an index-service entry for the same
//     logical item.
//  5. Recency: known last-used beats unknown, more recent beats older.
//  6. Match-quality score, recomputed uniformly across all types.
//  7. Type priority: app, then history, then index service, then the rest.
//  8. Usage count.
//  9. Display name, then normalised path, as the final lexical tiebreak.
func Rank(query string, results []domain.SearchResult, usage domain.UsageTable) []domain.RankedResult {
	entries := make([]domain.RankedResult, 0, len(results))
	cheap := make([]domain.RankedResult, 0, 8)

	for i := range results {
		r := domain.RankedResult{
			SearchResult: results[i],
			Score:        domain.MatchScore(query, &results[i]),
		}
		if rec, ok := usage[r.NormalizedPath]; ok {
			if rec.LastUsed > r.LastUsed {
				r.LastUsed = rec.LastUsed
			}
			if rec.UseCount > r.UseCount {
				r.UseCount = rec.UseCount
			}
		}

		// Specials and plugins are always cheap and always kept; they
		// do not count against the sort budget.
		if r.Source == domain.SourceSpecial || r.Source == domain.SourcePlugin {
			cheap = append(cheap, r)
			continue
		}
		entries = append(entries, r)
	}

	var tail []domain.RankedResult
	if len(entries) > sortBudget {
		tail = entries[sortBudget:]
		entries = entries[:sortBudget]
	}

	sort.SliceStable(cheap, func(i, j int) bool { return rankLess(&cheap[i], &cheap[j]) })
	sort.SliceStable(entries, func(i, j int) bool { return rankLess(&entries[i], &entries[j]) })

	out := make([]domain.RankedResult, 0, len(cheap)+len(entries)+len(tail))
	out = append(out, cheap...)
	out = append(out, entries...)
	out = append(out, tail...)
	return out
}

// rankLess reports whether a sorts before b.
func rankLess(a, b *domain.RankedResult) bool {
	// 1. Special shortcuts first, in SpecialKind order.
	if (a.Source == domain.SourceSpecial) != (b.Source == domain.SourceSpecial) {
		return a.Source == domain.SourceSpecial
	}
	if a.Source == domain.SourceSpecial {
		return a.Special < b.Special
	}

	// 2. Plugins immediately after specials.
	if (a.Source == domain.SourcePlugin) != (b.Source == domain.SourcePlugin) {
		return a.Source == domain.SourcePlugin
	}

	// 3. Index-service shortcuts before index-service non-shortcuts.
	if a.Source == domain.SourceIndexService && b.Source == domain.SourceIndexService {
		if a.IsShortcut() != b.IsShortcut() {
			return a.IsShortcut()
		}
	}

	// 4. History beats index service for the same logical item.
	if sameLogicalItem(a, b) {
		if a.Source == domain.SourceFileHistory && b.Source == domain.SourceIndexService {
			return true
		}
		if a.Source == domain.SourceIndexService && b.Source == domain.SourceFileHistory {
			return false
		}
	}

	// 5. Recency.
	switch {
	case a.LastUsed > 0 && b.LastUsed > 0:
		if a.LastUsed != b.LastUsed {
			return a.LastUsed > b.LastUsed
		}
	case a.LastUsed > 0:
		return true
	case b.LastUsed > 0:
		return false
	}

	// 6. Match quality.
	if a.Score != b.Score {
		return a.Score > b.Score
	}

	// 7. Type priority.
	if pa, pb := typePriority(a.Source), typePriority(b.Source); pa != pb {
		return pa > pb
	}

	// 8. Usage count.
	if a.UseCount != b.UseCount {
		return a.UseCount > b.UseCount
	}

	// 9. Lexical tiebreaks.
	if a.DisplayName != b.DisplayName {
		return a.DisplayName < b.DisplayName
	}
	return a.NormalizedPath < b.NormalizedPath
}

// sameLogicalItem reports whether two results plausibly reference the
// same launchable thing despite coming from different sources.
func sameLogicalItem(a, b *domain.RankedResult) bool {
	if a.NormalizedPath == b.NormalizedPath {
		return true
	}
	return domain.NormalizeDisplayName(a.DisplayName) == domain.NormalizeDisplayName(b.DisplayName)
}

// typePriority orders result classes for step 7.
func typePriority(s domain.ResultSource) int {
	switch s {
	case domain.SourceApp:
		return 4
	case domain.SourceFileHistory:
		return 3
	case domain.SourceIndexService:
		return 2
	default:
		return 1
	}
}
