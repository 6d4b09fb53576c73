package services

import (
	"sort"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// SplitLanes classifies ranked results into the horizontal icon strip
// and the vertical list.
//
// Horizontal: app results whose path ends in a launchable extension or a
// recognised launch URI scheme, plugins, and shell surrogate folders.
// Everything else is vertical.
//
// Horizontal deduplication additionally collapses by normalised path
// regardless of source, preferring the non-shortcut variant and the
// variant carrying an icon; the OS settings entry appears at most once,
// preferring a native app launch over a URI scheme. The vertical lane
// keeps one result per normalised path. Both lanes are re-sorted with
// the ranking comparator before exposure.
func SplitLanes(ranked []domain.RankedResult) (horizontal, vertical []domain.RankedResult) {
	settingsAt := -1

	seenVertical := make(map[string]bool)
	byPath := make(map[string]int)

	for i := range ranked {
		r := ranked[i]
		if !isHorizontal(&r) {
			if seenVertical[r.NormalizedPath] {
				continue
			}
			seenVertical[r.NormalizedPath] = true
			r.Lane = domain.LaneVertical
			vertical = append(vertical, r)
			continue
		}

		r.Lane = domain.LaneHorizontal

		if domain.IsSettingsEntry(r.NormalizedPath) {
			if settingsAt < 0 {
				settingsAt = len(horizontal)
				horizontal = append(horizontal, r)
			} else if preferSettings(&r, &horizontal[settingsAt]) {
				horizontal[settingsAt] = r
			}
			continue
		}

		at, seen := byPath[r.NormalizedPath]
		if !seen {
			byPath[r.NormalizedPath] = len(horizontal)
			horizontal = append(horizontal, r)
			continue
		}
		if preferHorizontal(&r, &horizontal[at]) {
			horizontal[at] = r
		}
	}

	sort.SliceStable(horizontal, func(i, j int) bool { return rankLess(&horizontal[i], &horizontal[j]) })
	sort.SliceStable(vertical, func(i, j int) bool { return rankLess(&vertical[i], &vertical[j]) })
	return horizontal, vertical
}

// isHorizontal reports whether the result belongs in the icon strip.
func isHorizontal(r *domain.RankedResult) bool {
	switch r.Source {
	case domain.SourcePlugin:
		return true
	case domain.SourceApp:
		return domain.HasLaunchSuffix(r.NormalizedPath) || domain.HasLaunchScheme(r.NormalizedPath)
	default:
		return domain.IsFolderSurrogate(r.NormalizedPath)
	}
}

// preferHorizontal reports whether candidate should replace incumbent in
// the horizontal lane: non-shortcut beats shortcut, then icon beats none.
func preferHorizontal(candidate, incumbent *domain.RankedResult) bool {
	if candidate.IsShortcut() != incumbent.IsShortcut() {
		return incumbent.IsShortcut()
	}
	return candidate.Icon != "" && incumbent.Icon == ""
}

// preferSettings reports whether candidate should replace incumbent as
// the single settings entry: a native app-launch reference wins over a
// URI-scheme reference.
func preferSettings(candidate, incumbent *domain.RankedResult) bool {
	candidateScheme := domain.HasLaunchScheme(candidate.NormalizedPath)
	incumbentScheme := domain.HasLaunchScheme(incumbent.NormalizedPath)
	if candidateScheme != incumbentScheme {
		return incumbentScheme
	}
	return candidate.Icon != "" && incumbent.Icon == ""
}
