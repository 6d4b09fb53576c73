package services

import (
	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// Aggregate reconciles the unordered union of all sources' results for
// one generation into a deduplicated set. The same file may arrive from
// three sources with different capitalisation or separators; all
// comparisons happen on normalised paths and display names.
//
// Precedence of the rules, mirroring the acceptance order:
//  1. Specials and plugins are always kept.
//  2. App results are accepted next; same-name app entries collapse,
//     preferring the .exe over the .lnk, then the icon-bearing variant.
//  3. File-history, folder, and note results are accepted unless their
//     stripped display name collides with an accepted app's.
//  4. Index-service results are accepted last: dropped on path match
//     with history or app results, on display-name match with apps, and
//     on shortcut/executable correlation with anything already accepted.
func Aggregate(results []domain.SearchResult) []domain.SearchResult {
	var (
		specials []domain.SearchResult
		plugins  []domain.SearchResult
		apps     []domain.SearchResult
		local    []domain.SearchResult // history, folders, notes, patterns
		index    []domain.SearchResult
	)

	for i := range results {
		r := results[i]
		if r.NormalizedPath == "" {
			r.NormalizedPath = domain.NormalizePath(r.Path)
		}
		if r.DisplayName == "" {
			r.DisplayName = r.Path
		}

		switch r.Source {
		case domain.SourceSpecial:
			specials = append(specials, r)
		case domain.SourcePlugin:
			plugins = append(plugins, r)
		case domain.SourceApp:
			apps = append(apps, r)
		case domain.SourceIndexService:
			index = append(index, r)
		default:
			local = append(local, r)
		}
	}

	apps = collapseApps(apps)

	appNames := make(map[string]bool, len(apps))
	acceptedPaths := make(map[string]bool, len(apps)+len(local))
	for i := range apps {
		appNames[domain.NormalizeDisplayName(apps[i].DisplayName)] = true
		acceptedPaths[apps[i].NormalizedPath] = true
	}

	accepted := make([]domain.SearchResult, 0, len(results))
	accepted = append(accepted, specials...)
	accepted = append(accepted, plugins...)
	accepted = append(accepted, apps...)

	for i := range local {
		r := local[i]
		if acceptedPaths[r.NormalizedPath] {
			continue
		}
		if appNames[domain.NormalizeDisplayName(r.DisplayName)] {
			// A shortcut whose target app is already listed, or a
			// document sharing a program's name.
			continue
		}
		acceptedPaths[r.NormalizedPath] = true
		accepted = append(accepted, r)
	}

	dropped := 0
	for i := range index {
		r := index[i]
		if acceptedPaths[r.NormalizedPath] {
			dropped++
			continue
		}
		if appNames[domain.NormalizeDisplayName(r.DisplayName)] {
			dropped++
			continue
		}
		if correlatedWithAccepted(&r, accepted) {
			dropped++
			continue
		}
		acceptedPaths[r.NormalizedPath] = true
		accepted = append(accepted, r)
	}

	if dropped > 0 {
		logger.Debug("aggregate: dropped %d index-service duplicates", dropped)
	}
	return accepted
}

// correlatedWithAccepted applies the shortcut/executable correlation
// heuristic between an index-service candidate and the accepted set.
// The index-service side always loses: it is the lowest-priority class,
// so whichever of the pair came from it is the one suppressed.
func correlatedWithAccepted(r *domain.SearchResult, accepted []domain.SearchResult) bool {
	for i := range accepted {
		a := &accepted[i]
		switch a.Source {
		case domain.SourceApp, domain.SourceFileHistory:
		default:
			continue
		}
		if r.IsShortcut() && Correlated(r, a) {
			return true
		}
		if r.IsExecutable() && Correlated(a, r) {
			return true
		}
	}
	return false
}

// collapseApps merges app entries that normalise to the same display
// name, preferring the .exe entry over the .lnk entry; within the same
// suffix class the variant carrying a resolved icon wins.
func collapseApps(apps []domain.SearchResult) []domain.SearchResult {
	if len(apps) <= 1 {
		return dedupByPath(apps)
	}

	byName := make(map[string]int, len(apps))
	out := make([]domain.SearchResult, 0, len(apps))

	for i := range apps {
		name := domain.NormalizeDisplayName(apps[i].DisplayName)
		at, seen := byName[name]
		if !seen {
			byName[name] = len(out)
			out = append(out, apps[i])
			continue
		}
		if preferApp(&apps[i], &out[at]) {
			out[at] = apps[i]
		}
	}

	return dedupByPath(out)
}

// preferApp reports whether candidate should replace incumbent under the
// app-lane preference rules.
func preferApp(candidate, incumbent *domain.SearchResult) bool {
	if candidate.IsExecutable() && incumbent.IsShortcut() {
		return true
	}
	if candidate.IsShortcut() && incumbent.IsExecutable() {
		return false
	}
	return candidate.Icon != "" && incumbent.Icon == ""
}

// dedupByPath keeps the first entry per normalised path.
func dedupByPath(results []domain.SearchResult) []domain.SearchResult {
	seen := make(map[string]bool, len(results))
	out := results[:0]
	for i := range results {
		if seen[results[i].NormalizedPath] {
			continue
		}
		seen[results[i].NormalizedPath] = true
		out = append(out, results[i])
	}
	return out
}
