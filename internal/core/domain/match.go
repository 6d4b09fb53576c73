package domain

import "strings"

// Match-quality scores. One table shared by the app and file-history
// sources and recomputed uniformly by the ranker, so heterogeneous
// results compare on the same scale.
const (
	// ScoreNameExact is an exact display-name match.
	ScoreNameExact = 1000
	// ScorePinyinExact is an exact pinyin match.
	ScorePinyinExact = 800
	// ScoreInitialsExact is an exact pinyin-initials match.
	ScoreInitialsExact = 600
	// ScoreNamePrefix is a display-name prefix match.
	ScoreNamePrefix = 500
	// ScorePinyinPrefix is a pinyin prefix match.
	ScorePinyinPrefix = 400
	// ScoreInitialsPrefix is a pinyin-initials prefix match.
	ScoreInitialsPrefix = 300
	// ScorePinyinSubstring is a pinyin substring match.
	ScorePinyinSubstring = 150
	// ScoreInitialsSubstring is a pinyin-initials substring match.
	ScoreInitialsSubstring = 120
	// ScoreNameSubstring is a display-name substring match.
	ScoreNameSubstring = 100
	// ScorePathSubstring is a path substring match, only consulted when
	// every name key scored zero.
	ScorePathSubstring = 10
)

// MatchScore computes the match quality of query against a result, using
// the display name, pinyin keys, and path. Case-insensitive; the best
// applicable rule wins. Returns 0 for no match.
func MatchScore(query string, r *SearchResult) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	score := nameKeyScore(q,
		strings.ToLower(r.DisplayName),
		strings.ToLower(r.Pinyin),
		strings.ToLower(r.PinyinInitials))
	if score > 0 {
		return score
	}

	if r.NormalizedPath != "" && strings.Contains(r.NormalizedPath, q) {
		return ScorePathSubstring
	}
	return 0
}

// nameKeyScore scores q against the lowercased name keys and returns the
// highest applicable tier. The path rule is deliberately not part of this:
// callers only fall back to the path when all name keys score zero.
func nameKeyScore(q, name, pinyin, initials string) int {
	best := 0

	switch {
	case name == q:
		best = ScoreNameExact
	case strings.HasPrefix(name, q):
		best = ScoreNamePrefix
	case strings.Contains(name, q):
		best = ScoreNameSubstring
	}

	if pinyin != "" {
		switch {
		case pinyin == q:
			best = max(best, ScorePinyinExact)
		case strings.HasPrefix(pinyin, q):
			best = max(best, ScorePinyinPrefix)
		case strings.Contains(pinyin, q):
			best = max(best, ScorePinyinSubstring)
		}
	}

	if initials != "" {
		switch {
		case initials == q:
			best = max(best, ScoreInitialsExact)
		case strings.HasPrefix(initials, q):
			best = max(best, ScoreInitialsPrefix)
		case strings.Contains(initials, q):
			best = max(best, ScoreInitialsSubstring)
		}
	}

	return best
}
