package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Query is a normalised query string tagged with a generation token.
// A new Query invalidates all in-flight work tagged with an older token.
type Query struct {
	// Text is the trimmed query string.
	Text string

	// Generation is the monotonically increasing token for this attempt.
	Generation uint64

	// StartedAt is when this query attempt began.
	StartedAt time.Time
}

// NewQuery normalises raw input into a Query for the given generation.
func NewQuery(raw string, generation uint64) Query {
	return Query{
		Text:       strings.TrimSpace(raw),
		Generation: generation,
		StartedAt:  time.Now(),
	}
}

// IsEmpty reports whether the query has no text.
func (q Query) IsEmpty() bool {
	return q.Text == ""
}

// Length returns the query length in runes, not bytes, so CJK input
// gets the same debounce and session sizing as Latin input.
func (q Query) Length() int {
	return utf8.RuneCountInString(q.Text)
}

// DebounceFor returns the debounce window for a query of the given length.
// Short queries match huge result sets, so they wait slightly longer.
func DebounceFor(length int) time.Duration {
	switch {
	case length <= 2:
		return 320 * time.Millisecond
	case length <= 5:
		return 300 * time.Millisecond
	default:
		return 200 * time.Millisecond
	}
}

// ContainsCJK reports whether s contains any Han characters.
// Queries with CJK text skip the pinyin fallback since they can
// match the original name directly.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
