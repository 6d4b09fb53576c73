package domain

// UsageRecord tracks launch frequency and recency for a path.
// Updated optimistically on launch, persisted asynchronously; the
// aggregation pipeline only ever reads it.
type UsageRecord struct {
	// Path is the launched item's original path.
	Path string

	// LastUsed is the last launch time in epoch seconds.
	LastUsed int64

	// UseCount is the number of recorded launches.
	UseCount int
}

// UsageTable maps normalised paths to their usage records.
type UsageTable map[string]UsageRecord

// Lookup returns the record for a path, normalising before the lookup.
func (t UsageTable) Lookup(path string) (UsageRecord, bool) {
	rec, ok := t[NormalizePath(path)]
	return rec, ok
}
