package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// Pattern detectors are pure functions over the raw query. They run on
// every raw input change, undebounced, since each is O(length).

var (
	urlPattern   = regexp.MustCompile(`(?i)\bhttps?://[^\s]+`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// DetectPatterns runs the URL, email, and JSON detectors over the raw
// input and returns one result per detected payload.
func DetectPatterns(raw string) []domain.SearchResult {
	var results []domain.SearchResult

	if url := urlPattern.FindString(raw); url != "" {
		results = append(results, domain.SearchResult{
			Source:         domain.SourceURLPattern,
			DisplayName:    url,
			Path:           url,
			NormalizedPath: strings.ToLower(url),
			Description:    "Open link",
		})
	}

	if email := emailPattern.FindString(raw); email != "" {
		results = append(results, domain.SearchResult{
			Source:         domain.SourceEmailPattern,
			DisplayName:    email,
			Path:           "mailto:" + email,
			NormalizedPath: "mailto:" + strings.ToLower(email),
			Description:    "Compose email",
		})
	}

	if payload, ok := detectJSON(raw); ok {
		results = append(results, domain.SearchResult{
			Source:         domain.SourceJSONPattern,
			DisplayName:    "Format JSON",
			Path:           payload,
			NormalizedPath: "json://payload",
			Description:    "Pretty-print the pasted JSON",
		})
	}

	return results
}

// detectJSON probes whether the trimmed input is a JSON object or array.
// Bare scalars are valid JSON but not worth offering a formatter for.
func detectJSON(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 2 {
		return "", false
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return "", false
	}
	if !json.Valid([]byte(trimmed)) {
		return "", false
	}
	return trimmed, true
}
