package domain

import (
	"path"
	"strings"
)

// ResultSource identifies which source produced a SearchResult.
type ResultSource string

const (
	// SourceApp is an installed application from the app index.
	SourceApp ResultSource = "app"
	// SourceFileHistory is a previously opened file or folder.
	SourceFileHistory ResultSource = "file-history"
	// SourceIndexService is a hit from the external full-volume index service.
	SourceIndexService ResultSource = "index-service"
	// SourceSystemFolder is a well-known system folder or surrogate entry.
	SourceSystemFolder ResultSource = "system-folder"
	// SourceNote is a stored note matched by title or body.
	SourceNote ResultSource = "note"
	// SourcePlugin is an installed plugin from the registry.
	SourcePlugin ResultSource = "plugin"
	// SourceURLPattern is a URL detected in the raw query.
	SourceURLPattern ResultSource = "url-pattern"
	// SourceEmailPattern is an email address detected in the raw query.
	SourceEmailPattern ResultSource = "email-pattern"
	// SourceJSONPattern is a valid JSON payload detected in the raw query.
	SourceJSONPattern ResultSource = "json-pattern"
	// SourceSpecial is a built-in shortcut (AI answer, history, settings).
	SourceSpecial ResultSource = "special"
)

// SpecialKind distinguishes the built-in shortcut results.
// The ordinal fixes their stable relative order at the top of the ranking.
type SpecialKind int

const (
	// SpecialNone marks a result that is not a special shortcut.
	SpecialNone SpecialKind = iota
	// SpecialAIAnswer offers the query to the AI answer surface.
	SpecialAIAnswer
	// SpecialHistory jumps to the launch-history view.
	SpecialHistory
	// SpecialSettings opens the launcher settings.
	SpecialSettings
)

// SearchResult represents a single launchable item.
// It is a tagged union over ResultSource: the common fields are always set,
// the remaining fields are populated per source.
type SearchResult struct {
	// Source identifies the producing source.
	Source ResultSource

	// DisplayName is the human-readable name. Never empty.
	DisplayName string

	// Path is the original path, URI, or payload.
	Path string

	// NormalizedPath is Path lowercased with separators unified.
	// Unique within one emitted lane.
	NormalizedPath string

	// Icon is an opaque icon reference resolved by the presentation layer.
	Icon string

	// Pinyin is the phonetic key for non-Latin display names.
	Pinyin string

	// PinyinInitials is the initial-letter phonetic key.
	PinyinInitials string

	// LastUsed is the last launch time in epoch seconds. Zero if never used.
	LastUsed int64

	// UseCount is how many times this item has been launched.
	UseCount int

	// IsFolder marks directory entries from the file history.
	IsFolder bool

	// Description carries plugin descriptions and note body snippets.
	Description string

	// Special is the shortcut kind for SourceSpecial results.
	Special SpecialKind
}

// IsSpecial reports whether the result is a built-in shortcut.
func (r *SearchResult) IsSpecial() bool {
	return r.Source == SourceSpecial
}

// IsShortcut reports whether the result points at a shortcut file.
func (r *SearchResult) IsShortcut() bool {
	return strings.HasSuffix(r.NormalizedPath, ".lnk")
}

// IsExecutable reports whether the result points at an executable file.
func (r *SearchResult) IsExecutable() bool {
	return strings.HasSuffix(r.NormalizedPath, ".exe")
}

// Lane is one of the two independent result groupings.
type Lane int

const (
	// LaneVertical is the main list: files, folders, notes, patterns.
	LaneVertical Lane = iota
	// LaneHorizontal is the icon strip: launchable apps and plugins.
	LaneHorizontal
)

// String returns the lane name for logging.
func (l Lane) String() string {
	if l == LaneHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// RankedResult is a SearchResult with its computed score and lane.
// Ranked results are derived fresh on every aggregation pass, never persisted.
type RankedResult struct {
	SearchResult

	// Score is the match-quality score used as a ranking signal.
	Score int

	// Lane is the grouping the splitter assigned.
	Lane Lane
}

// SearchStatus describes the external-source state carried on snapshots.
type SearchStatus struct {
	// IsSearchingExternal is true while a session create or page fetch is in flight.
	IsSearchingExternal bool

	// ExternalTotalCount is the total hit count the session reported, if any.
	ExternalTotalCount int

	// ExternalAvailable is false when the index service is not installed or not running.
	ExternalAvailable bool
}

// NormalizePath lowercases p and unifies backslashes to forward slashes.
// All path comparisons in the aggregator happen on normalised paths.
func NormalizePath(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, `\`, "/"))
}

// BaseName returns the last path element, accepting either separator.
// Case is preserved.
func BaseName(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if i := strings.LastIndex(strings.TrimRight(p, "/"), "/"); i >= 0 {
		return strings.TrimRight(p, "/")[i+1:]
	}
	return p
}

// launchSuffixes are extensions stripped when comparing display names, so a
// shortcut and its target executable normalise to the same name.
var launchSuffixes = []string{".lnk", ".exe", ".url", ".appref-ms", ".msc", ".bat", ".cmd"}

// NormalizeDisplayName lowercases name and strips a trailing launch suffix.
func NormalizeDisplayName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range launchSuffixes {
		if strings.HasSuffix(n, suffix) {
			return strings.TrimSuffix(n, suffix)
		}
	}
	return n
}

// HasLaunchSuffix reports whether the normalised path ends in an extension
// the launcher can execute directly.
func HasLaunchSuffix(normalizedPath string) bool {
	ext := path.Ext(normalizedPath)
	for _, suffix := range launchSuffixes {
		if ext == suffix {
			return true
		}
	}
	return false
}

// launchSchemes are URI schemes treated as directly launchable.
var launchSchemes = []string{"ms-settings:", "shell:", "calculator:"}

// HasLaunchScheme reports whether the normalised path starts with a
// recognised launch URI scheme.
func HasLaunchScheme(normalizedPath string) bool {
	for _, scheme := range launchSchemes {
		if strings.HasPrefix(normalizedPath, scheme) {
			return true
		}
	}
	return false
}

// recycleBinCLSID is the shell surrogate path for the recycle bin.
const recycleBinCLSID = "::{645ff040-5081-101b-9f08-00aa002f954e}"

// IsFolderSurrogate reports whether the normalised path is a shell surrogate
// entry that belongs in the horizontal lane despite not being executable.
func IsFolderSurrogate(normalizedPath string) bool {
	return strings.Contains(normalizedPath, recycleBinCLSID)
}

// IsSettingsEntry reports whether the result references the OS settings app,
// by either the ms-settings URI or the native settings executable.
func IsSettingsEntry(normalizedPath string) bool {
	return strings.HasPrefix(normalizedPath, "ms-settings:") ||
		strings.HasSuffix(normalizedPath, "/systemsettings.exe")
}
