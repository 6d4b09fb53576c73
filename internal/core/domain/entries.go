package domain

// Entry types produced by the external collaborators in §6 of the design.
// Sources convert these into SearchResults; nothing downstream of the
// adapters sees them.

// AppEntry is an installed application discovered by the app index.
type AppEntry struct {
	// Name is the application display name.
	Name string
	// Path is the executable or shortcut path.
	Path string
	// Icon is an opaque icon reference, if one was resolved.
	Icon string
	// Pinyin is the phonetic key for non-Latin names.
	Pinyin string
	// PinyinInitials is the initial-letter phonetic key.
	PinyinInitials string
}

// FileEntry is a previously opened file or folder from the history store.
type FileEntry struct {
	// Path is the original path.
	Path string
	// Name is the base name shown to the user.
	Name string
	// LastUsed is the last open time in epoch seconds.
	LastUsed int64
	// UseCount is the number of recorded opens.
	UseCount int
	// IsFolder marks directories.
	IsFolder bool
}

// FolderEntry is a well-known system folder or shell surrogate.
type FolderEntry struct {
	// Name is the canonical folder name.
	Name string
	// DisplayName is the localised name shown to the user.
	DisplayName string
	// Path is the folder path or surrogate identifier.
	Path string
	// Icon is an opaque icon reference.
	Icon string
	// Pinyin is the phonetic key for non-Latin display names.
	Pinyin string
	// PinyinInitials is the initial-letter phonetic key.
	PinyinInitials string
}

// Note is a stored note searched by title and body.
type Note struct {
	// ID is the note identifier.
	ID string
	// Title is the note title.
	Title string
	// Body is the note content.
	Body string
}

// PluginDescriptor describes an installed plugin.
type PluginDescriptor struct {
	// ID is the plugin identifier.
	ID string
	// Name is the plugin display name.
	Name string
	// Description is the short plugin description.
	Description string
	// Icon is an opaque icon reference.
	Icon string
}

// IndexItem is a single hit returned by the external index service.
type IndexItem struct {
	// Name is the file name.
	Name string
	// Path is the full path on disk.
	Path string
	// IsFolder marks directories.
	IsFolder bool
}
