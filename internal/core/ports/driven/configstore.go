package driven

// ConfigStore provides read access to launcher configuration. The
// backing file is edited by hand; the launcher never writes it, so the
// surface is lookup-only plus an explicit reload.
type ConfigStore interface {
	// Get retrieves a configuration value by dot-notation key.
	// Returns the value and whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value.
	// Returns empty string if the key is missing or not a string.
	GetString(key string) string

	// GetInt retrieves an integer value.
	// Returns 0 if the key is missing or not an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean value.
	// Returns false if the key is missing or not a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value.
	// Returns nil if the key is missing or not a slice.
	GetStringSlice(key string) []string

	// Load re-reads configuration from storage.
	Load() error

	// Path returns the configuration file path, for log messages.
	Path() string
}
