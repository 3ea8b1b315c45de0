package driven

// ConfigStore is the persisted key/value configuration file.
// Keys use dot notation mirroring the file's tables, e.g. "meilisearch.url".
type ConfigStore interface {
	// Get retrieves a raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns "" when the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when the key is missing or not an integer.
	GetInt(key string) int

	// GetFloat accepts integers and floats; returns 0 otherwise.
	GetFloat(key string) float64

	// GetStringSlice returns nil when the key is missing or not a list.
	GetStringSlice(key string) []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Load re-reads the file.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
