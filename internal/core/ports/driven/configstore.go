package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation, e.g. "split.prefix".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetBool retrieves a boolean configuration value and whether it was set.
	GetBool(key string) (value, ok bool)

	// Set stores a configuration value and persists it.
	Set(key string, value any) error

	// Path returns the configuration file path, or empty for in-memory stores.
	Path() string
}
