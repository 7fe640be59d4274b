package driven

// ConfigStore provides application configuration access.
// Backed by a TOML file in the docdex config directory.
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" when unset.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when unset.
	GetInt(key string) int

	// GetFloat retrieves a float value, or 0 when unset.
	GetFloat(key string) float64

	// GetBool retrieves a boolean value, or false when unset.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value, or nil when unset.
	GetStringSlice(key string) []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error
}
