package driven

// ConfigStore provides typed access to application configuration.
// The driver reads the OAuth client credentials and calendar preferences
// through this interface; the host decides where the values live.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice configuration value.
	// Returns nil if key doesn't exist or isn't a slice.
	GetStringSlice(key string) []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error
}

// Configuration keys the driver reads.
const (
	// ConfigClientID is the OAuth client id from the Google developer console.
	ConfigClientID = "oauth.client_id"
	// ConfigClientSecret is the OAuth client secret.
	ConfigClientSecret = "oauth.client_secret"
	// ConfigPageSize bounds the events page size per API request.
	ConfigPageSize = "calendar.page_size"
	// ConfigSelectedCalendars is the user's selected-calendars preference.
	// Absent means all calendars are active.
	ConfigSelectedCalendars = "calendar.selected"
)
