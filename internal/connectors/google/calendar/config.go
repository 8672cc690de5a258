package calendar

import (
	"github.com/custodia-labs/gcal-driver/internal/core/ports/driven"
)

// Config holds the calendar driver's fetch configuration.
type Config struct {
	// PageSize is the page size for events list requests.
	PageSize int64
	// Selected is the user's selected-calendars preference, as namespaced
	// calendar ids. Nil means no preference: all calendars are active.
	Selected []string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PageSize: 250,
	}
}

// ConfigFromStore extracts configuration from the host's config store.
func ConfigFromStore(store driven.ConfigStore) *Config {
	cfg := DefaultConfig()
	if store == nil {
		return cfg
	}

	if n := store.GetInt(driven.ConfigPageSize); n > 0 {
		cfg.PageSize = int64(n)
	}

	if _, ok := store.Get(driven.ConfigSelectedCalendars); ok {
		// An empty preference list is still a preference: no calendar active.
		cfg.Selected = store.GetStringSlice(driven.ConfigSelectedCalendars)
		if cfg.Selected == nil {
			cfg.Selected = []string{}
		}
	}

	return cfg
}
