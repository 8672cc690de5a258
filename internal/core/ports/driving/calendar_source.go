package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

// CalendarSource is the contract this driver exposes to the host calendar
// application. It replaces the host's abstract driver base class with an
// explicit capability set: listing, read-only event access, rejected
// mutations, no-op alarms, and the three session actions.
type CalendarSource interface {
	// ListCalendars returns the user's calendars keyed by namespaced id.
	// Empty map when no authenticated session exists.
	ListCalendars(ctx context.Context) (map[string]domain.Calendar, error)

	// LoadEvents returns all events in [start, end] for the given
	// calendars, all known calendars when none are given. The optional
	// query is a free-text filter applied by the provider.
	LoadEvents(ctx context.Context, start, end time.Time, query string, calendarIDs []string) ([]domain.Event, error)

	// GetEvent fetches one event by composite id. Returns nil with no
	// error when the id is malformed or no session exists.
	GetEvent(ctx context.Context, id string) (*domain.Event, error)

	// CountEvents reports the number of events in the range. A zero end
	// defaults to start plus one day.
	CountEvents(ctx context.Context, calendarIDs []string, start, end time.Time) (int, error)

	// Mutations. All of these fail unconditionally with domain.ErrReadOnly:
	// the rejection is policy, not a fault.

	CreateEvent(ctx context.Context, event domain.Event) error
	EditEvent(ctx context.Context, event domain.Event) error
	MoveEvent(ctx context.Context, id string, start, end time.Time) error
	ResizeEvent(ctx context.Context, id string, end time.Time) error
	RemoveEvent(ctx context.Context, id string) error

	// Alarms are not surfaced by this driver.

	// PendingAlarms always returns an empty slice.
	PendingAlarms(ctx context.Context, before time.Time) ([]domain.Event, error)
	// DismissAlarm is a no-op.
	DismissAlarm(ctx context.Context, id string) error

	// Session actions.

	// AuthURL returns the provider consent URL, empty when the OAuth
	// client is not configured.
	AuthURL() string
	// HandleCallback exchanges an authorization code for a token and
	// returns the authenticated account's email address.
	HandleCallback(ctx context.Context, code string) (email string, err error)
	// Disconnect revokes stored tokens and disables the session.
	Disconnect(ctx context.Context) error
}
