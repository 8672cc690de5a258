package domain

import (
	"fmt"
	"strings"
	"time"
)

// Namespace prefixes every calendar and event identifier produced by this
// driver so they cannot collide with the host's other calendar sources.
const Namespace = "google"

// Attendee roles and participation statuses use the host's
// iCalendar-style vocabulary.
const (
	// RoleRequired is the only role this driver assigns to attendees.
	RoleRequired = "REQ-PARTICIPANT"

	// StatusNeedsAction is the default participation status when the
	// provider reports none.
	StatusNeedsAction = "NEEDS-ACTION"

	// StatusConfirmed is the default event status when the provider
	// reports none.
	StatusConfirmed = "CONFIRMED"
)

// FlagReadOnly marks an event as non-editable in the host UI.
// Every event this driver produces carries it.
const FlagReadOnly = "readonly"

// Attendee is one participant of an event.
type Attendee struct {
	// Name is the display name, may be empty.
	Name string `json:"name,omitempty"`
	// Email is the attendee's address.
	Email string `json:"email"`
	// Role is always RoleRequired for this driver.
	Role string `json:"role"`
	// Status is the upper-cased participation status.
	Status string `json:"status"`
}

// Event is a calendar event in the host application's internal schema.
// It is derived from the provider representation on every fetch and is
// never cached.
type Event struct {
	// ID is the composite identifier "<namespace>:<calendarID>:<eventID>".
	ID string `json:"id"`
	// UID is the provider's persistent iCalendar UID, falling back to the
	// remote event id.
	UID string `json:"uid"`
	// Calendar is the namespaced calendar identifier this event belongs to.
	Calendar string `json:"calendar"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`

	// Start and End are timezone-aware instants. For all-day events they
	// carry a synthetic midnight UTC time-of-day.
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"all_day"`

	// Status is the upper-cased provider status, default StatusConfirmed.
	Status string `json:"status"`

	Attendees []Attendee `json:"attendees,omitempty"`

	// Alarms and Categories are not surfaced by this driver and stay empty.
	Alarms     []string `json:"alarms,omitempty"`
	Categories []string `json:"categories,omitempty"`

	// Flags always includes FlagReadOnly.
	Flags []string `json:"flags"`
}

// IsReadOnly reports whether the event carries the read-only flag.
func (e *Event) IsReadOnly() bool {
	for _, f := range e.Flags {
		if f == FlagReadOnly {
			return true
		}
	}
	return false
}

// FormatEventID builds the composite event identifier from the remote
// calendar id and remote event id. The result is reconstructible: parsing it
// with ParseEventID yields the inputs again.
func FormatEventID(calendarID, eventID string) string {
	return fmt.Sprintf("%s:%s:%s", Namespace, calendarID, eventID)
}

// ParseEventID splits a composite event identifier into its remote calendar
// id and remote event id. It fails when the id does not have exactly three
// colon-separated parts or belongs to another namespace.
func ParseEventID(id string) (calendarID, eventID string, err error) {
	parts := strings.Split(id, ":")
	if len(parts) != 3 {
		return "", "", fmt.Errorf("%w: event id %q", ErrInvalidInput, id)
	}
	if parts[0] != Namespace {
		return "", "", fmt.Errorf("%w: event id %q has namespace %q", ErrInvalidInput, id, parts[0])
	}
	return parts[1], parts[2], nil
}
