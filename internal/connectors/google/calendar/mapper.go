package calendar

import (
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

// dateOnlyLayout is the provider's format for all-day event boundaries.
const dateOnlyLayout = "2006-01-02"

// MapEvent converts one Google Calendar event into the host's internal
// event schema. It is a pure translation: malformed provider fields
// degrade to zero values, never to an error.
func MapEvent(raw *calendar.Event, calendarID string) domain.Event {
	event := domain.Event{
		ID:          domain.FormatEventID(calendarID, raw.Id),
		UID:         raw.Id,
		Calendar:    domain.CalendarID(calendarID),
		Title:       raw.Summary,
		Description: raw.Description,
		Location:    raw.Location,
		Status:      domain.StatusConfirmed,
		Flags:       []string{domain.FlagReadOnly},
	}

	// ICalUID is stable across recurring instances and calendar moves.
	if raw.ICalUID != "" {
		event.UID = raw.ICalUID
	}

	if raw.Status != "" {
		event.Status = strings.ToUpper(raw.Status)
	}

	// A date-only start means an all-day event.
	event.AllDay = raw.Start != nil && raw.Start.Date != ""
	event.Start = mapEventTime(raw.Start)
	event.End = mapEventTime(raw.End)

	for _, a := range raw.Attendees {
		event.Attendees = append(event.Attendees, mapAttendee(a))
	}

	return event
}

// mapEventTime resolves an event boundary to an instant. The date-time
// field wins; a date-only value gets a synthetic midnight UTC time-of-day.
func mapEventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}

	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}
		}
		return t
	}

	if edt.Date != "" {
		t, err := time.Parse(dateOnlyLayout, edt.Date)
		if err != nil {
			return time.Time{}
		}
		return t
	}

	return time.Time{}
}

// mapAttendee converts one provider attendee. The role is fixed: the
// provider does not model iCalendar roles and the host expects one.
func mapAttendee(a *calendar.EventAttendee) domain.Attendee {
	return domain.Attendee{
		Name:   a.DisplayName,
		Email:  a.Email,
		Role:   domain.RoleRequired,
		Status: mapResponseStatus(a.ResponseStatus),
	}
}

// mapResponseStatus translates the provider's camel-case response status
// into the iCalendar participation status the host schema uses.
func mapResponseStatus(status string) string {
	switch status {
	case "accepted":
		return "ACCEPTED"
	case "declined":
		return "DECLINED"
	case "tentative":
		return "TENTATIVE"
	case "", "needsAction":
		return domain.StatusNeedsAction
	default:
		return strings.ToUpper(status)
	}
}
