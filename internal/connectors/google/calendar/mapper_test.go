package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

func TestMapEvent_TimedEvent(t *testing.T) {
	raw := &gcal.Event{
		Id:          "ev1",
		ICalUID:     "ev1@google.com",
		Summary:     "Design review",
		Description: "Quarterly review",
		Location:    "Room 4",
		Status:      "confirmed",
		Start:       &gcal.EventDateTime{DateTime: "2026-03-02T09:00:00+01:00"},
		End:         &gcal.EventDateTime{DateTime: "2026-03-02T10:00:00+01:00"},
		Attendees: []*gcal.EventAttendee{
			{DisplayName: "Alice", Email: "alice@example.com", ResponseStatus: "accepted"},
			{Email: "bob@example.com", ResponseStatus: "needsAction"},
		},
	}

	event := MapEvent(raw, "work@example.com")

	assert.Equal(t, "google:work@example.com:ev1", event.ID)
	assert.Equal(t, "ev1@google.com", event.UID)
	assert.Equal(t, "google:work@example.com", event.Calendar)
	assert.Equal(t, "Design review", event.Title)
	assert.Equal(t, "Quarterly review", event.Description)
	assert.Equal(t, "Room 4", event.Location)
	assert.Equal(t, "CONFIRMED", event.Status)
	assert.False(t, event.AllDay)

	want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.FixedZone("", 3600))
	assert.True(t, event.Start.Equal(want))
	assert.True(t, event.End.Equal(want.Add(time.Hour)))

	require.Len(t, event.Attendees, 2)
	assert.Equal(t, "Alice", event.Attendees[0].Name)
	assert.Equal(t, "ACCEPTED", event.Attendees[0].Status)
	assert.Equal(t, domain.RoleRequired, event.Attendees[0].Role)
	assert.Equal(t, domain.StatusNeedsAction, event.Attendees[1].Status)

	assert.Equal(t, []string{domain.FlagReadOnly}, event.Flags)
}

func TestMapEvent_AllDayEvent(t *testing.T) {
	raw := &gcal.Event{
		Id:      "ev2",
		Summary: "Conference",
		Start:   &gcal.EventDateTime{Date: "2026-03-02"},
		End:     &gcal.EventDateTime{Date: "2026-03-04"},
	}

	event := MapEvent(raw, "work@example.com")

	assert.True(t, event.AllDay)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), event.Start)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), event.End)
}

func TestMapEvent_Defaults(t *testing.T) {
	raw := &gcal.Event{Id: "ev3"}

	event := MapEvent(raw, "work@example.com")

	// No ICalUID: the provider id stands in.
	assert.Equal(t, "ev3", event.UID)
	assert.Equal(t, domain.StatusConfirmed, event.Status)
	assert.False(t, event.AllDay)
	assert.True(t, event.Start.IsZero())
	assert.True(t, event.End.IsZero())
	assert.Empty(t, event.Attendees)
}

func TestMapEvent_MalformedTimesDegradeToZero(t *testing.T) {
	raw := &gcal.Event{
		Id:    "ev4",
		Start: &gcal.EventDateTime{DateTime: "not-a-timestamp"},
		End:   &gcal.EventDateTime{Date: "03/02/2026"},
	}

	event := MapEvent(raw, "work@example.com")

	assert.True(t, event.Start.IsZero())
	assert.True(t, event.End.IsZero())
}

func TestMapEvent_DateTimeWinsOverDate(t *testing.T) {
	raw := &gcal.Event{
		Id: "ev5",
		Start: &gcal.EventDateTime{
			Date:     "2026-03-02",
			DateTime: "2026-03-02T08:30:00Z",
		},
	}

	event := MapEvent(raw, "work@example.com")

	assert.Equal(t, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC), event.Start)
	// Date-only is still present, so the event counts as all-day.
	assert.True(t, event.AllDay)
}

func TestMapResponseStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   string
	}{
		{"accepted", "accepted", "ACCEPTED"},
		{"declined", "declined", "DECLINED"},
		{"tentative", "tentative", "TENTATIVE"},
		{"needs action", "needsAction", "NEEDS-ACTION"},
		{"empty", "", "NEEDS-ACTION"},
		{"unknown passes through upper-cased", "delegated", "DELEGATED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapResponseStatus(tt.status))
		})
	}
}
