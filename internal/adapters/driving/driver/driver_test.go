package driver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

type memConfig struct {
	values map[string]any
}

func (m *memConfig) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memConfig) GetString(key string) string {
	s, _ := m.values[key].(string)
	return s
}

func (m *memConfig) GetInt(key string) int {
	n, _ := m.values[key].(int)
	return n
}

func (m *memConfig) GetBool(key string) bool {
	b, _ := m.values[key].(bool)
	return b
}

func (m *memConfig) GetStringSlice(key string) []string {
	s, _ := m.values[key].([]string)
	return s
}

func (m *memConfig) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

type memTokens struct {
	recs map[string]domain.Credentials
}

func (m *memTokens) Load(_ context.Context, userID string) (*domain.Credentials, error) {
	for _, rec := range m.recs {
		if rec.UserID == userID {
			r := rec
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memTokens) Save(_ context.Context, creds domain.Credentials) error {
	m.recs[creds.UserID+"/"+creds.AccountOrEmail()] = creds
	return nil
}

func (m *memTokens) Delete(_ context.Context, userID string) error {
	for k, rec := range m.recs {
		if rec.UserID == userID {
			delete(m.recs, k)
		}
	}
	return nil
}

func disabledDriver(t *testing.T) *Driver {
	t.Helper()

	d, err := New(context.Background(), Options{
		UserID: "u1",
		Config: &memConfig{values: map[string]any{}},
		Tokens: &memTokens{recs: map[string]domain.Credentials{}},
	})
	require.NoError(t, err)
	return d
}

// fakeCalendarAPI serves a single calendar with two events.
func fakeCalendarAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/me/calendarList", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[{"id":"work@example.com","summary":"Work","backgroundColor":"#0b8043","accessRole":"owner"}]}`)
	})
	mux.HandleFunc("/calendars/work@example.com/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		assert.Equal(t, "startTime", r.URL.Query().Get("orderBy"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[
			{"id":"ev1","summary":"Standup","start":{"dateTime":"2026-03-02T09:00:00Z"},"end":{"dateTime":"2026-03-02T09:15:00Z"}},
			{"id":"ev2","summary":"Review","start":{"dateTime":"2026-03-02T14:00:00Z"},"end":{"dateTime":"2026-03-02T15:00:00Z"}}
		]}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})

	return httptest.NewServer(mux)
}

func connectedDriver(t *testing.T, api *httptest.Server) *Driver {
	t.Helper()

	tokens := &memTokens{recs: map[string]domain.Credentials{
		"u1/alice@example.com": {
			UserID:  "u1",
			Account: "alice@example.com",
			OAuth: &domain.OAuthCredentials{
				AccessToken: "access",
				Expiry:      time.Now().Add(time.Hour),
			},
		},
	}}

	d, err := New(context.Background(), Options{
		UserID: "u1",
		Config: &memConfig{values: map[string]any{
			"oauth.client_id":     "id",
			"oauth.client_secret": "secret",
		}},
		Tokens: tokens,
		ServiceOptions: []option.ClientOption{
			option.WithEndpoint(api.URL + "/"),
		},
	})
	require.NoError(t, err)
	return d
}

func TestDriver_DisabledReadsReturnEmpty(t *testing.T) {
	d := disabledDriver(t)
	ctx := context.Background()

	cals, err := d.ListCalendars(ctx)
	require.NoError(t, err)
	assert.Empty(t, cals)

	events, err := d.LoadEvents(ctx, time.Now(), time.Now().Add(time.Hour), "", nil)
	require.NoError(t, err)
	assert.Empty(t, events)

	ev, err := d.GetEvent(ctx, "google:cal:ev")
	require.NoError(t, err)
	assert.Nil(t, ev)

	count, err := d.CountEvents(ctx, nil, time.Now(), time.Time{})
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Empty(t, d.AuthURL())
}

func TestDriver_MutationsAlwaysRejected(t *testing.T) {
	api := fakeCalendarAPI(t)
	defer api.Close()

	ctx := context.Background()
	now := time.Now()

	// Rejection is policy, so it holds even for an authenticated session.
	for name, d := range map[string]*Driver{
		"disabled":  disabledDriver(t),
		"connected": connectedDriver(t, api),
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, d.CreateEvent(ctx, domain.Event{}), domain.ErrReadOnly)
			assert.ErrorIs(t, d.EditEvent(ctx, domain.Event{}), domain.ErrReadOnly)
			assert.ErrorIs(t, d.MoveEvent(ctx, "google:c:e", now, now.Add(time.Hour)), domain.ErrReadOnly)
			assert.ErrorIs(t, d.ResizeEvent(ctx, "google:c:e", now.Add(time.Hour)), domain.ErrReadOnly)
			assert.ErrorIs(t, d.RemoveEvent(ctx, "google:c:e"), domain.ErrReadOnly)
		})
	}
}

func TestDriver_AlarmsAreInert(t *testing.T) {
	d := disabledDriver(t)
	ctx := context.Background()

	alarms, err := d.PendingAlarms(ctx, time.Now())
	require.NoError(t, err)
	assert.NotNil(t, alarms)
	assert.Empty(t, alarms)

	assert.NoError(t, d.DismissAlarm(ctx, "google:c:e"))
}

func TestDriver_ListAndLoad(t *testing.T) {
	api := fakeCalendarAPI(t)
	defer api.Close()

	d := connectedDriver(t, api)
	ctx := context.Background()

	cals, err := d.ListCalendars(ctx)
	require.NoError(t, err)
	require.Len(t, cals, 1)

	cal, ok := cals["google:work@example.com"]
	require.True(t, ok)
	assert.Equal(t, "Work", cal.Name)
	assert.Equal(t, "0b8043", cal.Color)
	// The provider grants owner access, the driver still refuses edits.
	assert.False(t, cal.Editable)
	assert.True(t, cal.Active)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	events, err := d.LoadEvents(ctx, start, start.AddDate(0, 0, 1), "", nil)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "google:work@example.com:ev1", events[0].ID)
	assert.Equal(t, "google:work@example.com", events[0].Calendar)
	assert.Equal(t, "Standup", events[0].Title)
	assert.Contains(t, events[0].Flags, domain.FlagReadOnly)

	count, err := d.CountEvents(ctx, nil, start, start.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDriver_DisconnectEmptiesReads(t *testing.T) {
	api := fakeCalendarAPI(t)
	defer api.Close()

	d := connectedDriver(t, api)
	ctx := context.Background()

	cals, err := d.ListCalendars(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, cals)

	require.NoError(t, d.Disconnect(ctx))

	cals, err = d.ListCalendars(ctx)
	require.NoError(t, err)
	assert.Empty(t, cals)
	assert.Empty(t, d.Account())
}

func TestDriver_AuthURLCarriesFreshState(t *testing.T) {
	tokens := &memTokens{recs: map[string]domain.Credentials{}}
	d, err := New(context.Background(), Options{
		UserID: "u1",
		Config: &memConfig{values: map[string]any{
			"oauth.client_id":     "id",
			"oauth.client_secret": "secret",
		}},
		Tokens: tokens,
	})
	require.NoError(t, err)

	first := d.AuthURL()
	second := d.AuthURL()
	assert.Contains(t, first, "state=")
	assert.NotEqual(t, first, second)
}
