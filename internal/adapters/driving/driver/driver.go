// Package driver assembles the read-only Google Calendar source exposed to
// the host. It wires the session service, the calendar connector and the
// stores behind the driving.CalendarSource contract.
package driver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gcal-driver/internal/connectors/google"
	gcal "github.com/custodia-labs/gcal-driver/internal/connectors/google/calendar"
	"github.com/custodia-labs/gcal-driver/internal/core/domain"
	"github.com/custodia-labs/gcal-driver/internal/core/ports/driven"
	"github.com/custodia-labs/gcal-driver/internal/core/ports/driving"
	"github.com/custodia-labs/gcal-driver/internal/core/services"
)

// Options configures a Driver.
type Options struct {
	// UserID identifies the webmail user the driver serves.
	UserID string
	// RedirectURI is the host's OAuth callback route.
	RedirectURI string
	// Config supplies OAuth client credentials and calendar preferences.
	Config driven.ConfigStore
	// Tokens persists OAuth token records.
	Tokens driven.TokenStore

	// Provider endpoint overrides, for tests.
	AuthURL     string
	TokenURL    string
	UserinfoURL string
	// ServiceOptions are extra client options for the Calendar service.
	ServiceOptions []option.ClientOption
}

// Driver implements driving.CalendarSource for Google Calendar. One Driver
// serves one webmail user for the lifetime of a request.
type Driver struct {
	session *services.Session
	cfg     *gcal.Config
	limiter *google.RateLimiter
}

var _ driving.CalendarSource = (*Driver)(nil)

// New builds a driver for the user. Initialisation degrades instead of
// failing: missing OAuth client credentials yield a disabled driver whose
// reads return empty results, and a failed token refresh yields an
// unauthenticated driver plus the refresh error, so the host can still
// render and offer re-authorization.
func New(ctx context.Context, opts Options) (*Driver, error) {
	session, err := services.NewSession(ctx, services.SessionOptions{
		UserID:         opts.UserID,
		RedirectURI:    opts.RedirectURI,
		Config:         opts.Config,
		Tokens:         opts.Tokens,
		AuthURL:        opts.AuthURL,
		TokenURL:       opts.TokenURL,
		UserinfoURL:    opts.UserinfoURL,
		ServiceOptions: opts.ServiceOptions,
	})
	if session == nil {
		return nil, err
	}

	return &Driver{
		session: session,
		cfg:     gcal.ConfigFromStore(opts.Config),
		limiter: google.NewRateLimiter(),
	}, err
}

// Session exposes the underlying session, mainly for status reporting.
func (d *Driver) Session() *services.Session {
	return d.session
}

// Account returns the linked Google account's email address.
func (d *Driver) Account() string {
	return d.session.Account()
}

func (d *Driver) lister() *gcal.Lister {
	return gcal.NewLister(d.session.Service(), d.limiter, d.cfg.Selected)
}

func (d *Driver) loader() *gcal.Loader {
	return gcal.NewLoader(d.session.Service(), d.lister(), d.limiter, d.cfg.PageSize)
}

// ListCalendars returns the user's calendars keyed by namespaced id.
func (d *Driver) ListCalendars(ctx context.Context) (map[string]domain.Calendar, error) {
	return d.lister().List(ctx)
}

// LoadEvents returns all events in [start, end] for the given calendars.
func (d *Driver) LoadEvents(ctx context.Context, start, end time.Time, query string, calendarIDs []string) ([]domain.Event, error) {
	return d.loader().Load(ctx, start, end, query, calendarIDs)
}

// GetEvent fetches one event by composite id.
func (d *Driver) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return d.loader().Get(ctx, id)
}

// CountEvents reports the number of events in the range.
func (d *Driver) CountEvents(ctx context.Context, calendarIDs []string, start, end time.Time) (int, error) {
	return d.loader().Count(ctx, calendarIDs, start, end)
}

// CreateEvent always fails: this driver never writes to the provider.
func (d *Driver) CreateEvent(ctx context.Context, event domain.Event) error {
	return domain.ErrReadOnly
}

// EditEvent always fails: this driver never writes to the provider.
func (d *Driver) EditEvent(ctx context.Context, event domain.Event) error {
	return domain.ErrReadOnly
}

// MoveEvent always fails: this driver never writes to the provider.
func (d *Driver) MoveEvent(ctx context.Context, id string, start, end time.Time) error {
	return domain.ErrReadOnly
}

// ResizeEvent always fails: this driver never writes to the provider.
func (d *Driver) ResizeEvent(ctx context.Context, id string, end time.Time) error {
	return domain.ErrReadOnly
}

// RemoveEvent always fails: this driver never writes to the provider.
func (d *Driver) RemoveEvent(ctx context.Context, id string) error {
	return domain.ErrReadOnly
}

// PendingAlarms always returns an empty slice; the host's own scheduler
// handles reminders for synced copies, never this driver.
func (d *Driver) PendingAlarms(ctx context.Context, before time.Time) ([]domain.Event, error) {
	return []domain.Event{}, nil
}

// DismissAlarm is a no-op.
func (d *Driver) DismissAlarm(ctx context.Context, id string) error {
	return nil
}

// AuthURL returns the provider consent URL with a fresh random state, or
// "" when the OAuth client is not configured. The host stores the state in
// its own session to verify the callback.
func (d *Driver) AuthURL() string {
	return d.session.AuthURL(uuid.NewString())
}

// HandleCallback completes the authorization code flow.
func (d *Driver) HandleCallback(ctx context.Context, code string) (string, error) {
	return d.session.HandleCallback(ctx, code)
}

// Disconnect removes stored tokens and resets the session.
func (d *Driver) Disconnect(ctx context.Context) error {
	return d.session.Disconnect(ctx)
}
