package calendar

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/gcal-driver/internal/connectors/google"
	"github.com/custodia-labs/gcal-driver/internal/core/domain"
	"github.com/custodia-labs/gcal-driver/internal/logger"
)

// Loader fetches events in a date range across one or more calendars.
// Provider calls are sequential: one request per calendar per page.
type Loader struct {
	svc      *calendar.Service
	lister   *Lister
	limiter  *google.RateLimiter
	pageSize int64
}

// NewLoader creates an event loader. A nil service is allowed and makes
// every load return empty results.
func NewLoader(svc *calendar.Service, lister *Lister, limiter *google.RateLimiter, pageSize int64) *Loader {
	if pageSize <= 0 {
		pageSize = DefaultConfig().PageSize
	}
	return &Loader{
		svc:      svc,
		lister:   lister,
		limiter:  limiter,
		pageSize: pageSize,
	}
}

// Load returns all events in the inclusive window [start, end], for the
// given namespaced calendar ids. When none are given, all calendars from
// the lister are queried; when given, the set is intersected with the
// lister's known ids so a request can never reach outside this account.
// Events accumulate calendar by calendar in the order given, page by page
// within each calendar.
func (ld *Loader) Load(ctx context.Context, start, end time.Time, query string, calendarIDs []string) ([]domain.Event, error) {
	if ld.svc == nil {
		return nil, nil
	}

	known, err := ld.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	targets := resolveTargets(calendarIDs, known)
	logger.Debug("loading events from %d calendar(s), window %s..%s",
		len(targets), start.Format(time.RFC3339), end.Format(time.RFC3339))

	var events []domain.Event
	for _, id := range targets {
		remoteID := strings.TrimPrefix(id, domain.Namespace+":")
		calEvents, err := ld.loadCalendar(ctx, remoteID, start, end, query)
		if err != nil {
			return nil, err
		}
		events = append(events, calEvents...)
	}

	return events, nil
}

// Count reports the number of events in the range. A zero end defaults to
// start plus one day. There is no server-side counting: it delegates to
// Load and measures the result.
func (ld *Loader) Count(ctx context.Context, calendarIDs []string, start, end time.Time) (int, error) {
	if end.IsZero() {
		end = start.Add(24 * time.Hour)
	}

	events, err := ld.Load(ctx, start, end, "", calendarIDs)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// Get fetches a single event by composite id. A malformed id yields nil
// with no error, as does a missing event or the absence of a session.
func (ld *Loader) Get(ctx context.Context, id string) (*domain.Event, error) {
	if ld.svc == nil {
		return nil, nil
	}

	remoteCal, remoteEvent, err := domain.ParseEventID(id)
	if err != nil {
		logger.Debug("rejecting malformed event id %q", id)
		return nil, nil
	}

	if err := ld.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	raw, err := ld.svc.Events.Get(remoteCal, remoteEvent).Context(ctx).Do()
	if err != nil {
		if google.IsNotFound(err) {
			return nil, nil
		}
		if google.IsRateLimited(err) {
			ld.limiter.RecordRateLimitError(0)
		}
		return nil, fmt.Errorf("fetching event %s: %w", id, google.WrapError(err))
	}

	event := MapEvent(raw, remoteCal)
	return &event, nil
}

// loadCalendar pages through one calendar's events, mapping each raw
// event as it arrives. Recurring events are expanded to single instances
// and ordered by start time.
func (ld *Loader) loadCalendar(ctx context.Context, remoteID string, start, end time.Time, query string) ([]domain.Event, error) {
	var events []domain.Event

	pageToken := ""
	for {
		if err := ld.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := ld.svc.Events.List(remoteID).
			Context(ctx).
			SingleEvents(true).
			OrderBy("startTime").
			TimeMin(start.UTC().Format(time.RFC3339)).
			TimeMax(end.UTC().Format(time.RFC3339)).
			MaxResults(ld.pageSize)
		if query != "" {
			call = call.Q(query)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			if google.IsRateLimited(err) {
				ld.limiter.RecordRateLimitError(0)
			}
			return nil, fmt.Errorf("listing events for %s: %w", remoteID, google.WrapError(err))
		}

		for _, item := range resp.Items {
			events = append(events, MapEvent(item, remoteID))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return events, nil
}

// resolveTargets picks the calendars to query. With no explicit ids the
// full known set is used in stable order; explicit ids keep their given
// order but are filtered to the known set.
func resolveTargets(calendarIDs []string, known map[string]domain.Calendar) []string {
	if len(calendarIDs) == 0 {
		all := make([]string, 0, len(known))
		for id := range known {
			all = append(all, id)
		}
		sort.Strings(all)
		return all
	}

	targets := make([]string, 0, len(calendarIDs))
	for _, id := range calendarIDs {
		if _, ok := known[id]; ok {
			targets = append(targets, id)
		}
	}
	return targets
}
