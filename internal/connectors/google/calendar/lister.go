package calendar

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/gcal-driver/internal/connectors/google"
	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

// Lister fetches the user's calendar list and converts it to host
// descriptors. Descriptors are recomputed on every call, never cached.
type Lister struct {
	svc     *calendar.Service
	limiter *google.RateLimiter
	// selected is the user's selection preference keyed by namespaced id.
	// Nil means no preference was stored.
	selected map[string]bool
}

// NewLister creates a calendar lister. A nil service is allowed and makes
// List return an empty mapping. The selected slice carries the user's
// selected-calendars preference; nil means all calendars are active.
func NewLister(svc *calendar.Service, limiter *google.RateLimiter, selected []string) *Lister {
	l := &Lister{svc: svc, limiter: limiter}
	if selected != nil {
		l.selected = make(map[string]bool, len(selected))
		for _, id := range selected {
			l.selected[id] = true
		}
	}
	return l
}

// List returns the user's calendars keyed by namespaced id. Every
// descriptor is forced non-editable regardless of the access role the
// provider reports: writes never go through this driver.
func (l *Lister) List(ctx context.Context) (map[string]domain.Calendar, error) {
	calendars := make(map[string]domain.Calendar)
	if l.svc == nil {
		return calendars, nil
	}

	pageToken := ""
	for {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := l.svc.CalendarList.List().Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			if google.IsRateLimited(err) {
				l.limiter.RecordRateLimitError(0)
			}
			return nil, fmt.Errorf("listing calendars: %w", google.WrapError(err))
		}

		for _, item := range resp.Items {
			cal := l.toDescriptor(item)
			calendars[cal.ID] = cal
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return calendars, nil
}

// toDescriptor builds one host descriptor from a provider list entry.
func (l *Lister) toDescriptor(item *calendar.CalendarListEntry) domain.Calendar {
	name := item.Summary
	if item.SummaryOverride != "" {
		name = item.SummaryOverride
	}

	id := domain.CalendarID(item.Id)

	active := true
	if l.selected != nil {
		active = l.selected[id]
	}

	return domain.Calendar{
		ID:       id,
		Name:     name,
		Color:    strings.TrimPrefix(item.BackgroundColor, "#"),
		Editable: false,
		Active:   active,
		Owner:    item.Id,
	}
}
