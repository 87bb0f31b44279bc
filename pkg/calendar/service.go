package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	calendardomain "redalert-backend/internal/calendar/domain"
	"redalert-backend/pkg/backoff"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Service wraps the Google Calendar API for one calendar.
type Service struct {
	srv        *calendar.Service
	calendarID string
	loc        *time.Location
	policy     backoff.Policy
}

// NewService creates a Calendar service on top of an authorized HTTP client.
func NewService(ctx context.Context, client *http.Client, calendarID string, loc *time.Location, opts ...option.ClientOption) (*Service, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{srv: srv, calendarID: calendarID, loc: loc, policy: backoff.DefaultPolicy}, nil
}

// FindEvents lists single events between timeMin and timeMax whose text matches query.
// An empty query lists every event in the range.
func (s *Service) FindEvents(ctx context.Context, timeMin, timeMax time.Time, query string) ([]*calendardomain.Event, error) {
	var events []*calendardomain.Event
	pageToken := ""

	for {
		var resp *calendar.Events
		err := backoff.Do(ctx, "Calendar", "list events", s.policy, func() error {
			call := s.srv.Events.List(s.calendarID).
				TimeMin(timeMin.Format(time.RFC3339)).
				TimeMax(timeMax.Format(time.RFC3339)).
				SingleEvents(true).
				OrderBy("startTime").
				Context(ctx)
			if query != "" {
				call = call.Q(query)
			}
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			var err error
			resp, err = call.Do()
			return err
		})
		if err != nil {
			return nil, err
		}

		for _, item := range resp.Items {
			events = append(events, s.toDomain(item))
		}
		if resp.NextPageToken == "" {
			return events, nil
		}
		pageToken = resp.NextPageToken
	}
}

// InsertEvent creates ev and returns the stored copy with its id and link.
func (s *Service) InsertEvent(ctx context.Context, ev *calendardomain.Event) (*calendardomain.Event, error) {
	body := &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.In(s.loc).Format(time.RFC3339),
			TimeZone: s.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.In(s.loc).Format(time.RFC3339),
			TimeZone: s.loc.String(),
		},
	}

	// Inserts are not idempotent, so a failed attempt is not retried.
	created, err := s.srv.Events.Insert(s.calendarID, body).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return s.toDomain(created), nil
}

// DeleteEvent removes an event by id.
func (s *Service) DeleteEvent(ctx context.Context, eventID string) error {
	return backoff.Do(ctx, "Calendar", "delete event", s.policy, func() error {
		return s.srv.Events.Delete(s.calendarID, eventID).Context(ctx).Do()
	})
}

func (s *Service) toDomain(item *calendar.Event) *calendardomain.Event {
	ev := &calendardomain.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
		HTMLLink:    item.HtmlLink,
	}
	ev.Start = parseEventTime(item.Start, s.loc)
	ev.End = parseEventTime(item.End, s.loc)
	return ev
}

func parseEventTime(dt *calendar.EventDateTime, loc *time.Location) time.Time {
	if dt == nil {
		return time.Time{}
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return t
		}
	}
	if dt.Date != "" {
		if t, err := time.ParseInLocation("2006-01-02", dt.Date, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
