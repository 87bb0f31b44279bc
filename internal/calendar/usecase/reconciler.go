package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	alertdomain "redalert-backend/internal/alert/domain"
	"redalert-backend/internal/calendar/domain"
)

// DefaultPlaceholderLocation is used when an alert carries no URL.
const DefaultPlaceholderLocation = "Online"

const eventDuration = time.Hour

// CalendarClient is the subset of the calendar provider the reconciler needs.
type CalendarClient interface {
	FindEvents(ctx context.Context, timeMin, timeMax time.Time, query string) ([]*domain.Event, error)
	InsertEvent(ctx context.Context, ev *domain.Event) (*domain.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Reconciler keeps at most one calendar event per alert title and day.
type Reconciler struct {
	client      CalendarClient
	loc         *time.Location
	placeholder string

	// serializes find-then-insert so overlapping cycles do not create twins
	mu sync.Mutex
}

// NewReconciler creates a reconciler working in loc.
func NewReconciler(client CalendarClient, loc *time.Location, placeholder string) *Reconciler {
	if loc == nil {
		loc = time.UTC
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholderLocation
	}
	return &Reconciler{client: client, loc: loc, placeholder: placeholder}
}

// EnsureEvent returns the link of the event matching alert's title on alert's
// day, creating one when none exists. Provider failures yield nil.
func (r *Reconciler) EnsureEvent(ctx context.Context, alert *alertdomain.ClassAlert) *string {
	if alert == nil || alert.Title == "" || alert.Date.IsZero() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start, end := domain.DayWindow(alert.Date, r.loc)
	existing, err := r.client.FindEvents(ctx, start, end, alert.Title)
	if err != nil {
		log.Printf("[Calendar] Failed to search events for %q: %v", alert.Title, err)
		return nil
	}
	if len(existing) > 0 {
		log.Printf("[Calendar] Event %q already exists on %s, reusing it", alert.Title, start.Format("2006-01-02"))
		return linkOf(existing[0])
	}

	location := r.placeholder
	if alert.URL != nil && *alert.URL != "" {
		location = *alert.URL
	}

	created, err := r.client.InsertEvent(ctx, &domain.Event{
		Summary:     alert.Title,
		Description: alert.Description,
		Location:    location,
		Start:       alert.Date,
		End:         alert.Date.Add(eventDuration),
	})
	if err != nil {
		log.Printf("[Calendar] Failed to create event %q: %v", alert.Title, err)
		return nil
	}

	log.Printf("[Calendar] Created event %q at %s", alert.Title, alert.Date.In(r.loc).Format(time.RFC3339))
	return linkOf(created)
}

// ClearDay deletes every event on date's day and returns how many were removed.
// Individual delete failures are logged and skipped.
func (r *Reconciler) ClearDay(ctx context.Context, date time.Time) (int, error) {
	start, end := domain.DayWindow(date, r.loc)
	events, err := r.client.FindEvents(ctx, start, end, "")
	if err != nil {
		return 0, fmt.Errorf("failed to list events for %s: %w", start.Format("2006-01-02"), err)
	}

	deleted := 0
	for _, ev := range events {
		if err := r.client.DeleteEvent(ctx, ev.ID); err != nil {
			log.Printf("[Calendar] Failed to delete event %s (%q): %v", ev.ID, ev.Summary, err)
			continue
		}
		deleted++
	}

	log.Printf("[Calendar] Cleared %d/%d events on %s", deleted, len(events), start.Format("2006-01-02"))
	return deleted, nil
}

// Location returns the time zone day windows are computed in.
func (r *Reconciler) Location() *time.Location {
	return r.loc
}

func linkOf(ev *domain.Event) *string {
	if ev == nil || ev.HTMLLink == "" {
		return nil
	}
	link := ev.HTMLLink
	return &link
}
