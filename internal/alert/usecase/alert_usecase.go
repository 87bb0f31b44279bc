package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"redalert-backend/internal/alert/domain"
	"redalert-backend/internal/alert/repository"
	emaildomain "redalert-backend/internal/email/domain"
)

const (
	DefaultHistoryLimit  = 20
	DefaultCleanupDays   = 30
	DefaultTestTitle     = "🔴 LIVE NOW: Test class"
	DefaultTestDesc      = "This is a simulated alert to test the overlay."
	simulatedTitlePrefix = "🚨 "
	calendarDateLayout   = "2006-01-02"
)

var (
	ErrProcessedEmailNotFound = errors.New("processed email not found")
	ErrInvalidDate            = errors.New("invalid date, expected YYYY-MM-DD")
)

// ProcessedEmailFinder loads ledger records for simulations.
type ProcessedEmailFinder interface {
	FindByID(id string) (*emaildomain.ProcessedEmail, error)
}

// Notifier publishes alerts to clients.
type Notifier interface {
	Publish(ctx context.Context, alert *domain.ClassAlert)
}

// CalendarCleaner deletes the events of a day.
type CalendarCleaner interface {
	ClearDay(ctx context.Context, date time.Time) (int, error)
}

type alertUsecase struct {
	repo     repository.AlertRepository
	emails   ProcessedEmailFinder
	notifier Notifier
	calendar CalendarCleaner
	loc      *time.Location
	now      func() time.Time
}

func NewAlertUsecase(repo repository.AlertRepository, emails ProcessedEmailFinder, notifier Notifier, calendar CalendarCleaner, loc *time.Location) AlertUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &alertUsecase{
		repo:     repo,
		emails:   emails,
		notifier: notifier,
		calendar: calendar,
		loc:      loc,
		now:      time.Now,
	}
}

func (u *alertUsecase) GetRecent(limit int) ([]*domain.Alert, int64, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	alerts, err := u.repo.FindRecent(limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.repo.Count()
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

func (u *alertUsecase) GetUrgent() ([]*domain.Alert, error) {
	return u.repo.FindUrgent()
}

func (u *alertUsecase) GetStats() (*Stats, error) {
	total, err := u.repo.Count()
	if err != nil {
		return nil, err
	}
	urgent, err := u.repo.CountUrgent()
	if err != nil {
		return nil, err
	}
	return &Stats{Total: total, Urgent: urgent}, nil
}

func (u *alertUsecase) ClearHistory() (int64, error) {
	n, err := u.repo.DeleteAll()
	if err != nil {
		return 0, err
	}
	log.Printf("[Alerts] Cleared %d alerts from history", n)
	return n, nil
}

func (u *alertUsecase) Cleanup(daysOld int) (int64, error) {
	if daysOld <= 0 {
		daysOld = DefaultCleanupDays
	}
	n, err := u.repo.DeleteOlderThan(u.now().AddDate(0, 0, -daysOld))
	if err != nil {
		return 0, err
	}
	log.Printf("[Alerts] Deleted %d alerts older than %d days", n, daysOld)
	return n, nil
}

func (u *alertUsecase) SimulateFromEmail(ctx context.Context, processedEmailID string) (*domain.ClassAlert, error) {
	email, err := u.emails.FindByID(processedEmailID)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, ErrProcessedEmailNotFound
	}

	alert := &domain.ClassAlert{
		Title:       simulatedTitlePrefix + email.Subject,
		Date:        u.now(),
		Description: "Simulated alert from email sent by: " + email.FromAddress,
		IsUrgent:    true,
	}
	src := &domain.Source{EmailID: email.EmailID, From: email.FromAddress, Subject: email.Subject, CategoryID: email.CategoryID}
	u.record(ctx, alert, src)
	log.Printf("[Alerts] Simulated alert sent for email: %s", email.Subject)
	return alert, nil
}

func (u *alertUsecase) SimulateTest(ctx context.Context, title, description, url string) (*domain.ClassAlert, error) {
	if title == "" {
		title = DefaultTestTitle
	}
	if description == "" {
		description = DefaultTestDesc
	}
	alert, err := domain.NewClassAlert(title, u.now(), domain.StringPtr(url), description, true)
	if err != nil {
		return nil, err
	}
	u.record(ctx, alert, nil)
	log.Printf("[Alerts] Test alert sent: %s", title)
	return alert, nil
}

func (u *alertUsecase) ClearCalendarDay(ctx context.Context, date string) (int, time.Time, error) {
	day, err := time.ParseInLocation(calendarDateLayout, date, u.loc)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	n, err := u.calendar.ClearDay(ctx, day)
	if err != nil {
		return 0, day, err
	}
	return n, day, nil
}

// record saves the alert to history and publishes it. A history failure is
// logged; the alert is still delivered.
func (u *alertUsecase) record(ctx context.Context, alert *domain.ClassAlert, src *domain.Source) {
	if err := u.repo.Save(domain.NewAlertRecord(alert, src)); err != nil {
		log.Printf("[Alerts] Failed to save alert history: %v", err)
	}
	u.notifier.Publish(ctx, alert)
}
