package usecase

import (
	"context"
	"time"

	"redalert-backend/internal/alert/domain"
)

// AlertUsecase manages the alert history and the manual alert tools
type AlertUsecase interface {
	GetRecent(limit int) ([]*domain.Alert, int64, error)
	GetUrgent() ([]*domain.Alert, error)
	GetStats() (*Stats, error)
	ClearHistory() (int64, error)
	// Cleanup removes alerts older than daysOld days
	Cleanup(daysOld int) (int64, error)
	// SimulateFromEmail publishes an urgent alert built from a processed email
	SimulateFromEmail(ctx context.Context, processedEmailID string) (*domain.ClassAlert, error)
	SimulateTest(ctx context.Context, title, description, url string) (*domain.ClassAlert, error)
	// ClearCalendarDay deletes every calendar event on date (YYYY-MM-DD)
	ClearCalendarDay(ctx context.Context, date string) (int, time.Time, error)
}

type Stats struct {
	Total  int64 `json:"total"`
	Urgent int64 `json:"urgent"`
}
