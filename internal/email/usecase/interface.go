package usecase

import (
	"context"

	emaildomain "redalert-backend/internal/email/domain"
)

// Poller runs a poll cycle on demand
type Poller interface {
	PollEmails(ctx context.Context) (*CycleResult, error)
}

// EmailSearchUsecase runs ad-hoc mailbox searches
type EmailSearchUsecase interface {
	Search(ctx context.Context, criteria SearchCriteria) (*SearchResult, error)
}

// ProcessedEmailUsecase exposes the processed-message ledger
type ProcessedEmailUsecase interface {
	List() ([]*emaildomain.ProcessedEmail, error)
	ListByCategory(categoryID string) ([]*emaildomain.ProcessedEmail, error)
	Get(id string) (*emaildomain.ProcessedEmail, error)
	Count() (int64, error)
	Delete(id string) error
	DeleteAll() (int64, error)
}
