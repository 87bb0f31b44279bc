package usecase

import (
	"context"
	"strings"
	"time"

	emaildomain "redalert-backend/internal/email/domain"
)

const defaultSearchResults = 10

// EmailSearcher lists message summaries for a provider query.
type EmailSearcher interface {
	SearchEmails(ctx context.Context, query string, maxResults int64) ([]*emaildomain.EmailSummary, error)
}

type SearchCriteria struct {
	From       string
	Subject    string
	Body       string
	UnreadOnly bool
	MaxResults int64
}

type SearchResult struct {
	Emails   []*emaildomain.EmailSummary
	Query    string
	Duration time.Duration
}

// BuildSearchQuery joins the non-empty criteria, e.g. "from:x subject:y body is:unread".
func BuildSearchQuery(c SearchCriteria) string {
	var parts []string
	if from := strings.TrimSpace(c.From); from != "" {
		parts = append(parts, "from:"+from)
	}
	if subject := strings.TrimSpace(c.Subject); subject != "" {
		parts = append(parts, "subject:"+subject)
	}
	if body := strings.TrimSpace(c.Body); body != "" {
		parts = append(parts, body)
	}
	if c.UnreadOnly {
		parts = append(parts, "is:unread")
	}
	return strings.Join(parts, " ")
}

type emailSearchUsecase struct {
	searcher EmailSearcher
}

func NewEmailSearchUsecase(searcher EmailSearcher) EmailSearchUsecase {
	return &emailSearchUsecase{searcher: searcher}
}

func (u *emailSearchUsecase) Search(ctx context.Context, criteria SearchCriteria) (*SearchResult, error) {
	if criteria.MaxResults <= 0 {
		criteria.MaxResults = defaultSearchResults
	}
	query := BuildSearchQuery(criteria)
	if query == "" {
		query = "is:unread"
	}

	start := time.Now()
	emails, err := u.searcher.SearchEmails(ctx, query, criteria.MaxResults)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Emails: emails, Query: query, Duration: time.Since(start)}, nil
}
