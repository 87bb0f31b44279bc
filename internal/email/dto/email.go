package dto

import (
	"time"

	emaildomain "redalert-backend/internal/email/domain"
)

type SearchRequest struct {
	From       string `form:"from"`
	Subject    string `form:"subject"`
	Body       string `form:"body"`
	UnreadOnly *bool  `form:"unreadOnly"`
	MaxResults int64  `form:"maxResults"`
}

type EmailResult struct {
	ID       string    `json:"id"`
	ThreadID string    `json:"threadId"`
	From     string    `json:"from"`
	Subject  string    `json:"subject"`
	Snippet  string    `json:"snippet"`
	Date     time.Time `json:"date"`
	IsUnread bool      `json:"isUnread"`
}

type SearchResponse struct {
	Emails       []EmailResult `json:"emails"`
	TotalResults int           `json:"totalResults"`
	Query        string        `json:"query"`
	SearchTimeMs int64         `json:"searchTimeMs"`
}

// ProcessedEmailResponse is a ledger record with its category name resolved.
type ProcessedEmailResponse struct {
	ID           string    `json:"id"`
	EmailID      string    `json:"emailId"`
	FromAddress  string    `json:"fromAddress"`
	Subject      string    `json:"subject"`
	Snippet      string    `json:"snippet"`
	ReceivedAt   time.Time `json:"receivedAt"`
	CategoryID   *string   `json:"categoryId"`
	CategoryName *string   `json:"categoryName"`
	ProcessedAt  time.Time `json:"processedAt"`
}

func ToEmailResults(summaries []*emaildomain.EmailSummary) []EmailResult {
	results := make([]EmailResult, 0, len(summaries))
	for _, s := range summaries {
		results = append(results, EmailResult{
			ID:       s.ID,
			ThreadID: s.ThreadID,
			From:     s.From,
			Subject:  s.Subject,
			Snippet:  s.Snippet,
			Date:     s.ReceivedAt,
			IsUnread: s.IsUnread,
		})
	}
	return results
}

func ToProcessedEmailResponse(p *emaildomain.ProcessedEmail) ProcessedEmailResponse {
	resp := ProcessedEmailResponse{
		ID:          p.ID,
		EmailID:     p.EmailID,
		FromAddress: p.FromAddress,
		Subject:     p.Subject,
		Snippet:     p.Snippet,
		ReceivedAt:  p.ReceivedAt,
		CategoryID:  p.CategoryID,
		ProcessedAt: p.ProcessedAt,
	}
	if p.Category != nil {
		name := p.Category.Name
		resp.CategoryName = &name
	}
	return resp
}

func ToProcessedEmailResponses(records []*emaildomain.ProcessedEmail) []ProcessedEmailResponse {
	out := make([]ProcessedEmailResponse, 0, len(records))
	for _, p := range records {
		out = append(out, ToProcessedEmailResponse(p))
	}
	return out
}
