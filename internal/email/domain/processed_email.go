package domain

import (
	"strings"
	"time"

	categorydomain "redalert-backend/internal/category/domain"
)

// ProcessedEmail is the durable ledger entry for a handled mailbox message.
// EmailID is unique: at most one record exists per provider message.
type ProcessedEmail struct {
	ID          string                   `json:"id" gorm:"primaryKey"`
	EmailID     string                   `json:"emailId" gorm:"uniqueIndex;not null"`
	FromAddress string                   `json:"fromAddress"`
	Subject     string                   `json:"subject"`
	Snippet     string                   `json:"snippet" gorm:"type:text"`
	ReceivedAt  time.Time                `json:"receivedAt"`
	CategoryID  *string                  `json:"categoryId" gorm:"index"`
	Category    *categorydomain.Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	ProcessedAt time.Time                `json:"processedAt" gorm:"index"`
}

// TableName specifies the table name for GORM
func (ProcessedEmail) TableName() string {
	return "processed_emails"
}

const snippetLength = 200

// NewProcessedEmail builds a ledger entry, deriving the snippet from text.
func NewProcessedEmail(emailID, from, subject, text string, receivedAt time.Time, categoryID *string) *ProcessedEmail {
	return &ProcessedEmail{
		EmailID:     emailID,
		FromAddress: from,
		Subject:     subject,
		Snippet:     Snippet(text),
		ReceivedAt:  receivedAt,
		CategoryID:  categoryID,
	}
}

// Snippet flattens newlines and keeps the first 200 characters of text.
func Snippet(text string) string {
	flat := strings.NewReplacer("\n", " ", "\r", " ").Replace(text)
	runes := []rune(flat)
	if len(runes) <= snippetLength {
		return flat
	}
	return string(runes[:snippetLength]) + "..."
}
