package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidAlert is returned when an alert is missing its title or date.
var ErrInvalidAlert = errors.New("invalid alert")

// ClassAlert is the structured event pushed to clients. URL and CalendarLink
// serialize as null when absent.
type ClassAlert struct {
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	URL          *string   `json:"url"`
	Description  string    `json:"description"`
	IsUrgent     bool      `json:"isUrgent"`
	CalendarLink *string   `json:"calendarLink"`
}

// NewClassAlert builds a validated alert.
func NewClassAlert(title string, date time.Time, url *string, description string, isUrgent bool) (*ClassAlert, error) {
	alert := &ClassAlert{
		Title:       title,
		Date:        date,
		URL:         url,
		Description: description,
		IsUrgent:    isUrgent,
	}
	if err := alert.Validate(); err != nil {
		return nil, err
	}
	return alert, nil
}

// Validate enforces the mandatory title and date.
func (a *ClassAlert) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidAlert)
	}
	if a.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidAlert)
	}
	return nil
}

// Alert is a persisted alert history entry.
type Alert struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text"`
	AlertDate    time.Time `json:"alertDate" gorm:"index"`
	URL          *string   `json:"url"`
	IsUrgent     bool      `json:"isUrgent" gorm:"index"`
	CalendarLink *string   `json:"calendarLink"`
	EmailID      string    `json:"emailId,omitempty" gorm:"index"`
	EmailFrom    string    `json:"emailFrom,omitempty"`
	EmailSubject string    `json:"emailSubject,omitempty"`
	CategoryID   *string   `json:"categoryId,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
}

// TableName specifies the table name for GORM
func (Alert) TableName() string {
	return "alerts"
}

// Source carries the email metadata an alert was derived from.
type Source struct {
	EmailID    string
	From       string
	Subject    string
	CategoryID *string
}

// NewAlertRecord maps a ClassAlert (and optional source email) into a history row.
func NewAlertRecord(a *ClassAlert, src *Source) *Alert {
	record := &Alert{
		Title:        a.Title,
		Description:  a.Description,
		AlertDate:    a.Date,
		URL:          a.URL,
		IsUrgent:     a.IsUrgent,
		CalendarLink: a.CalendarLink,
	}
	if src != nil {
		record.EmailID = src.EmailID
		record.EmailFrom = src.From
		record.EmailSubject = src.Subject
		record.CategoryID = src.CategoryID
	}
	return record
}

// StringPtr returns nil for blank strings.
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
