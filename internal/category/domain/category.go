package domain

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrDuplicateCategoryName = errors.New("category name already exists")
)

// Category is a named mailbox filter. Filters are OR'd within a field and
// AND'd across fields when turned into a provider query.
type Category struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description     string    `json:"description" gorm:"size:255"`
	FromFilter      string    `json:"fromFilter" gorm:"size:255"`
	SubjectKeywords string    `json:"subjectKeywords" gorm:"size:500"`
	BodyKeywords    string    `json:"bodyKeywords" gorm:"size:500"`
	IsActive        bool      `json:"isActive" gorm:"index;not null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// GmailQuery builds the mailbox search query for this category.
func (c *Category) GmailQuery() string {
	return BuildQuery(c.FromFilter, c.SubjectKeywords, c.BodyKeywords)
}
