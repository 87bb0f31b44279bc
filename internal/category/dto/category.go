package dto

import (
	"time"

	"redalert-backend/internal/category/domain"
)

type CategoryRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Description     string `json:"description" binding:"max=255"`
	FromFilter      string `json:"fromFilter" binding:"max=255"`
	SubjectKeywords string `json:"subjectKeywords" binding:"max=500"`
	BodyKeywords    string `json:"bodyKeywords" binding:"max=500"`
	IsActive        *bool  `json:"isActive"`
}

type CategoryResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	FromFilter      string    `json:"fromFilter"`
	SubjectKeywords string    `json:"subjectKeywords"`
	BodyKeywords    string    `json:"bodyKeywords"`
	IsActive        bool      `json:"isActive"`
	GmailQuery      string    `json:"gmailQuery"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		FromFilter:      c.FromFilter,
		SubjectKeywords: c.SubjectKeywords,
		BodyKeywords:    c.BodyKeywords,
		IsActive:        c.IsActive,
		GmailQuery:      c.GmailQuery(),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func ToCategoryResponses(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, ToCategoryResponse(c))
	}
	return out
}
