package usecase

import "redalert-backend/internal/category/domain"

// CategoryUsecase defines the category management operations
type CategoryUsecase interface {
	// GetAll returns every category ordered by name
	GetAll() ([]*domain.Category, error)

	// GetActive returns the categories the poller scans
	GetActive() ([]*domain.Category, error)

	// GetByID returns ErrCategoryNotFound when the id is unknown
	GetByID(id string) (*domain.Category, error)

	// Create rejects a name that is already taken
	Create(input CategoryInput) (*domain.Category, error)

	Update(id string, input CategoryInput) (*domain.Category, error)

	// Toggle flips the active flag
	Toggle(id string) (*domain.Category, error)

	Delete(id string) error
}

// CategoryInput carries the editable category fields
type CategoryInput struct {
	Name            string
	Description     string
	FromFilter      string
	SubjectKeywords string
	BodyKeywords    string
	IsActive        *bool
}
