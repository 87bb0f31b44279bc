package repository

import "redalert-backend/internal/category/domain"

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *domain.Category) error

	// FindByID finds a category by its ID
	FindByID(id string) (*domain.Category, error)

	// FindByName finds a category by its unique name
	FindByName(name string) (*domain.Category, error)

	// FindAll returns every category ordered by name
	FindAll() ([]*domain.Category, error)

	// FindActive returns the categories the poller should scan
	FindActive() ([]*domain.Category, error)

	// Update updates an existing category
	Update(category *domain.Category) error

	// Delete deletes a category by ID
	Delete(id string) error
}
