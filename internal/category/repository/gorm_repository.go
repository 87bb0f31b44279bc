package repository

import (
	"errors"
	"time"

	"redalert-backend/internal/category/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormCategoryRepository implements CategoryRepository using GORM
type gormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GORM-based CategoryRepository
func NewGormCategoryRepository(db *gorm.DB) CategoryRepository {
	return &gormCategoryRepository{db: db}
}

func (r *gormCategoryRepository) Create(category *domain.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	return r.db.Create(category).Error
}

func (r *gormCategoryRepository) FindByID(id string) (*domain.Category, error) {
	return r.first("id = ?", id)
}

func (r *gormCategoryRepository) FindByName(name string) (*domain.Category, error) {
	return r.first("name = ?", name)
}

func (r *gormCategoryRepository) first(query string, arg interface{}) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where(query, arg).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *gormCategoryRepository) FindAll() ([]*domain.Category, error) {
	var categories []*domain.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *gormCategoryRepository) FindActive() ([]*domain.Category, error) {
	var categories []*domain.Category
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *gormCategoryRepository) Update(category *domain.Category) error {
	category.UpdatedAt = time.Now()
	return r.db.Save(category).Error
}

func (r *gormCategoryRepository) Delete(id string) error {
	return r.db.Delete(&domain.Category{}, "id = ?", id).Error
}
