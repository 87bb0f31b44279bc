package usecase

import (
	"log"
	"strings"

	"redalert-backend/internal/category/domain"
	"redalert-backend/internal/category/repository"
)

type categoryUsecase struct {
	repo repository.CategoryRepository
}

func NewCategoryUsecase(repo repository.CategoryRepository) CategoryUsecase {
	return &categoryUsecase{repo: repo}
}

func (u *categoryUsecase) GetAll() ([]*domain.Category, error) {
	return u.repo.FindAll()
}

func (u *categoryUsecase) GetActive() ([]*domain.Category, error) {
	return u.repo.FindActive()
}

func (u *categoryUsecase) GetByID(id string) (*domain.Category, error) {
	category, err := u.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

func (u *categoryUsecase) Create(input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := u.ensureNameFree(name, ""); err != nil {
		return nil, err
	}

	category := &domain.Category{IsActive: true}
	apply(category, input)
	if err := u.repo.Create(category); err != nil {
		return nil, err
	}

	log.Printf("[Category] Created category '%s'", category.Name)
	return category, nil
}

func (u *categoryUsecase) Update(id string, input CategoryInput) (*domain.Category, error) {
	category, err := u.GetByID(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name != category.Name {
		if err := u.ensureNameFree(name, id); err != nil {
			return nil, err
		}
	}

	apply(category, input)
	if err := u.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (u *categoryUsecase) Toggle(id string) (*domain.Category, error) {
	category, err := u.GetByID(id)
	if err != nil {
		return nil, err
	}
	category.IsActive = !category.IsActive
	if err := u.repo.Update(category); err != nil {
		return nil, err
	}
	log.Printf("[Category] Category '%s' active=%t", category.Name, category.IsActive)
	return category, nil
}

func (u *categoryUsecase) Delete(id string) error {
	if _, err := u.GetByID(id); err != nil {
		return err
	}
	return u.repo.Delete(id)
}

func (u *categoryUsecase) ensureNameFree(name, selfID string) error {
	existing, err := u.repo.FindByName(name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrDuplicateCategoryName
	}
	return nil
}

func apply(c *domain.Category, in CategoryInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	c.FromFilter = strings.TrimSpace(in.FromFilter)
	c.SubjectKeywords = in.SubjectKeywords
	c.BodyKeywords = in.BodyKeywords
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
}
