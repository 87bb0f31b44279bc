package usecase

import (
	"errors"
	"log"

	emaildomain "redalert-backend/internal/email/domain"
	"redalert-backend/internal/email/repository"
)

var ErrProcessedEmailNotFound = errors.New("processed email not found")

type processedEmailUsecase struct {
	repo repository.ProcessedEmailRepository
}

func NewProcessedEmailUsecase(repo repository.ProcessedEmailRepository) ProcessedEmailUsecase {
	return &processedEmailUsecase{repo: repo}
}

func (u *processedEmailUsecase) List() ([]*emaildomain.ProcessedEmail, error) {
	return u.repo.FindAll()
}

func (u *processedEmailUsecase) ListByCategory(categoryID string) ([]*emaildomain.ProcessedEmail, error) {
	return u.repo.FindByCategoryID(categoryID)
}

func (u *processedEmailUsecase) Get(id string) (*emaildomain.ProcessedEmail, error) {
	record, err := u.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrProcessedEmailNotFound
	}
	return record, nil
}

func (u *processedEmailUsecase) Count() (int64, error) {
	return u.repo.Count()
}

func (u *processedEmailUsecase) Delete(id string) error {
	if _, err := u.Get(id); err != nil {
		return err
	}
	if err := u.repo.Delete(id); err != nil {
		return err
	}
	log.Printf("[Ledger] Deleted processed email %s", id)
	return nil
}

func (u *processedEmailUsecase) DeleteAll() (int64, error) {
	n, err := u.repo.DeleteAll()
	if err != nil {
		return 0, err
	}
	log.Printf("[Ledger] Deleted %d processed emails", n)
	return n, nil
}
