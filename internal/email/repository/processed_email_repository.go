package repository

import (
	"errors"
	"time"

	emaildomain "redalert-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProcessedEmailRepository is the durable ledger of handled messages
type ProcessedEmailRepository interface {
	// InsertIfAbsent stores record unless one exists for the same email id.
	// It returns the stored record and whether this call created it.
	InsertIfAbsent(record *emaildomain.ProcessedEmail) (*emaildomain.ProcessedEmail, bool, error)
	ExistsByEmailID(emailID string) (bool, error)
	FindByID(id string) (*emaildomain.ProcessedEmail, error)
	FindAll() ([]*emaildomain.ProcessedEmail, error)
	FindByCategoryID(categoryID string) ([]*emaildomain.ProcessedEmail, error)
	Count() (int64, error)
	Delete(id string) error
	DeleteAll() (int64, error)
}

type processedEmailRepository struct {
	db *gorm.DB
}

func NewProcessedEmailRepository(db *gorm.DB) ProcessedEmailRepository {
	return &processedEmailRepository{db: db}
}

func (r *processedEmailRepository) InsertIfAbsent(record *emaildomain.ProcessedEmail) (*emaildomain.ProcessedEmail, bool, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.ProcessedAt.IsZero() {
		record.ProcessedAt = time.Now()
	}

	// Atomic insert: INSERT ... ON CONFLICT (email_id) DO NOTHING
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email_id"}},
		DoNothing: true,
	}).Omit("Category").Create(record)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return record, true, nil
	}

	var existing emaildomain.ProcessedEmail
	if err := r.db.Where("email_id = ?", record.EmailID).First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func (r *processedEmailRepository) ExistsByEmailID(emailID string) (bool, error) {
	var count int64
	err := r.db.Model(&emaildomain.ProcessedEmail{}).Where("email_id = ?", emailID).Count(&count).Error
	return count > 0, err
}

func (r *processedEmailRepository) FindByID(id string) (*emaildomain.ProcessedEmail, error) {
	var record emaildomain.ProcessedEmail
	err := r.db.Preload("Category").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *processedEmailRepository) FindAll() ([]*emaildomain.ProcessedEmail, error) {
	var records []*emaildomain.ProcessedEmail
	err := r.db.Preload("Category").Order("processed_at DESC").Find(&records).Error
	return records, err
}

func (r *processedEmailRepository) FindByCategoryID(categoryID string) ([]*emaildomain.ProcessedEmail, error) {
	var records []*emaildomain.ProcessedEmail
	err := r.db.Preload("Category").
		Where("category_id = ?", categoryID).
		Order("processed_at DESC").
		Find(&records).Error
	return records, err
}

func (r *processedEmailRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&emaildomain.ProcessedEmail{}).Count(&count).Error
	return count, err
}

func (r *processedEmailRepository) Delete(id string) error {
	return r.db.Delete(&emaildomain.ProcessedEmail{}, "id = ?", id).Error
}

func (r *processedEmailRepository) DeleteAll() (int64, error) {
	result := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&emaildomain.ProcessedEmail{})
	return result.RowsAffected, result.Error
}
