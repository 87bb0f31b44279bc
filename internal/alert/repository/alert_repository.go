package repository

import (
	"errors"
	"time"

	"redalert-backend/internal/alert/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlertRepository stores the alert history
type AlertRepository interface {
	Save(alert *domain.Alert) error
	FindByID(id string) (*domain.Alert, error)
	// FindRecent returns up to limit alerts, newest first
	FindRecent(limit int) ([]*domain.Alert, error)
	FindUrgent() ([]*domain.Alert, error)
	Count() (int64, error)
	CountUrgent() (int64, error)
	DeleteAll() (int64, error)
	// DeleteOlderThan removes alerts created before cutoff
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Save(alert *domain.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}
	return r.db.Create(alert).Error
}

func (r *alertRepository) FindByID(id string) (*domain.Alert, error) {
	var alert domain.Alert
	err := r.db.Where("id = ?", id).First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) FindRecent(limit int) ([]*domain.Alert, error) {
	var alerts []*domain.Alert
	err := r.db.Order("created_at DESC").Limit(limit).Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) FindUrgent() ([]*domain.Alert, error) {
	var alerts []*domain.Alert
	err := r.db.Where("is_urgent = ?", true).Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Alert{}).Count(&count).Error
	return count, err
}

func (r *alertRepository) CountUrgent() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Alert{}).Where("is_urgent = ?", true).Count(&count).Error
	return count, err
}

func (r *alertRepository) DeleteAll() (int64, error) {
	result := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Alert{})
	return result.RowsAffected, result.Error
}

func (r *alertRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&domain.Alert{})
	return result.RowsAffected, result.Error
}
