package repository

import (
	"time"

	devicedomain "redalert-backend/internal/device/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceTokenRepository defines the interface for device token operations
type DeviceTokenRepository interface {
	SaveToken(token, deviceInfo string) error
	ListTokens() ([]string, error)
	Count() (int64, error)
	DeleteToken(token string) error
}

// deviceTokenRepository implements DeviceTokenRepository interface
type deviceTokenRepository struct {
	db *gorm.DB
}

// NewDeviceTokenRepository creates a new instance of deviceTokenRepository
func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepository{
		db: db,
	}
}

// SaveToken saves or refreshes a device token (atomic upsert)
func (r *deviceTokenRepository) SaveToken(token, deviceInfo string) error {
	now := time.Now()
	deviceToken := &devicedomain.DeviceToken{
		ID:         uuid.New().String(),
		Token:      token,
		DeviceInfo: deviceInfo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Atomic upsert: INSERT ... ON CONFLICT (token) DO UPDATE
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"device_info", "updated_at"}),
	}).Create(deviceToken).Error
}

// ListTokens returns every registered token
func (r *deviceTokenRepository) ListTokens() ([]string, error) {
	var tokens []string
	err := r.db.Model(&devicedomain.DeviceToken{}).Order("created_at ASC").Pluck("token", &tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *deviceTokenRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&devicedomain.DeviceToken{}).Count(&count).Error
	return count, err
}

// DeleteToken removes a specific device token
func (r *deviceTokenRepository) DeleteToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&devicedomain.DeviceToken{}).Error
}
