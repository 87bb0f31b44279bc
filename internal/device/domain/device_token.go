package domain

import "time"

// DeviceToken is a Firebase Cloud Messaging token of a client that wants push alerts
type DeviceToken struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Token      string    `json:"-" gorm:"uniqueIndex;not null"` // Don't expose token in JSON
	DeviceInfo string    `json:"deviceInfo"`                    // Browser/device metadata
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (DeviceToken) TableName() string {
	return "device_tokens"
}
