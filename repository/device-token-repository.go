package repository

import (
	"time"

	"sharyat/app_error"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeviceToken struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      *uuid.UUID `gorm:"type:uuid;index"`
	User        *User      `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	DeviceToken string     `gorm:"size:255;uniqueIndex;not null"`
	Platform    string     `gorm:"size:20;not null"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}

type DeviceTokenRepository struct {
	DB *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{DB: db}
}

func (r *DeviceTokenRepository) GetByToken(token string) (*DeviceToken, error) {
	var deviceToken DeviceToken
	result := r.DB.First(&deviceToken, "device_token = ?", token)
	if result.Error != nil {
		return nil, result.Error
	}
	return &deviceToken, nil
}

func (r *DeviceTokenRepository) FindAll() ([]*DeviceToken, error) {
	tokens := make([]*DeviceToken, 0)
	result := r.DB.Find(&tokens)
	if result.Error != nil {
		return nil, result.Error
	}
	return tokens, nil
}

func (r *DeviceTokenRepository) Save(token *DeviceToken) (*DeviceToken, error) {
	result := r.DB.Save(token)
	if result.Error != nil {
		return nil, result.Error
	}
	return token, nil
}

func (r *DeviceTokenRepository) DeleteByToken(token string) error {
	result := r.DB.Delete(&DeviceToken{}, "device_token = ?", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NotFound("device token not found")
	}
	return nil
}
