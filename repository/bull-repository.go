package repository

import (
	"time"

	"sharyat/app_error"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Bull struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string     `gorm:"size:200;not null;index"`
	OwnerId            uuid.UUID  `gorm:"type:uuid;not null;index"`
	Owner              *Owner     `gorm:"foreignKey:OwnerId;constraint:OnDelete:RESTRICT"`
	BirthYear          *int
	Breed              *string    `gorm:"size:100"`
	Color              *string    `gorm:"size:50"`
	PhotoUrl           *string    `gorm:"size:500"`
	ThumbnailUrl       *string    `gorm:"size:500"`
	Description        *string    `gorm:"type:text"`
	IsActive           bool       `gorm:"not null;default:true"`
	RegistrationNumber *string    `gorm:"size:50;uniqueIndex"`
	VillageId          *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type BullListParams struct {
	Offset   int
	Limit    int
	Search   string
	OwnerId  *uuid.UUID
	IsActive *bool
}

type BullRepository struct {
	DB *gorm.DB
}

func NewBullRepository(db *gorm.DB) *BullRepository {
	return &BullRepository{DB: db}
}

func (r *BullRepository) GetBullById(bullId uuid.UUID) (*Bull, error) {
	var bull Bull
	result := r.DB.Preload("Owner").First(&bull, "id = ?", bullId)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, app_error.NotFound("bull %s not found", bullId)
		}
		return nil, result.Error
	}
	return &bull, nil
}

func (r *BullRepository) GetBullByRegistrationNumber(registrationNumber string) (*Bull, error) {
	var bull Bull
	result := r.DB.First(&bull, "registration_number = ?", registrationNumber)
	if result.Error != nil {
		return nil, result.Error
	}
	return &bull, nil
}

func (r *BullRepository) List(params BullListParams) ([]*Bull, int64, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("ListBulls"))
	defer timer.ObserveDuration()

	query := r.DB.Model(&Bull{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR registration_number ILIKE ?", pattern, pattern)
	}
	if params.OwnerId != nil {
		query = query.Where("owner_id = ?", *params.OwnerId)
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	bulls := make([]*Bull, 0)
	result := query.Preload("Owner").Order("name").Offset(params.Offset).Limit(params.Limit).Find(&bulls)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return bulls, total, nil
}

func (r *BullRepository) Save(bull *Bull) (*Bull, error) {
	result := r.DB.Save(bull)
	if result.Error != nil {
		return nil, result.Error
	}
	return bull, nil
}

func (r *BullRepository) Delete(bullId uuid.UUID) error {
	result := r.DB.Delete(&Bull{}, "id = ?", bullId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NotFound("bull %s not found", bullId)
	}
	return nil
}

func (r *BullRepository) GetBullsByIds(bullIds []uuid.UUID) ([]*Bull, error) {
	bulls := make([]*Bull, 0)
	result := r.DB.Preload("Owner").Find(&bulls, "id IN ?", bullIds)
	if result.Error != nil {
		return nil, result.Error
	}
	return bulls, nil
}
