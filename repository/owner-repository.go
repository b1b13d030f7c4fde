package repository

import (
	"time"

	"sharyat/app_error"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Owner struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName     string    `gorm:"size:200;not null;index"`
	PhoneNumber  *string   `gorm:"size:15;index"`
	Email        *string   `gorm:"size:255"`
	Address      *string   `gorm:"type:text"`
	PhotoUrl     *string   `gorm:"size:500"`
	ThumbnailUrl *string   `gorm:"size:500"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
	Bulls        []*Bull   `gorm:"foreignKey:OwnerId;constraint:OnDelete:RESTRICT"`
}

type OwnerRepository struct {
	DB *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) *OwnerRepository {
	return &OwnerRepository{DB: db}
}

func (r *OwnerRepository) GetOwnerById(ownerId uuid.UUID) (*Owner, error) {
	var owner Owner
	result := r.DB.First(&owner, "id = ?", ownerId)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, app_error.NotFound("owner %s not found", ownerId)
		}
		return nil, result.Error
	}
	return &owner, nil
}

func (r *OwnerRepository) List(offset, limit int, search string) ([]*Owner, int64, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("ListOwners"))
	defer timer.ObserveDuration()

	query := r.DB.Model(&Owner{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("full_name ILIKE ? OR phone_number ILIKE ?", pattern, pattern)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	owners := make([]*Owner, 0)
	result := query.Order("full_name").Offset(offset).Limit(limit).Find(&owners)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return owners, total, nil
}

func (r *OwnerRepository) Save(owner *Owner) (*Owner, error) {
	result := r.DB.Save(owner)
	if result.Error != nil {
		return nil, result.Error
	}
	return owner, nil
}

func (r *OwnerRepository) CountBulls(ownerId uuid.UUID) (int64, error) {
	var count int64
	result := r.DB.Model(&Bull{}).Where("owner_id = ?", ownerId).Count(&count)
	return count, result.Error
}

// Delete refuses to remove an owner that still has bulls registered.
func (r *OwnerRepository) Delete(ownerId uuid.UUID) error {
	count, err := r.CountBulls(ownerId)
	if err != nil {
		return err
	}
	if count > 0 {
		return app_error.ConstraintViolation("owner %s still has %d bulls registered", ownerId, count)
	}
	result := r.DB.Delete(&Owner{}, "id = ?", ownerId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NotFound("owner %s not found", ownerId)
	}
	return nil
}

func (r *OwnerRepository) GetOwnersByIds(ownerIds []uuid.UUID) ([]*Owner, error) {
	owners := make([]*Owner, 0)
	result := r.DB.Find(&owners, "id IN ?", ownerIds)
	if result.Error != nil {
		return nil, result.Error
	}
	return owners, nil
}
