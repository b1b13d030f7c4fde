package repository

import (
	"time"

	"sharyat/app_error"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// ListingLifetime is the hard expiration applied to user listings at
// creation time.
const ListingLifetime = 30 * 24 * time.Hour

// UserBullSell is a user-submitted bull-for-sale listing. Users are capped at
// a fixed number of concurrently available listings; the cap is enforced in
// the service before insert.
type UserBullSell struct {
	Id           uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID     `gorm:"type:uuid;not null;index:ix_user_bulls_sell_user_status"`
	User         *User         `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	Name         string        `gorm:"size:200;not null;index"`
	Breed        *string       `gorm:"size:100"`
	BirthYear    *int
	Color        *string       `gorm:"size:50"`
	Description  *string       `gorm:"type:text"`
	Price        float64       `gorm:"not null"`
	ImageUrl     string        `gorm:"size:500;not null"`
	ThumbnailUrl *string       `gorm:"size:500"`
	Location     *string       `gorm:"size:200"`
	OwnerName    string        `gorm:"size:200;not null"`
	OwnerMobile  string        `gorm:"size:20;not null"`
	Status       ListingStatus `gorm:"type:sharyat.listing_status;not null;default:'available';index:ix_user_bulls_sell_user_status"`
	CreatedAt    time.Time     `gorm:"index"`
	UpdatedAt    time.Time
	ExpiresAt    time.Time     `gorm:"not null;index"`
}

type UserBullRepository struct {
	DB *gorm.DB
}

func NewUserBullRepository(db *gorm.DB) *UserBullRepository {
	return &UserBullRepository{DB: db}
}

func (r *UserBullRepository) GetListingById(listingId uuid.UUID) (*UserBullSell, error) {
	var listing UserBullSell
	result := r.DB.First(&listing, "id = ?", listingId)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, app_error.NotFound("listing %s not found", listingId)
		}
		return nil, result.Error
	}
	return &listing, nil
}

func (r *UserBullRepository) ListForUser(userId uuid.UUID) ([]*UserBullSell, error) {
	listings := make([]*UserBullSell, 0)
	result := r.DB.Order("created_at DESC").Find(&listings, "user_id = ?", userId)
	if result.Error != nil {
		return nil, result.Error
	}
	return listings, nil
}

func (r *UserBullRepository) ListPublic(offset, limit int, search string) ([]*UserBullSell, int64, error) {
	query := r.DB.Model(&UserBullSell{}).Where("status = ?", ListingAvailable)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	listings := make([]*UserBullSell, 0)
	result := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&listings)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return listings, total, nil
}

func (r *UserBullRepository) CountAvailableForUser(userId uuid.UUID) (int64, error) {
	var count int64
	result := r.DB.Model(&UserBullSell{}).
		Where("user_id = ? AND status = ?", userId, ListingAvailable).
		Count(&count)
	return count, result.Error
}

func (r *UserBullRepository) Save(listing *UserBullSell) (*UserBullSell, error) {
	result := r.DB.Save(listing)
	if result.Error != nil {
		return nil, result.Error
	}
	return listing, nil
}

func (r *UserBullRepository) Delete(listingId uuid.UUID) error {
	result := r.DB.Delete(&UserBullSell{}, "id = ?", listingId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NotFound("listing %s not found", listingId)
	}
	return nil
}

// ExpireOverdue flips every available listing past its expiration date to
// expired. Returns the number of rows changed.
func (r *UserBullRepository) ExpireOverdue(now time.Time) (int64, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("ExpireOverdueListings"))
	defer timer.ObserveDuration()

	result := r.DB.Model(&UserBullSell{}).
		Where("status = ? AND expires_at < ?", ListingAvailable, now).
		Update("status", ListingExpired)
	return result.RowsAffected, result.Error
}
