package repository

import (
	"time"

	"sharyat/app_error"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingStatus string

const (
	ListingAvailable ListingStatus = "available"
	ListingSold      ListingStatus = "sold"
	ListingExpired   ListingStatus = "expired"
	ListingHidden    ListingStatus = "hidden"
)

// MarketplaceListing is an admin-curated sale listing, not tied to a
// registered Bull row.
type MarketplaceListing struct {
	Id           uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string        `gorm:"size:200;not null;index"`
	OwnerName    string        `gorm:"size:200;not null"`
	OwnerMobile  string        `gorm:"size:20;not null"`
	Location     string        `gorm:"size:200;not null"`
	Price        float64       `gorm:"not null"`
	ImageUrl     string        `gorm:"size:500;not null"`
	ThumbnailUrl *string       `gorm:"size:500"`
	Description  *string       `gorm:"type:text"`
	Status       ListingStatus `gorm:"type:sharyat.listing_status;not null;default:'available';index"`
	CreatedAt    time.Time     `gorm:"index"`
	UpdatedAt    time.Time
}

type MarketplaceRepository struct {
	DB *gorm.DB
}

func NewMarketplaceRepository(db *gorm.DB) *MarketplaceRepository {
	return &MarketplaceRepository{DB: db}
}

func (r *MarketplaceRepository) GetListingById(listingId uuid.UUID) (*MarketplaceListing, error) {
	var listing MarketplaceListing
	result := r.DB.First(&listing, "id = ?", listingId)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, app_error.NotFound("listing %s not found", listingId)
		}
		return nil, result.Error
	}
	return &listing, nil
}

func (r *MarketplaceRepository) List(offset, limit int, status *ListingStatus, search string) ([]*MarketplaceListing, int64, error) {
	query := r.DB.Model(&MarketplaceListing{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR location ILIKE ?", pattern, pattern)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	listings := make([]*MarketplaceListing, 0)
	result := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&listings)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return listings, total, nil
}

func (r *MarketplaceRepository) Save(listing *MarketplaceListing) (*MarketplaceListing, error) {
	result := r.DB.Save(listing)
	if result.Error != nil {
		return nil, result.Error
	}
	return listing, nil
}

func (r *MarketplaceRepository) Delete(listingId uuid.UUID) error {
	result := r.DB.Delete(&MarketplaceListing{}, "id = ?", listingId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NotFound("listing %s not found", listingId)
	}
	return nil
}
