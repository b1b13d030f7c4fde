package service

import (
	"sharyat/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarketplaceService struct {
	marketplaceRepository *repository.MarketplaceRepository
}

func NewMarketplaceService(db *gorm.DB) *MarketplaceService {
	return &MarketplaceService{
		marketplaceRepository: repository.NewMarketplaceRepository(db),
	}
}

func (s *MarketplaceService) GetListingById(listingId uuid.UUID) (*repository.MarketplaceListing, error) {
	return s.marketplaceRepository.GetListingById(listingId)
}

func (s *MarketplaceService) ListListings(offset, limit int, status *repository.ListingStatus, search string) ([]*repository.MarketplaceListing, int64, error) {
	return s.marketplaceRepository.List(offset, limit, status, search)
}

func (s *MarketplaceService) CreateListing(listing *repository.MarketplaceListing) (*repository.MarketplaceListing, error) {
	if listing.Status == "" {
		listing.Status = repository.ListingAvailable
	}
	return s.marketplaceRepository.Save(listing)
}

func (s *MarketplaceService) UpdateListing(listingId uuid.UUID, update *repository.MarketplaceListing) (*repository.MarketplaceListing, error) {
	listing, err := s.marketplaceRepository.GetListingById(listingId)
	if err != nil {
		return nil, err
	}
	if update.Name != "" {
		listing.Name = update.Name
	}
	if update.OwnerName != "" {
		listing.OwnerName = update.OwnerName
	}
	if update.OwnerMobile != "" {
		listing.OwnerMobile = update.OwnerMobile
	}
	if update.Location != "" {
		listing.Location = update.Location
	}
	if update.Price > 0 {
		listing.Price = update.Price
	}
	if update.ImageUrl != "" {
		listing.ImageUrl = update.ImageUrl
	}
	if update.ThumbnailUrl != nil {
		listing.ThumbnailUrl = update.ThumbnailUrl
	}
	if update.Description != nil {
		listing.Description = update.Description
	}
	if update.Status != "" {
		listing.Status = update.Status
	}
	return s.marketplaceRepository.Save(listing)
}

func (s *MarketplaceService) DeleteListing(listingId uuid.UUID) error {
	return s.marketplaceRepository.Delete(listingId)
}
