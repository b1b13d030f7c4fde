package service

import (
	"time"

	"sharyat/app_error"
	"sharyat/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxAvailableListingsPerUser caps how many unsold listings a single user can
// have live at once.
const maxAvailableListingsPerUser = 5

type UserBullService struct {
	userBullRepository *repository.UserBullRepository
}

func NewUserBullService(db *gorm.DB) *UserBullService {
	return &UserBullService{
		userBullRepository: repository.NewUserBullRepository(db),
	}
}

func (s *UserBullService) GetListingById(listingId uuid.UUID) (*repository.UserBullSell, error) {
	return s.userBullRepository.GetListingById(listingId)
}

func (s *UserBullService) ListForUser(userId uuid.UUID) ([]*repository.UserBullSell, error) {
	return s.userBullRepository.ListForUser(userId)
}

func (s *UserBullService) ListPublic(offset, limit int, search string) ([]*repository.UserBullSell, int64, error) {
	return s.userBullRepository.ListPublic(offset, limit, search)
}

// CreateListing enforces the per-user cap and stamps the expiration date.
func (s *UserBullService) CreateListing(userId uuid.UUID, listing *repository.UserBullSell) (*repository.UserBullSell, error) {
	count, err := s.userBullRepository.CountAvailableForUser(userId)
	if err != nil {
		return nil, err
	}
	if count >= maxAvailableListingsPerUser {
		return nil, app_error.ConstraintViolation("at most %d active listings allowed per user", maxAvailableListingsPerUser)
	}
	listing.UserId = userId
	listing.Status = repository.ListingAvailable
	listing.ExpiresAt = time.Now().Add(repository.ListingLifetime)
	return s.userBullRepository.Save(listing)
}

func (s *UserBullService) UpdateListing(userId, listingId uuid.UUID, update *repository.UserBullSell) (*repository.UserBullSell, error) {
	listing, err := s.ownedListing(userId, listingId)
	if err != nil {
		return nil, err
	}
	if update.Name != "" {
		listing.Name = update.Name
	}
	if update.Breed != nil {
		listing.Breed = update.Breed
	}
	if update.BirthYear != nil {
		listing.BirthYear = update.BirthYear
	}
	if update.Color != nil {
		listing.Color = update.Color
	}
	if update.Description != nil {
		listing.Description = update.Description
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
	if update.Location != nil {
		listing.Location = update.Location
	}
	if update.OwnerName != "" {
		listing.OwnerName = update.OwnerName
	}
	if update.OwnerMobile != "" {
		listing.OwnerMobile = update.OwnerMobile
	}
	return s.userBullRepository.Save(listing)
}

// MarkSold is terminal for a listing; sold listings never revert to available.
func (s *UserBullService) MarkSold(userId, listingId uuid.UUID) (*repository.UserBullSell, error) {
	listing, err := s.ownedListing(userId, listingId)
	if err != nil {
		return nil, err
	}
	listing.Status = repository.ListingSold
	return s.userBullRepository.Save(listing)
}

func (s *UserBullService) DeleteListing(userId, listingId uuid.UUID) error {
	if _, err := s.ownedListing(userId, listingId); err != nil {
		return err
	}
	return s.userBullRepository.Delete(listingId)
}

// ExpireOverdueListings is run from the daily job.
func (s *UserBullService) ExpireOverdueListings() (int64, error) {
	expired, err := s.userBullRepository.ExpireOverdue(time.Now())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		logrus.WithField("count", expired).Info("expired overdue user listings")
	}
	return expired, nil
}

// ownedListing hides other users' listings behind a not-found instead of
// leaking their existence.
func (s *UserBullService) ownedListing(userId, listingId uuid.UUID) (*repository.UserBullSell, error) {
	listing, err := s.userBullRepository.GetListingById(listingId)
	if err != nil {
		return nil, err
	}
	if listing.UserId != userId {
		return nil, app_error.NotFound("listing %s not found", listingId)
	}
	return listing, nil
}
