package service

import (
	"sharyat/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnerService struct {
	ownerRepository *repository.OwnerRepository
}

func NewOwnerService(db *gorm.DB) *OwnerService {
	return &OwnerService{
		ownerRepository: repository.NewOwnerRepository(db),
	}
}

func (s *OwnerService) GetOwnerById(ownerId uuid.UUID) (*repository.Owner, error) {
	return s.ownerRepository.GetOwnerById(ownerId)
}

func (s *OwnerService) ListOwners(offset, limit int, search string) ([]*repository.Owner, int64, error) {
	return s.ownerRepository.List(offset, limit, search)
}

func (s *OwnerService) SaveOwner(owner *repository.Owner) (*repository.Owner, error) {
	return s.ownerRepository.Save(owner)
}

func (s *OwnerService) UpdateOwner(ownerId uuid.UUID, update *repository.Owner) (*repository.Owner, error) {
	owner, err := s.ownerRepository.GetOwnerById(ownerId)
	if err != nil {
		return nil, err
	}
	if update.FullName != "" {
		owner.FullName = update.FullName
	}
	if update.PhoneNumber != nil {
		owner.PhoneNumber = update.PhoneNumber
	}
	if update.Email != nil {
		owner.Email = update.Email
	}
	if update.Address != nil {
		owner.Address = update.Address
	}
	if update.PhotoUrl != nil {
		owner.PhotoUrl = update.PhotoUrl
	}
	if update.ThumbnailUrl != nil {
		owner.ThumbnailUrl = update.ThumbnailUrl
	}
	return s.ownerRepository.Save(owner)
}

// DeleteOwner fails with a constraint violation while bulls still reference
// the owner.
func (s *OwnerService) DeleteOwner(ownerId uuid.UUID) error {
	return s.ownerRepository.Delete(ownerId)
}
