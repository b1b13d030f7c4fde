package service

import (
	"sharyat/app_error"
	"sharyat/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BullService struct {
	bullRepository  *repository.BullRepository
	ownerRepository *repository.OwnerRepository
}

func NewBullService(db *gorm.DB) *BullService {
	return &BullService{
		bullRepository:  repository.NewBullRepository(db),
		ownerRepository: repository.NewOwnerRepository(db),
	}
}

func (s *BullService) GetBullById(bullId uuid.UUID) (*repository.Bull, error) {
	return s.bullRepository.GetBullById(bullId)
}

func (s *BullService) ListBulls(params repository.BullListParams) ([]*repository.Bull, int64, error) {
	return s.bullRepository.List(params)
}

// CreateBull requires an existing owner and a free registration number.
func (s *BullService) CreateBull(bull *repository.Bull) (*repository.Bull, error) {
	if _, err := s.ownerRepository.GetOwnerById(bull.OwnerId); err != nil {
		return nil, err
	}
	if bull.RegistrationNumber != nil {
		if _, err := s.bullRepository.GetBullByRegistrationNumber(*bull.RegistrationNumber); err == nil {
			return nil, app_error.ConstraintViolation("registration number %q already exists", *bull.RegistrationNumber)
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}
	return s.bullRepository.Save(bull)
}

// UpdateBull applies only the fields present in the update. The active flag
// comes in separately as a pointer so an omitted is_active leaves the bull's
// current state untouched.
func (s *BullService) UpdateBull(bullId uuid.UUID, update *repository.Bull, isActive *bool) (*repository.Bull, error) {
	bull, err := s.bullRepository.GetBullById(bullId)
	if err != nil {
		return nil, err
	}
	if update.OwnerId != uuid.Nil && update.OwnerId != bull.OwnerId {
		if _, err := s.ownerRepository.GetOwnerById(update.OwnerId); err != nil {
			return nil, err
		}
		bull.OwnerId = update.OwnerId
	}
	if update.RegistrationNumber != nil &&
		(bull.RegistrationNumber == nil || *update.RegistrationNumber != *bull.RegistrationNumber) {
		if existing, err := s.bullRepository.GetBullByRegistrationNumber(*update.RegistrationNumber); err == nil && existing.Id != bull.Id {
			return nil, app_error.ConstraintViolation("registration number %q already exists", *update.RegistrationNumber)
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
		bull.RegistrationNumber = update.RegistrationNumber
	}
	if update.Name != "" {
		bull.Name = update.Name
	}
	if update.BirthYear != nil {
		bull.BirthYear = update.BirthYear
	}
	if update.Breed != nil {
		bull.Breed = update.Breed
	}
	if update.Color != nil {
		bull.Color = update.Color
	}
	if update.PhotoUrl != nil {
		bull.PhotoUrl = update.PhotoUrl
	}
	if update.ThumbnailUrl != nil {
		bull.ThumbnailUrl = update.ThumbnailUrl
	}
	if update.Description != nil {
		bull.Description = update.Description
	}
	if update.VillageId != nil {
		bull.VillageId = update.VillageId
	}
	if isActive != nil {
		bull.IsActive = *isActive
	}
	bull.Owner = nil
	return s.bullRepository.Save(bull)
}

func (s *BullService) DeleteBull(bullId uuid.UUID) error {
	return s.bullRepository.Delete(bullId)
}
