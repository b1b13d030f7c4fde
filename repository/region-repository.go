package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegionType string

const (
	RegionVillage  RegionType = "village"
	RegionTahsil   RegionType = "tahsil"
	RegionTaluka   RegionType = "taluka"
	RegionDistrict RegionType = "district"
)

// Fixed 4-level containment tree: district > taluka > tahsil > village.
// Races are attributed to a village; leaderboards roll villages up.

type District struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"size:100;not null;index"`
	CreatedAt time.Time
}

type Taluka struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"size:100;not null;index"`
	DistrictId uuid.UUID `gorm:"type:uuid;not null;index"`
	District   *District `gorm:"foreignKey:DistrictId;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
}

type Tahsil struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"size:100;not null;index"`
	TalukaId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Taluka    *Taluka   `gorm:"foreignKey:TalukaId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type Village struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"size:100;not null;index"`
	TahsilId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Tahsil    *Tahsil   `gorm:"foreignKey:TahsilId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type RegionRepository struct {
	DB *gorm.DB
}

func NewRegionRepository(db *gorm.DB) *RegionRepository {
	return &RegionRepository{DB: db}
}

// ResolveVillageIds expands a region reference into the set of village ids it
// contains. An unknown region id yields an empty set, not an error.
func (r *RegionRepository) ResolveVillageIds(regionType RegionType, regionId uuid.UUID) ([]uuid.UUID, error) {
	villageIds := make([]uuid.UUID, 0)
	switch regionType {
	case RegionVillage:
		return []uuid.UUID{regionId}, nil
	case RegionTahsil:
		err := r.DB.Model(&Village{}).Where("tahsil_id = ?", regionId).Pluck("id", &villageIds).Error
		return villageIds, err
	case RegionTaluka:
		tahsilIds := make([]uuid.UUID, 0)
		if err := r.DB.Model(&Tahsil{}).Where("taluka_id = ?", regionId).Pluck("id", &tahsilIds).Error; err != nil {
			return nil, err
		}
		if len(tahsilIds) == 0 {
			return villageIds, nil
		}
		err := r.DB.Model(&Village{}).Where("tahsil_id IN ?", tahsilIds).Pluck("id", &villageIds).Error
		return villageIds, err
	case RegionDistrict:
		talukaIds := make([]uuid.UUID, 0)
		if err := r.DB.Model(&Taluka{}).Where("district_id = ?", regionId).Pluck("id", &talukaIds).Error; err != nil {
			return nil, err
		}
		if len(talukaIds) == 0 {
			return villageIds, nil
		}
		tahsilIds := make([]uuid.UUID, 0)
		if err := r.DB.Model(&Tahsil{}).Where("taluka_id IN ?", talukaIds).Pluck("id", &tahsilIds).Error; err != nil {
			return nil, err
		}
		if len(tahsilIds) == 0 {
			return villageIds, nil
		}
		err := r.DB.Model(&Village{}).Where("tahsil_id IN ?", tahsilIds).Pluck("id", &villageIds).Error
		return villageIds, err
	}
	return villageIds, nil
}

// AllRegionIds lists every region at one level, used by the full refresh.
func (r *RegionRepository) AllRegionIds(regionType RegionType) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	var err error
	switch regionType {
	case RegionVillage:
		err = r.DB.Model(&Village{}).Pluck("id", &ids).Error
	case RegionTahsil:
		err = r.DB.Model(&Tahsil{}).Pluck("id", &ids).Error
	case RegionTaluka:
		err = r.DB.Model(&Taluka{}).Pluck("id", &ids).Error
	case RegionDistrict:
		err = r.DB.Model(&District{}).Pluck("id", &ids).Error
	}
	return ids, err
}
