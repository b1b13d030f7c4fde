package service

import (
	"sharyat/repository"
	"sharyat/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatisticsService struct {
	statisticsRepository *repository.StatisticsRepository
	bullRepository       *repository.BullRepository
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{
		statisticsRepository: repository.NewStatisticsRepository(db),
		bullRepository:       repository.NewBullRepository(db),
	}
}

// GetBullStatistics returns a bull's career record. The bull must exist; a
// bull without results gets zero counts and nil times.
func (s *StatisticsService) GetBullStatistics(bullId uuid.UUID) (*repository.BullStatistics, error) {
	if _, err := s.bullRepository.GetBullById(bullId); err != nil {
		return nil, err
	}
	return s.statisticsRepository.GetBullStatistics(bullId)
}

// GetBullStatisticsBatch computes stats for a page of bulls in a fixed number
// of queries regardless of page size.
func (s *StatisticsService) GetBullStatisticsBatch(bullIds []uuid.UUID) (map[uuid.UUID]*repository.BullStatistics, error) {
	return s.statisticsRepository.GetBullStatisticsBatch(utils.Uniques(bullIds))
}
