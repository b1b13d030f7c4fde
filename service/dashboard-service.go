package service

import (
	"time"

	"sharyat/repository"

	"gorm.io/gorm"
)

// DashboardCounts feeds the admin panel landing page.
type DashboardCounts struct {
	Owners              int64 `json:"owners"`
	Bulls               int64 `json:"bulls"`
	Races               int64 `json:"races"`
	MarketplaceListings int64 `json:"marketplace_listings"`
	UserListings        int64 `json:"user_listings"`
}

type DashboardService struct {
	db             *gorm.DB
	raceRepository *repository.RaceRepository
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		db:             db,
		raceRepository: repository.NewRaceRepository(db),
	}
}

func (s *DashboardService) GetCounts() (*DashboardCounts, error) {
	counts := &DashboardCounts{}
	models := []struct {
		model  interface{}
		target *int64
	}{
		{&repository.Owner{}, &counts.Owners},
		{&repository.Bull{}, &counts.Bulls},
		{&repository.Race{}, &counts.Races},
		{&repository.MarketplaceListing{}, &counts.MarketplaceListings},
		{&repository.UserBullSell{}, &counts.UserListings},
	}
	for _, m := range models {
		if err := s.db.Model(m.model).Count(m.target).Error; err != nil {
			return nil, err
		}
	}
	return counts, nil
}

// GetUpcomingRaces returns scheduled races starting today or later.
func (s *DashboardService) GetUpcomingRaces(limit int) ([]*repository.Race, error) {
	today := time.Now().Truncate(24 * time.Hour)
	status := repository.StatusScheduled
	races, _, err := s.raceRepository.List(repository.RaceListParams{
		Offset:   0,
		Limit:    limit,
		Status:   &status,
		FromDate: &today,
	})
	return races, err
}
