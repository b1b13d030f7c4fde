package service

import (
	"sort"
	"time"

	"sharyat/repository"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const leaderboardSize = 10

var leaderboardComputeDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "leaderboard_compute_duration_s",
	Help: "Duration of a monthly leaderboard recomputation",
}, []string{"region_type"})

// LeaderboardService produces the monthly top-10 bull ranking per region and
// keeps the denormalized cache table in sync. The cache is never the source
// of truth; every row is rebuildable from race results.
type LeaderboardService struct {
	leaderboardRepository *repository.LeaderboardRepository
	regionRepository      *repository.RegionRepository
	bullRepository        *repository.BullRepository
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{
		leaderboardRepository: repository.NewLeaderboardRepository(db),
		regionRepository:      repository.NewRegionRepository(db),
		bullRepository:        repository.NewBullRepository(db),
	}
}

// monthWindow returns the half-open interval [first-of-month, first-of-next).
func monthWindow(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// sortByWinsThenTime orders by win count descending, then best time
// ascending. A lower time is better; a missing time ranks last among equals.
func sortByWinsThenTime(rows []*repository.BullWinRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FirstPlaceWins != rows[j].FirstPlaceWins {
			return rows[i].FirstPlaceWins > rows[j].FirstPlaceWins
		}
		a, b := rows[i].BestTimeMilliseconds, rows[j].BestTimeMilliseconds
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
}

// GetLeaderboard serves from the cache table; on a miss it computes fresh,
// persists and returns the new entries.
func (s *LeaderboardService) GetLeaderboard(year, month int, regionType repository.RegionType, regionId uuid.UUID) ([]*repository.Leaderboard, error) {
	entries, err := s.leaderboardRepository.GetEntries(year, month, regionType, regionId)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return entries, nil
	}
	return s.ComputeAndSave(year, month, regionType, regionId)
}

// ComputeAndSave recomputes the ranking for one (year, month, region) key and
// replaces the cached rows unconditionally.
func (s *LeaderboardService) ComputeAndSave(year, month int, regionType repository.RegionType, regionId uuid.UUID) ([]*repository.Leaderboard, error) {
	t := time.Now()
	defer func() {
		leaderboardComputeDuration.WithLabelValues(string(regionType)).Set(time.Since(t).Seconds())
	}()

	from, to := monthWindow(year, month)
	villageIds, err := s.regionRepository.ResolveVillageIds(regionType, regionId)
	if err != nil {
		return nil, err
	}

	rows, err := s.leaderboardRepository.TopBullsByWins(from, to, villageIds, leaderboardSize)
	if err != nil {
		return nil, err
	}
	// the query already orders; re-sorting keeps rank assignment independent
	// of the storage layer and pins the tie-break rule in one place
	sortByWinsThenTime(rows)

	bullIds := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		bullIds = append(bullIds, row.BullId)
	}
	raceCounts, err := s.leaderboardRepository.RaceCountsForBulls(from, to, villageIds, bullIds)
	if err != nil {
		return nil, err
	}

	entries := make([]*repository.Leaderboard, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, &repository.Leaderboard{
			Year:                 year,
			Month:                month,
			RegionType:           regionType,
			RegionId:             regionId,
			BullId:               row.BullId,
			Rank:                 i + 1,
			FirstPlaceWins:       row.FirstPlaceWins,
			TotalRaces:           raceCounts[row.BullId],
			BestTimeMilliseconds: row.BestTimeMilliseconds,
		})
	}
	if err := s.leaderboardRepository.ReplaceEntries(year, month, regionType, regionId, entries); err != nil {
		return nil, err
	}
	return s.leaderboardRepository.GetEntries(year, month, regionType, regionId)
}

// RefreshAllForMonth recomputes every region at every level. Used for
// backfills after data corrections. Returns the number of leaderboards
// refreshed.
func (s *LeaderboardService) RefreshAllForMonth(year, month int) (int, error) {
	count := 0
	for _, regionType := range []repository.RegionType{
		repository.RegionDistrict,
		repository.RegionTaluka,
		repository.RegionTahsil,
		repository.RegionVillage,
	} {
		regionIds, err := s.regionRepository.AllRegionIds(regionType)
		if err != nil {
			return count, err
		}
		for _, regionId := range regionIds {
			if _, err := s.ComputeAndSave(year, month, regionType, regionId); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"region_type": regionType,
					"region_id":   regionId,
				}).Error("leaderboard refresh failed for region")
				return count, err
			}
			count++
		}
	}
	return count, nil
}
