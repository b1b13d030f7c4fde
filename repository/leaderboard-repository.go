package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Leaderboard is a derived cache row, fully rebuildable from race results.
// Never the source of truth.
type Leaderboard struct {
	Id                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Year                 int        `gorm:"not null;uniqueIndex:uq_leaderboard_key"`
	Month                int        `gorm:"not null;uniqueIndex:uq_leaderboard_key"`
	RegionType           RegionType `gorm:"type:sharyat.region_type;not null;uniqueIndex:uq_leaderboard_key"`
	RegionId             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_leaderboard_key"`
	BullId               uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_leaderboard_key"`
	Bull                 *Bull      `gorm:"foreignKey:BullId;constraint:OnDelete:CASCADE"`
	Rank                 int        `gorm:"not null"`
	FirstPlaceWins       int        `gorm:"not null"`
	TotalRaces           int        `gorm:"not null"`
	BestTimeMilliseconds *int
	CreatedAt            time.Time
}

// BullWinRow is one aggregated row of the monthly ranking query.
type BullWinRow struct {
	BullId               uuid.UUID
	FirstPlaceWins       int
	BestTimeMilliseconds *int
}

type BullRaceCountRow struct {
	BullId     uuid.UUID
	TotalRaces int
}

type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

func (r *LeaderboardRepository) GetEntries(year, month int, regionType RegionType, regionId uuid.UUID) ([]*Leaderboard, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetLeaderboardEntries"))
	defer timer.ObserveDuration()

	entries := make([]*Leaderboard, 0)
	result := r.DB.Preload("Bull").Preload("Bull.Owner").
		Where("year = ? AND month = ? AND region_type = ? AND region_id = ?", year, month, regionType, regionId).
		Order("rank").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// ReplaceEntries swaps the cached rows for one (year, month, region) key.
// Delete and insert run in one transaction so readers never see a partial set.
func (r *LeaderboardRepository) ReplaceEntries(year, month int, regionType RegionType, regionId uuid.UUID, entries []*Leaderboard) error {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("ReplaceLeaderboardEntries"))
	defer timer.ObserveDuration()

	return r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("year = ? AND month = ? AND region_type = ? AND region_id = ?", year, month, regionType, regionId).
			Delete(&Leaderboard{}).Error
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.CreateInBatches(entries, 100).Error
	})
}

// TopBullsByWins ranks bulls by first-place wins with best time as tie break,
// scoped to completed races in the given villages and date window. A bull in
// either team slot counts as a participant.
func (r *LeaderboardRepository) TopBullsByWins(from, to time.Time, villageIds []uuid.UUID, limit int) ([]*BullWinRow, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("TopBullsByWins"))
	defer timer.ObserveDuration()

	if len(villageIds) == 0 {
		return []*BullWinRow{}, nil
	}
	query := `
	SELECT
		b.id AS bull_id,
		COUNT(*) FILTER (WHERE res.position = 1) AS first_place_wins,
		MIN(res.time_milliseconds) AS best_time_milliseconds
	FROM sharyat.race_results AS res
	JOIN sharyat.race_days AS day ON day.id = res.race_day_id
	JOIN sharyat.races AS race ON race.id = day.race_id
	JOIN sharyat.bulls AS b ON b.id IN (res.bull1_id, res.bull2_id)
	WHERE day.race_date >= @from AND day.race_date < @to
		AND race.status = 'completed'
		AND res.is_disqualified = false
		AND race.village_id IN @villageIds
	GROUP BY b.id
	ORDER BY first_place_wins DESC, best_time_milliseconds ASC
	LIMIT @limit
	`
	rows := make([]*BullWinRow, 0)
	err := r.DB.Raw(query, map[string]interface{}{"from": from, "to": to, "villageIds": villageIds, "limit": limit}).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RaceCountsForBulls counts all non-disqualified participations (not just
// wins) per bull in the same window and region scope.
func (r *LeaderboardRepository) RaceCountsForBulls(from, to time.Time, villageIds []uuid.UUID, bullIds []uuid.UUID) (map[uuid.UUID]int, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("RaceCountsForBulls"))
	defer timer.ObserveDuration()

	counts := make(map[uuid.UUID]int)
	if len(villageIds) == 0 || len(bullIds) == 0 {
		return counts, nil
	}
	query := `
	SELECT
		b.id AS bull_id,
		COUNT(*) AS total_races
	FROM sharyat.race_results AS res
	JOIN sharyat.race_days AS day ON day.id = res.race_day_id
	JOIN sharyat.races AS race ON race.id = day.race_id
	JOIN sharyat.bulls AS b ON b.id IN (res.bull1_id, res.bull2_id)
	WHERE day.race_date >= @from AND day.race_date < @to
		AND race.status = 'completed'
		AND res.is_disqualified = false
		AND race.village_id IN @villageIds
		AND b.id IN @bullIds
	GROUP BY b.id
	`
	rows := make([]*BullRaceCountRow, 0)
	err := r.DB.Raw(query, map[string]interface{}{"from": from, "to": to, "villageIds": villageIds, "bullIds": bullIds}).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.BullId] = row.TotalRaces
	}
	return counts, nil
}
