package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// BullStatistics is a bull's career record across all race days. Both team
// slots count as membership and disqualified runs are excluded everywhere.
type BullStatistics struct {
	TotalRaces           int  `json:"total_races"`
	FirstPlaceWins       int  `json:"first_place_wins"`
	SecondPlaceWins      int  `json:"second_place_wins"`
	ThirdPlaceWins       int  `json:"third_place_wins"`
	BestTimeMilliseconds *int `json:"best_time_milliseconds"`
	AvgTimeMilliseconds  *int `json:"avg_time_milliseconds"`
}

type StatisticsRepository struct {
	DB *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{DB: db}
}

func (r *StatisticsRepository) bullResults(bullId uuid.UUID) *gorm.DB {
	return r.DB.Model(&RaceResult{}).
		Where("(bull1_id = ? OR bull2_id = ?)", bullId, bullId).
		Where("is_disqualified = false")
}

// GetBullStatistics computes the career record for a single bull. A bull with
// no results yields zero counts and nil times.
func (r *StatisticsRepository) GetBullStatistics(bullId uuid.UUID) (*BullStatistics, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetBullStatistics"))
	defer timer.ObserveDuration()

	stats := &BullStatistics{}

	var total int64
	if err := r.bullResults(bullId).Count(&total).Error; err != nil {
		return nil, err
	}
	stats.TotalRaces = int(total)
	if total == 0 {
		return stats, nil
	}

	type positionCount struct {
		Position int
		Count    int
	}
	positionCounts := make([]*positionCount, 0)
	err := r.bullResults(bullId).
		Select("position, COUNT(*) AS count").
		Where("position IN ?", []int{1, 2, 3}).
		Group("position").
		Scan(&positionCounts).Error
	if err != nil {
		return nil, err
	}
	for _, pc := range positionCounts {
		switch pc.Position {
		case 1:
			stats.FirstPlaceWins = pc.Count
		case 2:
			stats.SecondPlaceWins = pc.Count
		case 3:
			stats.ThirdPlaceWins = pc.Count
		}
	}

	type timeAggregates struct {
		BestTime *int
		AvgTime  *float64
	}
	var times timeAggregates
	err = r.bullResults(bullId).
		Select("MIN(time_milliseconds) AS best_time, AVG(time_milliseconds) AS avg_time").
		Scan(&times).Error
	if err != nil {
		return nil, err
	}
	stats.BestTimeMilliseconds = times.BestTime
	if times.AvgTime != nil {
		avg := int(*times.AvgTime)
		stats.AvgTimeMilliseconds = &avg
	}
	return stats, nil
}

// GetBullStatisticsBatch computes stats for many bulls in three grouped scans
// instead of three queries per bull. Listing pages depend on this staying a
// fixed number of round trips.
func (r *StatisticsRepository) GetBullStatisticsBatch(bullIds []uuid.UUID) (map[uuid.UUID]*BullStatistics, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetBullStatisticsBatch"))
	defer timer.ObserveDuration()

	statsMap := make(map[uuid.UUID]*BullStatistics, len(bullIds))
	for _, id := range bullIds {
		statsMap[id] = &BullStatistics{}
	}
	if len(bullIds) == 0 {
		return statsMap, nil
	}

	baseQuery := `
	SELECT b.bull_id, %s
	FROM sharyat.race_results AS res
	JOIN LATERAL (VALUES (res.bull1_id), (res.bull2_id)) AS b(bull_id) ON b.bull_id IS NOT NULL
	WHERE b.bull_id IN @bullIds AND res.is_disqualified = false
	%s
	GROUP BY b.bull_id
	`

	type countRow struct {
		BullId uuid.UUID
		Count  int
	}
	type timeRow struct {
		BullId   uuid.UUID
		BestTime *int
		AvgTime  *float64
	}

	// scan 1: total races
	totals := make([]*countRow, 0)
	query := formatBatchQuery(baseQuery, "COUNT(*) AS count", "")
	if err := r.DB.Raw(query, map[string]interface{}{"bullIds": bullIds}).Scan(&totals).Error; err != nil {
		return nil, err
	}
	for _, row := range totals {
		statsMap[row.BullId].TotalRaces = row.Count
	}

	// scan 2: first place wins
	wins := make([]*countRow, 0)
	query = formatBatchQuery(baseQuery, "COUNT(*) AS count", "AND res.position = 1")
	if err := r.DB.Raw(query, map[string]interface{}{"bullIds": bullIds}).Scan(&wins).Error; err != nil {
		return nil, err
	}
	for _, row := range wins {
		statsMap[row.BullId].FirstPlaceWins = row.Count
	}

	// scan 3: best time
	times := make([]*timeRow, 0)
	query = formatBatchQuery(baseQuery, "MIN(res.time_milliseconds) AS best_time", "")
	if err := r.DB.Raw(query, map[string]interface{}{"bullIds": bullIds}).Scan(&times).Error; err != nil {
		return nil, err
	}
	for _, row := range times {
		statsMap[row.BullId].BestTimeMilliseconds = row.BestTime
	}

	return statsMap, nil
}

func formatBatchQuery(base, selectExpr, extraFilter string) string {
	return fmt.Sprintf(base, selectExpr, extraFilter)
}
