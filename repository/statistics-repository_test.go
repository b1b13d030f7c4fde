package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBullStatisticsWithoutResults(t *testing.T) {
	defer TearDown()
	_, bulls, _ := SetUpRace()
	repo := NewStatisticsRepository(db)

	stats, err := repo.GetBullStatistics(bulls[0].Id)
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.TotalRaces)
	assert.Equal(t, 0, stats.FirstPlaceWins)
	assert.Nil(t, stats.BestTimeMilliseconds)
	assert.Nil(t, stats.AvgTimeMilliseconds)
}

func TestBullStatisticsCountsBothTeamSlots(t *testing.T) {
	defer TearDown()
	_, bulls, race := SetUpRace()
	repo := NewStatisticsRepository(db)

	day1 := createDay(race, 1, date(2025, 6, 1))
	day2 := createDay(race, 2, date(2025, 6, 2))

	// bull 0 wins day 1 in the first slot
	createResult(day1, bulls[0], 1, 11500, false)
	// bull 0 places second on day 2 in the second slot
	result := &RaceResult{
		RaceDayId:        day2.Id,
		Bull1Id:          &bulls[1].Id,
		Bull2Id:          &bulls[0].Id,
		Position:         2,
		TimeMilliseconds: 12500,
	}
	assert.NoError(t, db.Create(result).Error)

	stats, err := repo.GetBullStatistics(bulls[0].Id)
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRaces, "both team slots count as membership")
	assert.Equal(t, 1, stats.FirstPlaceWins)
	assert.Equal(t, 1, stats.SecondPlaceWins)
	assert.Equal(t, 0, stats.ThirdPlaceWins)
	assert.Equal(t, 11500, *stats.BestTimeMilliseconds)
	assert.Equal(t, 12000, *stats.AvgTimeMilliseconds)
}

func TestBullStatisticsExcludesDisqualifiedRuns(t *testing.T) {
	defer TearDown()
	_, bulls, race := SetUpRace()
	repo := NewStatisticsRepository(db)

	day := createDay(race, 1, date(2025, 6, 1))
	createResult(day, bulls[0], 1, 11000, true)

	stats, err := repo.GetBullStatistics(bulls[0].Id)
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.TotalRaces, "disqualified runs never count")
	assert.Nil(t, stats.BestTimeMilliseconds)
}

func TestBullStatisticsBatchMatchesSingle(t *testing.T) {
	defer TearDown()
	_, bulls, race := SetUpRace()
	repo := NewStatisticsRepository(db)

	day1 := createDay(race, 1, date(2025, 6, 1))
	day2 := createDay(race, 2, date(2025, 6, 2))
	createResult(day1, bulls[0], 1, 11500, false)
	createResult(day1, bulls[1], 2, 12100, false)
	createResult(day2, bulls[0], 3, 12900, false)
	createResult(day2, bulls[1], 1, 11800, true)

	bullIds := []uuid.UUID{bulls[0].Id, bulls[1].Id}
	batch, err := repo.GetBullStatisticsBatch(bullIds)
	assert.NoError(t, err)

	for _, bullId := range bullIds {
		single, err := repo.GetBullStatistics(bullId)
		assert.NoError(t, err)
		assert.Equal(t, single.TotalRaces, batch[bullId].TotalRaces)
		assert.Equal(t, single.FirstPlaceWins, batch[bullId].FirstPlaceWins)
		assert.Equal(t, single.BestTimeMilliseconds, batch[bullId].BestTimeMilliseconds)
	}
}

func TestBullStatisticsBatchEmptyInput(t *testing.T) {
	defer TearDown()
	repo := NewStatisticsRepository(db)

	batch, err := repo.GetBullStatisticsBatch(nil)
	assert.NoError(t, err)
	assert.Empty(t, batch)
}
