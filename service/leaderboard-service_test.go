package service

import (
	"testing"
	"time"

	"sharyat/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestMonthWindow(t *testing.T) {
	from, to := monthWindow(2025, 6)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestMonthWindowDecemberRollsOver(t *testing.T) {
	from, to := monthWindow(2025, 12)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestSortByWinsThenTime(t *testing.T) {
	first := &repository.BullWinRow{BullId: uuid.New(), FirstPlaceWins: 3, BestTimeMilliseconds: intPtr(12000)}
	second := &repository.BullWinRow{BullId: uuid.New(), FirstPlaceWins: 1, BestTimeMilliseconds: intPtr(11000)}
	third := &repository.BullWinRow{BullId: uuid.New(), FirstPlaceWins: 1, BestTimeMilliseconds: intPtr(11500)}

	rows := []*repository.BullWinRow{third, second, first}
	sortByWinsThenTime(rows)

	assert.Equal(t, first, rows[0], "more wins beat a faster time")
	assert.Equal(t, second, rows[1], "equal wins break ties on best time")
	assert.Equal(t, third, rows[2])
}

func TestSortByWinsThenTimeNilTimesRankLast(t *testing.T) {
	timed := &repository.BullWinRow{BullId: uuid.New(), FirstPlaceWins: 0, BestTimeMilliseconds: intPtr(13000)}
	untimed := &repository.BullWinRow{BullId: uuid.New(), FirstPlaceWins: 0}

	rows := []*repository.BullWinRow{untimed, timed}
	sortByWinsThenTime(rows)

	assert.Equal(t, timed, rows[0])
	assert.Equal(t, untimed, rows[1])
}

func TestGetLeaderboardComputesOnCacheMiss(t *testing.T) {
	defer clearTables()
	village := seedVillage()
	_, bulls := seedBulls("Sarja", "Raja")
	_, days := seedCompletedRace(village)

	seedResult(days[0], bulls[0], 1, 11000)
	seedResult(days[0], bulls[1], 2, 12000)
	seedResult(days[1], bulls[0], 1, 10800)
	seedResult(days[1], bulls[1], 2, 11900)

	svc := NewLeaderboardService(db)
	entries, err := svc.GetLeaderboard(2025, 6, repository.RegionVillage, village.Id)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, bulls[0].Id, entries[0].BullId)
	assert.Equal(t, 2, entries[0].FirstPlaceWins)
	assert.Equal(t, 2, entries[0].TotalRaces)
	assert.Equal(t, 10800, *entries[0].BestTimeMilliseconds)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, bulls[1].Id, entries[1].BullId)
	assert.Equal(t, 0, entries[1].FirstPlaceWins)
	assert.Equal(t, 2, entries[1].TotalRaces)

	cached, err := repository.NewLeaderboardRepository(db).GetEntries(2025, 6, repository.RegionVillage, village.Id)
	assert.NoError(t, err)
	assert.Len(t, cached, 2, "a read on a cold cache persists the computed rows")
}

func TestGetLeaderboardServesCachedRows(t *testing.T) {
	defer clearTables()
	village := seedVillage()
	_, bulls := seedBulls("Sarja")
	_, days := seedCompletedRace(village)
	seedResult(days[0], bulls[0], 1, 11000)

	svc := NewLeaderboardService(db)
	first, err := svc.GetLeaderboard(2025, 6, repository.RegionVillage, village.Id)
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	// with the source rows gone, only the cache can answer
	assert.NoError(t, db.Exec("DELETE FROM sharyat.race_results").Error)

	second, err := svc.GetLeaderboard(2025, 6, repository.RegionVillage, village.Id)
	assert.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, first[0].BullId, second[0].BullId)
	assert.Equal(t, first[0].FirstPlaceWins, second[0].FirstPlaceWins)

	recomputed, err := svc.ComputeAndSave(2025, 6, repository.RegionVillage, village.Id)
	assert.NoError(t, err)
	assert.Empty(t, recomputed, "an explicit refresh sees the deleted results")
}
