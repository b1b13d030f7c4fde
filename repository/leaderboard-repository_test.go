package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveVillageIdsRollsUpAllLevels(t *testing.T) {
	defer TearDown()
	district, taluka, tahsil, villages := SetUpRegions()
	repo := NewRegionRepository(db)

	ids, err := repo.ResolveVillageIds(RegionVillage, villages[0].Id)
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{villages[0].Id}, ids)

	for _, regionRef := range []struct {
		regionType RegionType
		regionId   uuid.UUID
	}{
		{RegionTahsil, tahsil.Id},
		{RegionTaluka, taluka.Id},
		{RegionDistrict, district.Id},
	} {
		ids, err := repo.ResolveVillageIds(regionRef.regionType, regionRef.regionId)
		assert.NoError(t, err)
		assert.ElementsMatch(t, villageIdsOf(villages), ids)
	}
}

func TestResolveVillageIdsUnknownRegion(t *testing.T) {
	defer TearDown()
	SetUpRegions()
	repo := NewRegionRepository(db)

	ids, err := repo.ResolveVillageIds(RegionDistrict, uuid.New())
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTopBullsByWinsOrdering(t *testing.T) {
	defer TearDown()
	_, _, _, villages := SetUpRegions()
	owner, bulls, race := SetUpRace()
	race.VillageId = &villages[0].Id
	assert.NoError(t, db.Save(race).Error)

	// a third bull with the same win count but a slower best time
	slowBull := &Bull{Name: "Vajra", OwnerId: owner.Id, IsActive: true}
	assert.NoError(t, db.Create(slowBull).Error)

	day1 := createDay(race, 1, date(2025, 6, 1))
	day2 := createDay(race, 2, date(2025, 6, 2))
	day3 := createDay(race, 3, date(2025, 6, 3))

	// bulls[0]: two wins; bulls[1]: one win, fast; slowBull: one win, slow
	createResult(day1, bulls[0], 1, 11500, false)
	createResult(day2, bulls[0], 1, 11700, false)
	createResult(day1, bulls[1], 2, 12000, false)
	createResult(day3, bulls[1], 1, 11800, false)
	createResult(day2, slowBull, 2, 13000, false)
	createResult(day3, slowBull, 2, 12900, false)

	repo := NewLeaderboardRepository(db)
	from, to := date(2025, 6, 1), date(2025, 7, 1)
	rows, err := repo.TopBullsByWins(from, to, villageIdsOf(villages), 10)
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, bulls[0].Id, rows[0].BullId, "most wins ranks first")
	assert.Equal(t, bulls[1].Id, rows[1].BullId, "equal wins break ties on best time")
	assert.Equal(t, slowBull.Id, rows[2].BullId)
	assert.Equal(t, 2, rows[0].FirstPlaceWins)
	assert.Equal(t, 11500, *rows[0].BestTimeMilliseconds)
}

func TestTopBullsByWinsScopesByVillageAndWindow(t *testing.T) {
	defer TearDown()
	_, _, _, villages := SetUpRegions()
	_, bulls, race := SetUpRace()
	race.VillageId = &villages[0].Id
	assert.NoError(t, db.Save(race).Error)

	day := createDay(race, 1, date(2025, 6, 1))
	createResult(day, bulls[0], 1, 11500, false)

	repo := NewLeaderboardRepository(db)

	// wrong village scope
	rows, err := repo.TopBullsByWins(date(2025, 6, 1), date(2025, 7, 1), []uuid.UUID{villages[1].Id}, 10)
	assert.NoError(t, err)
	assert.Empty(t, rows)

	// wrong month
	rows, err = repo.TopBullsByWins(date(2025, 7, 1), date(2025, 8, 1), villageIdsOf(villages), 10)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLeaderboardEntriesRoundTrip(t *testing.T) {
	defer TearDown()
	_, _, _, villages := SetUpRegions()
	_, bulls, _ := SetUpRace()
	repo := NewLeaderboardRepository(db)

	entries := []*Leaderboard{
		{Year: 2025, Month: 6, RegionType: RegionVillage, RegionId: villages[0].Id, BullId: bulls[0].Id, Rank: 1, FirstPlaceWins: 2, TotalRaces: 3, BestTimeMilliseconds: ptr(11500)},
		{Year: 2025, Month: 6, RegionType: RegionVillage, RegionId: villages[0].Id, BullId: bulls[1].Id, Rank: 2, FirstPlaceWins: 1, TotalRaces: 2, BestTimeMilliseconds: ptr(11900)},
	}
	assert.NoError(t, repo.ReplaceEntries(2025, 6, RegionVillage, villages[0].Id, entries))

	stored, err := repo.GetEntries(2025, 6, RegionVillage, villages[0].Id)
	assert.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Equal(t, 1, stored[0].Rank)
	assert.Equal(t, bulls[0].Id, stored[0].BullId)
	assert.NotNil(t, stored[0].Bull, "entries preload the bull")

	// replacing drops the old rows for the key
	replacement := []*Leaderboard{
		{Year: 2025, Month: 6, RegionType: RegionVillage, RegionId: villages[0].Id, BullId: bulls[1].Id, Rank: 1, FirstPlaceWins: 5, TotalRaces: 5, BestTimeMilliseconds: ptr(11000)},
	}
	assert.NoError(t, repo.ReplaceEntries(2025, 6, RegionVillage, villages[0].Id, replacement))
	stored, err = repo.GetEntries(2025, 6, RegionVillage, villages[0].Id)
	assert.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, bulls[1].Id, stored[0].BullId)
}
