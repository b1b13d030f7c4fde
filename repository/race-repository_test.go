package repository

import (
	"testing"

	"sharyat/app_error"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestReplaceResultsForDay(t *testing.T) {
	defer TearDown()
	_, bulls, race := SetUpRace()
	repo := NewRaceRepository(db)

	day := &RaceDay{
		RaceId:    race.Id,
		DayNumber: 1,
		RaceDate:  date(2025, 6, 1),
		Status:    StatusScheduled,
	}
	assert.NoError(t, db.Create(day).Error)

	results := []*RaceResult{
		{RaceDayId: day.Id, Bull1Id: &bulls[0].Id, Position: 1, TimeMilliseconds: 11500},
		{RaceDayId: day.Id, Bull1Id: &bulls[1].Id, Position: 2, TimeMilliseconds: 12100},
		{RaceDayId: day.Id, Bull1Id: &bulls[0].Id, Bull2Id: &bulls[1].Id, Position: 3, TimeMilliseconds: 12900},
	}
	assert.NoError(t, repo.ReplaceResultsForDay(day, results))

	stored, err := repo.GetResultsForDay(day.Id)
	assert.NoError(t, err)
	assert.Len(t, stored, 3)
	assert.Equal(t, 3, day.TotalParticipants)
	assert.Equal(t, StatusCompleted, day.Status, "scheduled day should be promoted on first entry")

	// resubmitting a smaller list must leave exactly the new rows
	replacement := []*RaceResult{
		{RaceDayId: day.Id, Bull1Id: &bulls[1].Id, Position: 1, TimeMilliseconds: 11900},
		{RaceDayId: day.Id, Bull1Id: &bulls[0].Id, Position: 2, TimeMilliseconds: 12000},
	}
	assert.NoError(t, repo.ReplaceResultsForDay(day, replacement))

	stored, err = repo.GetResultsForDay(day.Id)
	assert.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Equal(t, 2, day.TotalParticipants)
	assert.Equal(t, 1, stored[0].Position)
	assert.Equal(t, 11900, stored[0].TimeMilliseconds)
}

func TestReplaceResultsForDayWithEmptyList(t *testing.T) {
	defer TearDown()
	_, bulls, race := SetUpRace()
	repo := NewRaceRepository(db)

	day := createDay(race, 1, date(2025, 6, 1))
	createResult(day, bulls[0], 1, 12000, false)

	assert.NoError(t, repo.ReplaceResultsForDay(day, []*RaceResult{}))
	stored, err := repo.GetResultsForDay(day.Id)
	assert.NoError(t, err)
	assert.Empty(t, stored)
	assert.Equal(t, 0, day.TotalParticipants)
}

func TestSingleResultWritesRecountParticipants(t *testing.T) {
	defer TearDown()
	_, bulls, race := SetUpRace()
	repo := NewRaceRepository(db)

	day := createDay(race, 1, date(2025, 6, 1))
	result, err := repo.SaveResult(&RaceResult{
		RaceDayId:        day.Id,
		Bull1Id:          &bulls[0].Id,
		Position:         1,
		TimeMilliseconds: 11500,
	})
	assert.NoError(t, err)

	stored, err := repo.GetRaceDayById(day.Id)
	assert.NoError(t, err)
	assert.Equal(t, 1, stored.TotalParticipants)

	assert.NoError(t, repo.DeleteResult(result))
	stored, err = repo.GetRaceDayById(day.Id)
	assert.NoError(t, err)
	assert.Equal(t, 0, stored.TotalParticipants)
}

func TestGetSiblingDayByNumberExcludesSelf(t *testing.T) {
	defer TearDown()
	_, _, race := SetUpRace()
	repo := NewRaceRepository(db)

	day1 := createDay(race, 1, date(2025, 6, 1))
	day2 := createDay(race, 2, date(2025, 6, 2))

	// day2 asking about its own number must not collide with itself
	_, err := repo.GetSiblingDayByNumber(race.Id, 2, &day2.Id)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	// but it does collide with day1's number
	sibling, err := repo.GetSiblingDayByNumber(race.Id, 1, &day2.Id)
	assert.NoError(t, err)
	assert.Equal(t, day1.Id, sibling.Id)
}

func TestRaceDeleteCascadesToDaysAndResults(t *testing.T) {
	defer TearDown()
	_, bulls, race := SetUpRace()
	repo := NewRaceRepository(db)

	day := createDay(race, 1, date(2025, 6, 1))
	createResult(day, bulls[0], 1, 12000, false)

	assert.NoError(t, repo.Delete(race.Id))

	var dayCount, resultCount int64
	db.Model(&RaceDay{}).Count(&dayCount)
	db.Model(&RaceResult{}).Count(&resultCount)
	assert.Zero(t, dayCount)
	assert.Zero(t, resultCount)
}

func TestOwnerDeleteBlockedByBulls(t *testing.T) {
	defer TearDown()
	owner, bulls, _ := SetUpRace()
	repo := NewOwnerRepository(db)

	err := repo.Delete(owner.Id)
	assert.True(t, app_error.IsKind(err, app_error.KindConstraintViolation))

	for _, bull := range bulls {
		assert.NoError(t, db.Delete(bull).Error)
	}
	assert.NoError(t, repo.Delete(owner.Id))
}
