package service

import (
	"testing"
	"time"

	"sharyat/app_error"
	"sharyat/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestValidateDayDate(t *testing.T) {
	race := &repository.Race{
		StartDate: day(2025, 6, 1),
		EndDate:   day(2025, 6, 3),
	}

	assert.NoError(t, validateDayDate(race, day(2025, 6, 1)), "start date itself is inside the range")
	assert.NoError(t, validateDayDate(race, day(2025, 6, 2)))
	assert.NoError(t, validateDayDate(race, day(2025, 6, 3)), "end date itself is inside the range")

	err := validateDayDate(race, day(2025, 5, 31))
	assert.True(t, app_error.IsKind(err, app_error.KindInvalidRange))
	err = validateDayDate(race, day(2025, 6, 4))
	assert.True(t, app_error.IsKind(err, app_error.KindInvalidRange))
}

func TestValidateDayDateSingleDayRace(t *testing.T) {
	race := &repository.Race{
		StartDate: day(2025, 6, 1),
		EndDate:   day(2025, 6, 1),
	}
	assert.NoError(t, validateDayDate(race, day(2025, 6, 1)))
	assert.Error(t, validateDayDate(race, day(2025, 6, 2)))
}

func TestValidateResultValues(t *testing.T) {
	assert.NoError(t, validateResultValues(&repository.RaceResult{Position: 1, TimeMilliseconds: 11500}))

	err := validateResultValues(&repository.RaceResult{Position: 0, TimeMilliseconds: 11500})
	assert.True(t, app_error.IsKind(err, app_error.KindConstraintViolation))

	err = validateResultValues(&repository.RaceResult{Position: 1, TimeMilliseconds: 0})
	assert.True(t, app_error.IsKind(err, app_error.KindConstraintViolation))

	err = validateResultValues(&repository.RaceResult{Position: -3, TimeMilliseconds: -100})
	assert.True(t, app_error.IsKind(err, app_error.KindConstraintViolation))
}

func TestReplaceResultsRejectsUnknownBull(t *testing.T) {
	defer clearTables()
	village := seedVillage()
	_, bulls := seedBulls("Sarja")
	_, days := seedCompletedRace(village)
	seedResult(days[0], bulls[0], 1, 11000)

	svc := NewRaceService(db)
	unknownId := uuid.New()
	_, err := svc.ReplaceResults(days[0].Id, []*repository.RaceResult{
		{Bull1Id: &unknownId, Position: 1, TimeMilliseconds: 10500},
	})
	assert.True(t, app_error.IsKind(err, app_error.KindNotFound))

	// the failed replacement must not have touched the existing set
	existing, err := svc.GetResultsForDay(days[0].Id)
	assert.NoError(t, err)
	assert.Len(t, existing, 1)
	assert.Equal(t, bulls[0].Id, *existing[0].Bull1Id)
}

func TestReplaceResultsRejectsUnknownOwner(t *testing.T) {
	defer clearTables()
	village := seedVillage()
	_, bulls := seedBulls("Sarja")
	_, days := seedCompletedRace(village)

	svc := NewRaceService(db)
	unknownId := uuid.New()
	_, err := svc.ReplaceResults(days[0].Id, []*repository.RaceResult{
		{Bull1Id: &bulls[0].Id, Owner1Id: &unknownId, Position: 1, TimeMilliseconds: 10500},
	})
	assert.True(t, app_error.IsKind(err, app_error.KindNotFound))
}

func TestFindDuplicatePosition(t *testing.T) {
	results := []*repository.RaceResult{
		{Position: 1},
		{Position: 2},
		{Position: 3},
	}
	_, found := findDuplicatePosition(results)
	assert.False(t, found)

	results = append(results, &repository.RaceResult{Position: 2})
	position, found := findDuplicatePosition(results)
	assert.True(t, found)
	assert.Equal(t, 2, position)

	_, found = findDuplicatePosition(nil)
	assert.False(t, found)
}
